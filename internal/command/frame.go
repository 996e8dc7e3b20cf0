package command

import (
	"errors"
	"fmt"

	"github.com/louisbranch/signalyard/internal/wire"
)

// ErrMalformed reports a frame that could not be decoded: unknown id,
// truncated payload, length mismatch, or trailing bytes. It is surfaced as
// one failure; the frame is never partially applied.
var ErrMalformed = errors.New("malformed command frame")

// maxPayloadLen is the largest payload the 16-bit length header can carry.
const maxPayloadLen = 0xFFFF

// Frame is the wire envelope of one command instance:
//
//	[id varint][secondary error code u16][tile u32][payload len u16][payload]
//
// The secondary error code names the message a client shows when the server
// rejects the command; the tile anchors the error to a map location.
type Frame struct {
	ID      ID
	ErrMsg  uint16
	Tile    TileIndex
	Payload Payload
}

// Encode appends the frame's wire bytes to w.
func (f Frame) Encode(w *wire.Writer) error {
	if !f.ID.Valid() {
		return fmt.Errorf("encode frame: invalid command id %d", uint16(f.ID))
	}
	if f.Payload == nil {
		return fmt.Errorf("encode frame: payload is required")
	}
	payload := wire.NewWriter(16)
	f.Payload.Serialise(payload)
	if payload.Len() > maxPayloadLen {
		return fmt.Errorf("encode frame: payload of %s is %d bytes, limit %d", f.ID, payload.Len(), maxPayloadLen)
	}
	w.WriteVarUint(uint64(f.ID))
	w.WriteUint16(f.ErrMsg)
	w.WriteUint32(uint32(f.Tile))
	w.WriteUint16(uint16(payload.Len()))
	w.WriteBytes(payload.Bytes())
	return nil
}

// EncodeBytes is a convenience wrapper returning the frame as a fresh slice.
func (f Frame) EncodeBytes() ([]byte, error) {
	w := wire.NewWriter(32)
	if err := f.Encode(w); err != nil {
		return nil, err
	}
	return append([]byte(nil), w.Bytes()...), nil
}
