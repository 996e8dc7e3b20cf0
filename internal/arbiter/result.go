package arbiter

import (
	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
	"github.com/louisbranch/signalyard/internal/wire"
)

// Result is the client-visible outcome of a submitted command.
type Result struct {
	Succeeded    bool
	Cost         command.Money
	Expense      command.ExpenseType
	Message      apperrors.Code
	ExtraMessage apperrors.Code
	Tile         command.TileIndex
	ResultData   uint32
}

// resultOf flattens a CommandCost into its wire form.
func resultOf(c command.CommandCost) Result {
	return Result{
		Succeeded:    c.Succeeded(),
		Cost:         c.Cost(),
		Expense:      c.Expense(),
		Message:      c.Message(),
		ExtraMessage: c.ExtraMessage(),
		Tile:         c.Tile(),
		ResultData:   c.ResultData(),
	}
}

// EncodeResult serialises a command outcome for the dispatch response.
func EncodeResult(c command.CommandCost) []byte {
	r := resultOf(c)
	w := wire.NewWriter(24)
	w.WriteBool(r.Succeeded)
	w.WriteVarInt(int64(r.Cost))
	w.WriteUint8(uint8(r.Expense))
	w.WriteUint16(uint16(r.Message))
	w.WriteUint16(uint16(r.ExtraMessage))
	w.WriteUint32(uint32(r.Tile))
	w.WriteUint32(r.ResultData)
	return append([]byte(nil), w.Bytes()...)
}

// DecodeResult parses a dispatch response.
func DecodeResult(b []byte) (Result, error) {
	rd := wire.NewReader(b)
	r := Result{
		Succeeded:    rd.ReadBool(),
		Cost:         command.Money(rd.ReadVarInt()),
		Expense:      command.ExpenseType(rd.ReadUint8()),
		Message:      apperrors.Code(rd.ReadUint16()),
		ExtraMessage: apperrors.Code(rd.ReadUint16()),
		Tile:         command.TileIndex(rd.ReadUint32()),
		ResultData:   rd.ReadUint32(),
	}
	if rd.Failed() || rd.Remaining() != 0 {
		return Result{}, command.ErrMalformed
	}
	return r, nil
}
