package command

import (
	"fmt"

	"github.com/louisbranch/signalyard/internal/wire"
)

// Exec applies one command invocation against the environment. Without the
// Execute flag the call is a dry run: it must compute cost and validity
// without mutating anything. With it, the reported cost must not exceed what
// the preceding dry run reported, or peers desync.
type Exec[E any] func(env E, flags DoFlag, tile TileIndex, p Payload) CommandCost

// Def declares one command kind for the registry.
type Def[E any] struct {
	// NewPayload constructs an empty payload of the command's concrete
	// type, ready for Deserialise. Nil marks a command that may not arrive
	// from the network (server-internal only).
	NewPayload func() Payload
	// Exec is the trampoline that downcasts the payload and calls the
	// typed handler.
	Exec Exec[E]
	// Flags are the command's static properties.
	Flags CmdFlag
	// Category groups the command for logging and rate limiting.
	Category Category
}

// Registry is the fixed dispatch table, one entry per ID, built once at
// startup and read-only afterwards. It is safe for concurrent readers. The
// environment type E carries whatever state the handlers mutate.
type Registry[E any] struct {
	defs [End]Def[E]
}

// NewRegistry assembles the table. Every id in [0, End) must be declared
// with an Exec trampoline; a gap is a programming error, not a runtime
// condition.
func NewRegistry[E any](defs map[ID]Def[E]) (*Registry[E], error) {
	r := &Registry[E]{}
	for id, def := range defs {
		if !id.Valid() {
			return nil, fmt.Errorf("command registry: id %d out of range", uint16(id))
		}
		if def.Exec == nil {
			return nil, fmt.Errorf("command registry: %s has no trampoline", id)
		}
		r.defs[id] = def
	}
	for id := ID(0); id < End; id++ {
		if r.defs[id].Exec == nil {
			return nil, fmt.Errorf("command registry: %s is not declared", id)
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for static tables; a mis-declared table is
// unrecoverable.
func MustNewRegistry[E any](defs map[ID]Def[E]) *Registry[E] {
	r, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Def returns the entry for id.
func (r *Registry[E]) Def(id ID) (Def[E], bool) {
	if !id.Valid() {
		return Def[E]{}, false
	}
	return r.defs[id], true
}

// Flags returns the static flags of id, zero for invalid ids.
func (r *Registry[E]) Flags(id ID) CmdFlag {
	if !id.Valid() {
		return 0
	}
	return r.defs[id].Flags
}

// NewPayload constructs an empty payload for id, or nil when the command
// cannot be received from the network.
func (r *Registry[E]) NewPayload(id ID) Payload {
	if !id.Valid() || r.defs[id].NewPayload == nil {
		return nil
	}
	return r.defs[id].NewPayload()
}

// DecodeFrame reads one frame from rd and reconstructs its typed payload.
// Truncated reads, a payload length that does not match the payload bytes,
// and trailing unread bytes all yield ErrMalformed.
func (r *Registry[E]) DecodeFrame(rd *wire.Reader, v wire.StringValidation) (Frame, error) {
	// The id is range-checked before narrowing so a wide varuint cannot
	// alias onto a valid command.
	rawID := rd.ReadVarUint()
	errMsg := rd.ReadUint16()
	tile := TileIndex(rd.ReadUint32())
	length := int(rd.ReadUint16())
	body := rd.ReadBytes(length)
	if rd.Failed() || rawID >= uint64(End) {
		return Frame{}, ErrMalformed
	}
	id := ID(rawID)
	p := r.NewPayload(id)
	if p == nil {
		return Frame{}, ErrMalformed
	}
	br := wire.NewReader(body)
	if !p.Deserialise(br, v) || br.Failed() || br.Remaining() != 0 {
		return Frame{}, ErrMalformed
	}
	return Frame{ID: id, ErrMsg: errMsg, Tile: tile, Payload: p}, nil
}

// DecodeFrameBytes decodes a frame that must span exactly b.
func (r *Registry[E]) DecodeFrameBytes(b []byte, v wire.StringValidation) (Frame, error) {
	rd := wire.NewReader(b)
	f, err := r.DecodeFrame(rd, v)
	if err != nil {
		return Frame{}, err
	}
	if rd.Remaining() != 0 {
		return Frame{}, ErrMalformed
	}
	return f, nil
}

// PatchClientID stamps the requesting client's id onto payloads of commands
// declared with FlagClientID, so call sites do not need to know which
// commands carry one. It reports whether a stamp happened.
func (r *Registry[E]) PatchClientID(id ID, p Payload, client ClientID) bool {
	if r.Flags(id)&FlagClientID == 0 {
		return false
	}
	setter, ok := p.(ClientIDSetter)
	if !ok {
		return false
	}
	setter.SetClientID(client)
	return true
}
