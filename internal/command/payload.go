package command

import "github.com/louisbranch/signalyard/internal/wire"

// Payload is the typed argument bundle of one command instance.
//
// Payloads own their data exclusively: Clone produces an independent copy,
// and a payload decoded from the wire shares nothing with the frame bytes it
// came from.
type Payload interface {
	// Clone returns an independent copy with the same dynamic type.
	Clone() Payload
	// Serialise appends the payload's wire bytes in field order.
	Serialise(w *wire.Writer)
	// Deserialise reads the wire bytes written by Serialise. It reports
	// false when the bytes are truncated or malformed; the payload contents
	// are unspecified in that case.
	Deserialise(r *wire.Reader, v wire.StringValidation) bool
	// SanitiseStrings strips unacceptable characters from string fields.
	SanitiseStrings(v wire.StringValidation)
	// AppendSummary appends a one-line debug description to dst and returns
	// the extended slice. It is used by crash-log tooling and must not
	// panic on any payload state.
	AppendSummary(dst []byte) []byte
}

// ClientIDSetter is implemented by payloads that carry the identifier of the
// requesting client, stamped by the server before dispatch.
type ClientIDSetter interface {
	SetClientID(client ClientID)
}

// Summary renders a payload's debug description as a string.
func Summary(p Payload) string {
	if p == nil {
		return ""
	}
	return string(p.AppendSummary(nil))
}

// EmptyPayload is the payload of commands that take no arguments.
type EmptyPayload struct{}

func (p *EmptyPayload) Clone() Payload { return &EmptyPayload{} }

func (p *EmptyPayload) Serialise(*wire.Writer) {}

func (p *EmptyPayload) Deserialise(*wire.Reader, wire.StringValidation) bool { return true }

func (p *EmptyPayload) SanitiseStrings(wire.StringValidation) {}

func (p *EmptyPayload) AppendSummary(dst []byte) []byte { return dst }
