package arbiter

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype carrying raw command frames. The
// dispatch service has no generated message types; both directions are
// opaque byte blobs already encoded by the command wire layer. Clients
// select the codec with grpc.CallContentSubtype(CodecName); other services
// on the same server (health) keep the default proto codec.
const CodecName = "signalyard-raw"

// RawMessage is the message representation used by the raw codec.
type RawMessage []byte

type rawCodec struct{}

func (rawCodec) Name() string { return CodecName }

func (rawCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(*RawMessage)
	if !ok {
		return nil, fmt.Errorf("raw codec: cannot marshal %T", v)
	}
	return *m, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*RawMessage)
	if !ok {
		return fmt.Errorf("raw codec: cannot unmarshal into %T", v)
	}
	*m = append((*m)[:0], data...)
	return nil
}

func init() {
	encoding.RegisterCodec(rawCodec{})
}
