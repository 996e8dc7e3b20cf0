package command

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/signalyard/internal/wire"
)

// FieldKind is the closed set of field types a tuple payload may declare.
// The kind fixes both the in-memory accessor type and the wire encoding.
type FieldKind uint8

const (
	// KindBool encodes as one byte, accessor *bool.
	KindBool FieldKind = iota
	// KindUint8..KindUint64 encode little-endian at their declared width.
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	// KindInt8..KindInt64 are their signed counterparts.
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	// KindVarUint encodes a 32-bit id as a prefix varint, accessor *uint32.
	KindVarUint
	// KindVarInt encodes a signed 64-bit amount as a zigzag varint,
	// accessor *int64. Used for Money fields.
	KindVarInt
	// KindString encodes NUL-terminated with formatting codes stripped,
	// accessor *string.
	KindString
	// KindEncodedString keeps client-visible formatting codes, accessor
	// *string.
	KindEncodedString
)

func (k FieldKind) isString() bool {
	return k == KindString || k == KindEncodedString
}

// Field declares one tuple payload field: its summary name, wire kind, and
// an accessor returning a pointer to the field inside the payload value.
// Declaration order is both memory order and wire order; reordering fields
// breaks the wire format.
type Field[P any] struct {
	Name string
	Kind FieldKind
	Ref  func(*P) any
}

// TupleSpec is the per-type descriptor driving the shared tuple
// implementation of serialize, deserialize, sanitize, and summarize.
type TupleSpec[P any] struct {
	Fields []Field[P]
	// SkipStringsInSummary keeps free-text fields out of debug summaries so
	// they cannot leak into crash logs.
	SkipStringsInSummary bool
	// SummaryFormat, when set, is a fmt template applied to the field
	// values in declaration order instead of the default comma-joined dump.
	SummaryFormat string
}

// TupleData is implemented by payload value types that declare their fields
// as an ordered list.
type TupleData[P any] interface {
	Spec() TupleSpec[P]
}

// Tuple adapts a field-list payload value into a full Payload. All tuple
// payloads share this one implementation; only the field table differs.
type Tuple[P TupleData[P]] struct {
	V P
}

func (t *Tuple[P]) Clone() Payload {
	c := *t
	return &c
}

func (t *Tuple[P]) Serialise(w *wire.Writer) {
	for _, f := range t.V.Spec().Fields {
		writeField(w, f.Kind, f.Ref(&t.V))
	}
}

func (t *Tuple[P]) Deserialise(r *wire.Reader, v wire.StringValidation) bool {
	for _, f := range t.V.Spec().Fields {
		readField(r, f.Kind, f.Ref(&t.V), v)
	}
	return !r.Failed()
}

func (t *Tuple[P]) SanitiseStrings(v wire.StringValidation) {
	for _, f := range t.V.Spec().Fields {
		if !f.Kind.isString() {
			continue
		}
		ref := f.Ref(&t.V).(*string)
		*ref = wire.Sanitise(*ref, stringValidationFor(f.Kind, v))
	}
}

func (t *Tuple[P]) AppendSummary(dst []byte) []byte {
	spec := t.V.Spec()
	if spec.SummaryFormat != "" {
		args := make([]any, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			args = append(args, fieldValue(f.Kind, f.Ref(&t.V)))
		}
		return fmt.Appendf(dst, spec.SummaryFormat, args...)
	}
	first := true
	for _, f := range spec.Fields {
		if f.Kind.isString() && spec.SkipStringsInSummary {
			continue
		}
		if !first {
			dst = append(dst, ", "...)
		}
		first = false
		dst = append(dst, f.Name...)
		dst = append(dst, ": "...)
		dst = appendFieldValue(dst, f.Kind, f.Ref(&t.V))
	}
	return dst
}

// stringValidationFor widens the validation for encoded strings, which may
// carry client-visible formatting codes.
func stringValidationFor(k FieldKind, v wire.StringValidation) wire.StringValidation {
	if k == KindEncodedString {
		return v | wire.AllowControlCode
	}
	return v &^ wire.AllowControlCode
}

func writeField(w *wire.Writer, k FieldKind, ref any) {
	switch k {
	case KindBool:
		w.WriteBool(*ref.(*bool))
	case KindUint8:
		w.WriteUint8(*ref.(*uint8))
	case KindUint16:
		w.WriteUint16(*ref.(*uint16))
	case KindUint32:
		w.WriteUint32(*ref.(*uint32))
	case KindUint64:
		w.WriteUint64(*ref.(*uint64))
	case KindInt8:
		w.WriteUint8(uint8(*ref.(*int8)))
	case KindInt16:
		w.WriteUint16(uint16(*ref.(*int16)))
	case KindInt32:
		w.WriteUint32(uint32(*ref.(*int32)))
	case KindInt64:
		w.WriteUint64(uint64(*ref.(*int64)))
	case KindVarUint:
		w.WriteVarUint(uint64(*ref.(*uint32)))
	case KindVarInt:
		w.WriteVarInt(*ref.(*int64))
	case KindString, KindEncodedString:
		w.WriteString(*ref.(*string))
	default:
		panic(fmt.Sprintf("command: unknown field kind %d", k))
	}
}

func readField(r *wire.Reader, k FieldKind, ref any, v wire.StringValidation) {
	switch k {
	case KindBool:
		*ref.(*bool) = r.ReadBool()
	case KindUint8:
		*ref.(*uint8) = r.ReadUint8()
	case KindUint16:
		*ref.(*uint16) = r.ReadUint16()
	case KindUint32:
		*ref.(*uint32) = r.ReadUint32()
	case KindUint64:
		*ref.(*uint64) = r.ReadUint64()
	case KindInt8:
		*ref.(*int8) = int8(r.ReadUint8())
	case KindInt16:
		*ref.(*int16) = int16(r.ReadUint16())
	case KindInt32:
		*ref.(*int32) = int32(r.ReadUint32())
	case KindInt64:
		*ref.(*int64) = int64(r.ReadUint64())
	case KindVarUint:
		*ref.(*uint32) = r.ReadVarUint32()
	case KindVarInt:
		*ref.(*int64) = r.ReadVarInt()
	case KindString, KindEncodedString:
		*ref.(*string) = r.ReadString(stringValidationFor(k, v))
	default:
		panic(fmt.Sprintf("command: unknown field kind %d", k))
	}
}

func fieldValue(k FieldKind, ref any) any {
	switch k {
	case KindBool:
		return *ref.(*bool)
	case KindUint8:
		return *ref.(*uint8)
	case KindUint16:
		return *ref.(*uint16)
	case KindUint32:
		return *ref.(*uint32)
	case KindUint64:
		return *ref.(*uint64)
	case KindInt8:
		return *ref.(*int8)
	case KindInt16:
		return *ref.(*int16)
	case KindInt32:
		return *ref.(*int32)
	case KindInt64:
		return *ref.(*int64)
	case KindVarUint:
		return *ref.(*uint32)
	case KindVarInt:
		return *ref.(*int64)
	case KindString, KindEncodedString:
		return *ref.(*string)
	default:
		panic(fmt.Sprintf("command: unknown field kind %d", k))
	}
}

func appendFieldValue(dst []byte, k FieldKind, ref any) []byte {
	switch k {
	case KindBool:
		return strconv.AppendBool(dst, *ref.(*bool))
	case KindUint8:
		return strconv.AppendUint(dst, uint64(*ref.(*uint8)), 10)
	case KindUint16:
		return strconv.AppendUint(dst, uint64(*ref.(*uint16)), 10)
	case KindUint32:
		return strconv.AppendUint(dst, uint64(*ref.(*uint32)), 10)
	case KindUint64:
		return strconv.AppendUint(dst, *ref.(*uint64), 10)
	case KindInt8:
		return strconv.AppendInt(dst, int64(*ref.(*int8)), 10)
	case KindInt16:
		return strconv.AppendInt(dst, int64(*ref.(*int16)), 10)
	case KindInt32:
		return strconv.AppendInt(dst, int64(*ref.(*int32)), 10)
	case KindInt64:
		return strconv.AppendInt(dst, *ref.(*int64), 10)
	case KindVarUint:
		return strconv.AppendUint(dst, uint64(*ref.(*uint32)), 10)
	case KindVarInt:
		return strconv.AppendInt(dst, *ref.(*int64), 10)
	case KindString, KindEncodedString:
		return strconv.AppendQuote(dst, *ref.(*string))
	default:
		panic(fmt.Sprintf("command: unknown field kind %d", k))
	}
}
