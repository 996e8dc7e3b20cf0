package wire

// Writer accumulates protocol bytes. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with a pre-sized buffer.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated bytes. The slice aliases the writer's
// internal buffer and is only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset discards all written bytes while keeping the allocation.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteBool appends a boolean as one byte, 0 or 1.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteUint16 appends a little-endian 16-bit value.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

// WriteUint32 appends a little-endian 32-bit value.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// WriteUint64 appends a little-endian 64-bit value.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = append(w.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// WriteVarUint appends an unsigned value using the prefix-coded varint
// described in varint.go.
func (w *Writer) WriteVarUint(v uint64) {
	w.buf = appendVarUint(w.buf, v)
}

// WriteVarInt appends a signed value as a zigzag-folded varint. Values close
// to zero in either direction stay short.
func (w *Writer) WriteVarInt(v int64) {
	w.buf = appendVarUint(w.buf, zigzagEncode(v))
}

// WriteString appends the string bytes followed by a NUL terminator.
// Embedded NUL bytes are dropped; the terminator is the only one on the wire.
func (w *Writer) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] != 0 {
			w.buf = append(w.buf, s[i])
		}
	}
	w.buf = append(w.buf, 0)
}

// WriteBytes appends raw bytes without any framing.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}
