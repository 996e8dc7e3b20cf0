package wire

// Reader consumes protocol bytes produced by Writer. It borrows the byte
// slice it wraps and never copies it.
//
// All reads are bounds checked. A short or malformed read marks the reader
// failed; every later read returns the zero value without advancing.
type Reader struct {
	buf    []byte
	pos    int
	failed bool
}

// NewReader wraps b in a read cursor positioned at the start.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Failed reports whether any read so far went out of bounds or hit a
// malformed encoding.
func (r *Reader) Failed() bool {
	return r.failed
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.failed {
		return 0
	}
	return len(r.buf) - r.pos
}

func (r *Reader) fail() {
	r.failed = true
}

func (r *Reader) take(n int) []byte {
	if r.failed || n < 0 || len(r.buf)-r.pos < n {
		r.fail()
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadBool reads one byte and reports whether it is non-zero.
func (r *Reader) ReadBool() bool {
	return r.ReadUint8() != 0
}

// ReadUint16 reads a little-endian 16-bit value.
func (r *Reader) ReadUint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

// ReadUint32 reads a little-endian 32-bit value.
func (r *Reader) ReadUint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// ReadUint64 reads a little-endian 64-bit value.
func (r *Reader) ReadUint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// ReadVarUint reads a prefix-coded varint.
func (r *Reader) ReadVarUint() uint64 {
	if r.failed {
		return 0
	}
	v, n := decodeVarUint(r.buf[r.pos:])
	if n == 0 {
		r.fail()
		return 0
	}
	r.pos += n
	return v
}

// ReadVarUint32 reads a prefix-coded varint and fails the reader when the
// value does not fit 32 bits.
func (r *Reader) ReadVarUint32() uint32 {
	v := r.ReadVarUint()
	if v > 0xFFFFFFFF {
		r.fail()
		return 0
	}
	return uint32(v)
}

// ReadVarInt reads a zigzag-folded varint.
func (r *Reader) ReadVarInt() int64 {
	return zigzagDecode(r.ReadVarUint())
}

// ReadString reads a NUL-terminated string and sanitizes it with the given
// validation settings. A missing terminator fails the reader.
func (r *Reader) ReadString(v StringValidation) string {
	if r.failed {
		return ""
	}
	rest := r.buf[r.pos:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == 0 {
			s := string(rest[:i])
			r.pos += i + 1
			return Sanitise(s, v)
		}
	}
	r.fail()
	return ""
}

// ReadBytes reads exactly n raw bytes. The returned slice aliases the
// reader's backing buffer.
func (r *Reader) ReadBytes(n int) []byte {
	return r.take(n)
}
