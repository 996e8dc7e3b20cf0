package wire

import "math/bits"

// Varints use a big-endian prefix code: the count of leading one bits in the
// first byte is the count of continuation bytes that follow, and the
// remaining bits of the first byte are the most significant value bits.
//
//	0xxxxxxx                    7 bits
//	10xxxxxx +1 byte           14 bits
//	110xxxxx +2 bytes          21 bits
//	...
//	11111111 +8 bytes          64 bits
//
// Small values therefore cost one byte and the encoding is self-delimiting.

// appendVarUint appends the prefix-coded encoding of v to dst.
func appendVarUint(dst []byte, v uint64) []byte {
	extra := 0
	for extra < 8 && v >= 1<<uint(7+7*extra) {
		extra++
	}
	if extra == 8 {
		dst = append(dst, 0xFF)
	} else {
		prefix := byte(0xFF) << uint(8-extra) // extra leading ones, then a zero
		dst = append(dst, prefix|byte(v>>uint(8*extra)))
	}
	for i := extra - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>uint(8*i)))
	}
	return dst
}

// decodeVarUint decodes a prefix-coded varint from the front of b. It
// returns the value and the number of bytes consumed, or (0, 0) when b is
// empty or truncated.
func decodeVarUint(b []byte) (uint64, int) {
	if len(b) == 0 {
		return 0, 0
	}
	first := b[0]
	extra := bits.LeadingZeros8(^first)
	if len(b) < 1+extra {
		return 0, 0
	}
	var v uint64
	if extra < 8 {
		v = uint64(first & (0x7F >> uint(extra)))
	}
	for i := 0; i < extra; i++ {
		v = v<<8 | uint64(b[1+i])
	}
	return v, 1 + extra
}

// zigzagEncode folds a signed value so that small magnitudes of either sign
// encode to small unsigned values: 0, -1, 1, -2 become 0, 1, 2, 3.
func zigzagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// zigzagDecode reverses zigzagEncode.
func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
