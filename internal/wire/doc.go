// Package wire implements the byte-level encoding primitives shared by the
// command protocol and the journal: bounds-checked read/write cursors,
// little-endian fixed-width integers, prefix-coded varints, and NUL-terminated
// strings with validation.
//
// Readers are sticky: once a read fails, every later read is a no-op that
// returns the zero value, so callers can chain reads and check Failed once.
package wire
