package wire

import (
	"strings"
	"unicode/utf8"
)

// StringValidation controls which characters survive string sanitization.
type StringValidation uint8

const (
	// ReplaceWithQuestionMark substitutes rejected characters with '?'
	// instead of dropping them.
	ReplaceWithQuestionMark StringValidation = 1 << iota
	// AllowNewline keeps '\n' and '\r' in the output.
	AllowNewline
	// AllowControlCode keeps the private-use formatting codes embedded in
	// client-visible encoded strings.
	AllowControlCode
)

// Formatting codes live in the Unicode private use area so they can travel
// inside ordinary strings.
const (
	controlCodeFirst = 0xE000
	controlCodeLast  = 0xF8FF
)

// Sanitise strips characters rejected by v from s: invalid UTF-8 sequences,
// C0/C1 control characters, and private-use formatting codes unless allowed.
// The operation is idempotent.
func Sanitise(s string, v StringValidation) string {
	clean := true
	for _, r := range s {
		if !keepRune(r, v) {
			clean = false
			break
		}
	}
	if clean && utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if v&ReplaceWithQuestionMark != 0 {
				b.WriteByte('?')
			}
			i++
			continue
		}
		if keepRune(r, v) {
			b.WriteRune(r)
		} else if v&ReplaceWithQuestionMark != 0 {
			b.WriteByte('?')
		}
		i += size
	}
	return b.String()
}

func keepRune(r rune, v StringValidation) bool {
	switch {
	case r == '\n' || r == '\r':
		return v&AllowNewline != 0
	case r < 0x20 || r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	case r >= controlCodeFirst && r <= controlCodeLast:
		return v&AllowControlCode != 0
	default:
		return true
	}
}
