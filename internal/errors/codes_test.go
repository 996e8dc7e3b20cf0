package errors

import (
	"testing"

	"github.com/louisbranch/signalyard/internal/errors/i18n"
)

// An unregistered key renders as the key itself, so a catalog entry exists
// exactly when Sprintf changes the string.
func TestEveryCodeHasLocalizedMessages(t *testing.T) {
	for code, key := range messageKeys {
		for _, locale := range []string{"en", "pt-BR"} {
			if got := i18n.Printer(locale).Sprintf(key); got == key {
				t.Fatalf("code %d key %q has no %s message", code, key, locale)
			}
		}
	}
}

func TestUnknownCodeFallsBackToGenericKey(t *testing.T) {
	if got := Code(0xFFF0).Key(); got != messageKeys[CodeGenericFailure] {
		t.Fatalf("fallback key = %q", got)
	}
}
