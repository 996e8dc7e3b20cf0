// Package i18n holds the localized message catalogs for result codes.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer returns a message printer for the requested locale, falling back
// to English for unknown tags.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
