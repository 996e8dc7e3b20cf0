package errors

import (
	"google.golang.org/grpc/status"

	"github.com/louisbranch/signalyard/internal/errors/i18n"
)

// DefaultLocale is the locale used when a client does not request one.
const DefaultLocale = "en"

// GRPCStatus converts a result code into a gRPC status error with a
// localized message. CodeNone yields nil.
func GRPCStatus(code Code, locale string) error {
	if code == CodeNone {
		return nil
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return status.Error(code.GRPCCode(), i18n.Printer(locale).Sprintf(code.Key()))
}
