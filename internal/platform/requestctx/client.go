package requestctx

import (
	"context"

	"github.com/louisbranch/signalyard/internal/command"
)

// Client is the authenticated network identity of a request.
type Client struct {
	ID      command.ClientID
	Company command.CompanyID
	// Spectator marks clients watching without a company.
	Spectator bool
}

// clientContextKey is the context key for authenticated client identity.
type clientContextKey struct{}

// WithClient stores a client identity in context.
func WithClient(ctx context.Context, client Client) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, clientContextKey{}, client)
}

// ClientFromContext returns the client identity stored in context, and
// whether one was present.
func ClientFromContext(ctx context.Context) (Client, bool) {
	if ctx == nil {
		return Client{}, false
	}
	value, ok := ctx.Value(clientContextKey{}).(Client)
	return value, ok
}
