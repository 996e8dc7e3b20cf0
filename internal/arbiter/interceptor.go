package arbiter

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/signalyard/internal/platform/requestctx"
)

const bearerPrefix = "Bearer "

// UnaryAuthInterceptor verifies the join grant on every dispatch call and
// stores the asserted client identity in context. Non-dispatch services on
// the same server (health) pass through untouched. A zero GrantConfig
// disables verification.
func UnaryAuthInterceptor(cfg GrantConfig) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") || !cfg.Enabled() {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		grant := ""
		if values := md.Get("authorization"); len(values) > 0 {
			grant = strings.TrimPrefix(values[0], bearerPrefix)
		}
		client, err := ValidateGrant(grant, cfg)
		if err != nil {
			if errors.Is(err, ErrGrantExpired) {
				return nil, status.Error(codes.Unauthenticated, "join grant is expired")
			}
			return nil, status.Error(codes.Unauthenticated, "join grant is invalid")
		}
		return handler(requestctx.WithClient(ctx, client), req)
	}
}
