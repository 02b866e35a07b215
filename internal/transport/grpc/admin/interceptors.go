package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

// LoggingInterceptor attaches a request-scoped logger and logs every call
// with its status code.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	logger := log.With().Str("request_id", uuid.New().String()).Logger()
	ctx = logger.WithContext(ctx)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	ev := log.Ctx(ctx).Info()
	if code == codes.Internal || code == codes.Unknown {
		ev = log.Ctx(ctx).Error().Err(err)
	}
	ev.Str("method", info.FullMethod).
		Str("code", code.String()).
		Int64("latency", time.Since(start).Milliseconds()).
		Msg("Request processed")
	return resp, err
}

// AuthInterceptor requires an admin bearer token in the authorization
// metadata and puts the caller's Identity on the context.
func AuthInterceptor(v *auth.Verifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var raw string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get("authorization"); len(vals) > 0 {
				raw = vals[0]
			}
		}
		id, err := v.Verify(raw)
		if err != nil {
			return nil, mapError(err)
		}
		if !id.IsAdmin() {
			return nil, mapError(auth.ErrNotAdmin)
		}
		return handler(auth.WithIdentity(ctx, id), req)
	}
}
