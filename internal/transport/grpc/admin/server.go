package admin

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

// NewServer returns a gRPC server with the admin service registered behind
// logging and admin authentication.
func NewServer(h AdminServer, v *auth.Verifier, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor, AuthInterceptor(v)),
	}, opts...)
	srv := grpc.NewServer(opts...)
	RegisterAdminServer(srv, h)
	return srv
}
