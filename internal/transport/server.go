// Package transport wires the administrative gRPC surface
// (internal/transport/adminpb) onto a net.Listener, with an optional
// otelgrpc stats handler and browsetrace interceptor when tracing is
// enabled.
package transport

import (
	"fmt"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"addrspaced/internal/addrspace"
	"addrspaced/internal/logger"
	"addrspaced/internal/telemetry/browsetrace"
	"addrspaced/internal/transport/adminpb"
)

type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	lgr        logger.Logger
}

type Option func(*Server)

func WithLogger(lgr logger.Logger) Option {
	return func(s *Server) { s.lgr = lgr }
}

// New builds a Server bound to lis, registering the admin service
// against sessions. When tracingEnabled is set, both the otelgrpc
// stats handler and the selective browsetrace interceptor are
// installed.
func New(lis net.Listener, sessions *addrspace.SessionManager, tracingEnabled bool, opts ...Option) *Server {
	s := &Server{listener: lis, lgr: &logger.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}

	var grpcOpts []grpc.ServerOption
	if tracingEnabled {
		grpcOpts = append(grpcOpts,
			grpc.StatsHandler(otelgrpc.NewServerHandler()),
			grpc.ChainUnaryInterceptor(browsetrace.ServerInterceptor()),
		)
	}

	s.grpcServer = grpc.NewServer(grpcOpts...)
	adminpb.RegisterAdminServer(s.grpcServer, adminpb.NewService(sessions, s.lgr))
	return s
}

func (s *Server) Start() error {
	if err := s.grpcServer.Serve(s.listener); err != nil {
		return fmt.Errorf("gRPC server stopped: %w", err)
	}
	return nil
}

func (s *Server) GracefulStop() { s.grpcServer.GracefulStop() }
func (s *Server) Stop()         { s.grpcServer.Stop() }
