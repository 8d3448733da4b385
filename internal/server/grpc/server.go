// Package grpc exposes the standard grpc.health.v1 service next to the HTTP
// API so orchestrators can probe the server without speaking JSON.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check key of the user/auth API.
const ServiceName = "userauth.v1.UserAuthService"

// Pinger reports whether the credential store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address       string
	logger        logging.Logger
	store         Pinger
	probeInterval time.Duration
	health        *health.Server
}

func NewGRPCServer(address string, l logging.Logger, store Pinger, probeInterval time.Duration) *GRPCServer {
	return &GRPCServer{
		address:       address,
		logger:        l.With("module", "grpc_server"),
		store:         store,
		probeInterval: probeInterval,
		health:        health.NewServer(),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then drains them.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)

	go func() {
		if s.probeInterval <= 0 {
			<-ctx.Done()
		} else {
			t := time.NewTicker(s.probeInterval)
			defer t.Stop()
		loop:
			for {
				select {
				case <-ctx.Done():
					break loop
				case <-t.C:
					s.probe(ctx)
				}
			}
		}
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}

// probe pings the store and publishes the result for both the server-wide
// and the API service keys.
func (s *GRPCServer) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.store != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.store.PingContext(pctx)
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "store ping failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
