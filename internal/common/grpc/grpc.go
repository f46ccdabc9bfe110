package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logrus "github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openlava/openlava-go/internal/common/grpc/configuration"
	"github.com/openlava/openlava-go/internal/common/requestid"
)

// CreateGrpcServer creates a gRPC server (by calling grpc.NewServer) with request ids, logging,
// Prometheus metrics and panic recovery installed.
func CreateGrpcServer(config configuration.GrpcConfig, extra ...grpc.ServerOption) *grpc.Server {
	logger := log.NewEntry(log.StandardLogger())
	opts := append([]grpc.ServerOption{
		grpc.KeepaliveParams(config.KeepaliveParams),
		grpc.KeepaliveEnforcementPolicy(config.KeepaliveEnforcementPolicy),
		grpc_middleware.WithUnaryServerChain(
			grpc_ctxtags.UnaryServerInterceptor(),
			requestid.UnaryServerInterceptor(false),
			grpc_prometheus.UnaryServerInterceptor,
			grpc_logrus.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(panicRecoveryHandler)),
		),
	}, extra...)
	server := grpc.NewServer(opts...)
	return server
}

// Listen serves grpcServer on port until it is stopped.
// Register every service before calling it so the metrics can be initialised.
func Listen(port uint16, grpcServer *grpc.Server) error {
	grpc_prometheus.Register(grpcServer)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrapf(err, "listening on %d", port)
	}
	log.Infof("Grpc listening on %d", port)
	defer log.Info("Stopping server.")
	if err := grpcServer.Serve(lis); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// CreateShutdownHandler returns a function that shuts down the grpcServer when the context is closed.
// The server is given gracePeriod to perform a graceful showdown and is then forcably stopped if necessary.
func CreateShutdownHandler(ctx context.Context, gracePeriod time.Duration, grpcServer *grpc.Server) func() error {
	return func() error {
		<-ctx.Done()
		timer := time.AfterFunc(gracePeriod, grpcServer.Stop)
		defer timer.Stop()
		grpcServer.GracefulStop()
		return nil
	}
}

// This function is called whenever a gRPC handler panics.
func panicRecoveryHandler(p interface{}) (err error) {
	log.Errorf("Request triggered panic with cause %v \n%s", p, string(debug.Stack()))
	return status.Errorf(codes.Internal, "Internal server error caused by %v", p)
}
