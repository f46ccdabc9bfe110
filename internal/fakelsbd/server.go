// Package fakelsbd serves an in-memory batch daemon over gRPC, for trying out clients without a cluster.
package fakelsbd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/openlava/openlava-go/internal/common"
	grpcCommon "github.com/openlava/openlava-go/internal/common/grpc"
	"github.com/openlava/openlava-go/internal/fakedaemon"
	"github.com/openlava/openlava-go/internal/fakelsbd/configuration"
	"github.com/openlava/openlava-go/internal/lsbrpc"
)

// Serve runs the daemon until ctx is cancelled or one of its services fails.
func Serve(ctx context.Context, config *configuration.FakeDaemonConfiguration) error {
	log.Info("Fake daemon starting")
	defer log.Info("Fake daemon shutting down")

	if config.MetricsPort != 0 {
		shutdownMetrics := common.ServeMetrics(config.MetricsPort)
		defer shutdownMetrics()
	}

	var opts []fakedaemon.Option
	if config.EventLog != "" {
		events, err := openEventLog(config.EventLog)
		if err != nil {
			return err
		}
		defer func() {
			if err := events.Close(); err != nil {
				log.WithError(err).Error("failed to close event log")
			}
		}()
		opts = append(opts, fakedaemon.WithEventLog(events))
	}
	daemon, err := fakedaemon.New(config.Cluster, opts...)
	if err != nil {
		return err
	}

	server, err := lsbrpc.NewServer(config.MaxSessions, func() lsbrpc.Session { return daemon.Connect() })
	if err != nil {
		return err
	}
	grpcServer := grpcCommon.CreateGrpcServer(config.Grpc)
	lsbrpc.RegisterDaemonServer(grpcServer, server)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcCommon.Listen(config.Grpc.Port, grpcServer)
	})
	g.Go(grpcCommon.CreateShutdownHandler(ctx, config.ShutdownGracePeriod, grpcServer))
	if config.Scheduling.Interval > 0 {
		scheduler := NewScheduler(daemon, config.Cluster.Hosts, config.Scheduling.RunDuration, config.Scheduling.ExitStatus, clock.RealClock{})
		g.Go(func() error {
			return scheduler.Run(ctx, config.Scheduling.Interval)
		})
	}
	return g.Wait()
}

func openEventLog(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening event log %s", path)
	}
	return f, nil
}
