package eventingester

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/common"
	"github.com/openlava/openlava-go/internal/common/database"
	"github.com/openlava/openlava-go/internal/eventingester/configuration"
	"github.com/openlava/openlava-go/internal/eventingester/eventdb"
	"github.com/openlava/openlava-go/internal/eventingester/publisher"
	"github.com/openlava/openlava-go/internal/eventingester/store"
	"github.com/openlava/openlava-go/internal/eventlog"
)

// Run connects to every configured sink and ingests the configured log until ctx is cancelled.
func Run(ctx context.Context, config *configuration.EventIngesterConfiguration) error {
	log.Info("Event Ingester Starting")

	if config.MetricsPort != 0 {
		shutdownMetrics := common.ServeMetrics(config.MetricsPort)
		defer shutdownMetrics()
	}

	var sinks []Sink
	var checkpoints eventlog.CheckpointStore = eventlog.NewMemoryCheckpointStore()

	var redisClient redis.UniversalClient
	if config.Redis != nil {
		redisClient = redis.NewUniversalClient(config.Redis.AsUniversalOptions())
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.WithError(err).Error("failed to close Redis client")
			}
		}()
		checkpoints = eventlog.NewRedisCheckpointStore(redisClient)
	}

	if config.Postgres != nil {
		log.Infof("Opening connection pool to postgres")
		pool, err := database.OpenPgxPool(ctx, *config.Postgres)
		if err != nil {
			return errors.WithMessage(err, "connecting to postgres")
		}
		defer pool.Close()
		migrations, err := eventdb.Migrations()
		if err != nil {
			return err
		}
		if err := database.UpdateDatabase(ctx, pool, migrations); err != nil {
			return err
		}
		archive := eventdb.NewEventDb(pool)
		sinks = append(sinks, archive)

		// Without Redis the archive is the only durable record of progress.
		if config.Redis == nil {
			pos, found, err := archive.LastPosition(ctx, config.Name())
			if err != nil {
				return err
			}
			if found {
				if err := checkpoints.Save(config.Name(), pos); err != nil {
					return err
				}
			}
		}
	}

	if config.Pulsar != nil {
		client, err := publisher.NewPulsarClient(config.Pulsar)
		if err != nil {
			return errors.WithMessage(err, "connecting to pulsar")
		}
		defer client.Close()
		producer, err := publisher.NewProducer(client, config.Pulsar)
		if err != nil {
			return err
		}
		defer producer.Close()
		sinks = append(sinks, publisher.NewPulsarPublisher(producer, config.Pulsar.MaxSendAttempts, config.Pulsar.SendBackoff))
	}

	if config.JobEvents != nil {
		sinks = append(sinks, store.NewRedisEventStore(
			redisClient, config.JobEvents.RetentionDuration, config.JobEvents.MaxRows, config.JobEvents.MaxSize))
	}

	ingester := NewIngester(Options{
		Path:          config.EventLog,
		LogName:       config.Name(),
		Follow:        config.Follow,
		PollInterval:  config.PollInterval,
		BatchSize:     config.BatchSize,
		BatchDuration: config.BatchDuration,
	}, checkpoints, sinks...)
	err := ingester.Run(ctx)
	log.Info("Event Ingester stopped")
	return err
}
