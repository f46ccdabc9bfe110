package configuration

import (
	"time"

	commonconfig "github.com/openlava/openlava-go/internal/common/config"
	"github.com/openlava/openlava-go/internal/common/logging"
)

type EventIngesterConfiguration struct {
	Logging logging.Config
	// Path of the event log to ingest
	EventLog string `validate:"required"`
	// Name the log is stored under. Defaults to the base name of EventLog.
	LogName string
	// Keep waiting for new records at the end of the log instead of exiting
	Follow bool
	// How often the end of a followed log is polled for new records
	PollInterval time.Duration `validate:"required"`
	// Metrics are served on this port if it is non-zero
	MetricsPort uint16
	// Checkpoints are kept in Redis if set, and in memory otherwise
	Redis *commonconfig.RedisConfig
	// Archive to Postgres if set
	Postgres *commonconfig.PostgresConfig
	// Publish to Pulsar if set
	Pulsar *commonconfig.PulsarConfig
	// Per-job event lists in Redis, if set. Requires Redis.
	JobEvents *JobEventsConfig
	// Number of events that will be batched together before being stored
	BatchSize int `validate:"gte=1"`
	// Maximum time since the last batch before a batch will be stored
	BatchDuration time.Duration `validate:"required"`
}

type JobEventsConfig struct {
	// Time after which the events of a job expire
	RetentionDuration time.Duration `validate:"required"`
	// Largest number of events or bytes sent to Redis in one round trip
	MaxRows int `validate:"gte=1"`
	MaxSize int `validate:"gte=1"`
}
