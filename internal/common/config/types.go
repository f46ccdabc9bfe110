package config

import (
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
)

type PostgresConfig struct {
	// libpq keywords, e.g. host, port, user, dbname, sslmode.
	Connection map[string]string `validate:"required"`
}

type PulsarConfig struct {
	// Pulsar URL, e.g. pulsar://localhost:6650
	URL string `validate:"required"`
	// Topic the events are published to
	Topic           string `validate:"required"`
	CompressionType pulsar.CompressionType
	// Number of times a send is attempted before the batch fails
	MaxSendAttempts uint `validate:"gte=1"`
	// How long to wait between send attempts
	SendBackoff time.Duration
}
