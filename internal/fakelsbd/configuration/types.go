package configuration

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	grpcconfig "github.com/openlava/openlava-go/internal/common/grpc/configuration"
	"github.com/openlava/openlava-go/internal/common/logging"
	"github.com/openlava/openlava-go/internal/fakedaemon"
)

type FakeDaemonConfiguration struct {
	Logging logging.Config
	Grpc    grpcconfig.GrpcConfig
	// Metrics are served on this port if it is non-zero
	MetricsPort uint16
	// Sessions of the least recently seen clients are dropped beyond this number
	MaxSessions int `validate:"gte=1"`
	// Event records are appended to this file if set
	EventLog string
	// How long in-flight calls may take to finish on shutdown
	ShutdownGracePeriod time.Duration
	Cluster             fakedaemon.Config
	Scheduling          SchedulingConfig
}

type SchedulingConfig struct {
	// How often pending jobs are started and finished ones retired. Zero leaves every job pending.
	Interval time.Duration
	// How long a started job runs before it finishes
	RunDuration time.Duration `validate:"gte=0"`
	// Exit status every job finishes with
	ExitStatus int32
}

func (c FakeDaemonConfiguration) Validate() error {
	return errors.WithStack(validator.New().Struct(c))
}
