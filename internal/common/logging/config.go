// Package logging configures logrus for the lava binaries.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/weaveworks/promrus"
)

const (
	FormatText = "text"
	FormatJson = "json"
)

type Config struct {
	// Log level, e.g. info, debug.
	Level string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	// Either text or json. Defaults to text.
	Format string `validate:"omitempty,oneof=text json"`
}

// ConfigureLogging sets up the standard logger from config, writing to stdout.
func ConfigureLogging(config Config) error {
	return configure(log.StandardLogger(), config, os.Stdout)
}

func configure(logger *log.Logger, config Config, out io.Writer) error {
	level := log.InfoLevel
	if config.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return errors.WithStack(err)
		}
		level = parsed
	}
	switch strings.ToLower(config.Format) {
	case "", FormatText:
		logger.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	case FormatJson:
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q, valid formats are %s and %s", config.Format, FormatText, FormatJson)
	}
	logger.SetLevel(level)
	logger.SetOutput(out)
	return nil
}

// AddPrometheusHook counts logged messages per level in Prometheus.
// Call it once per process; the hook registers its counters globally.
func AddPrometheusHook() error {
	hook, err := promrus.NewPrometheusHook()
	if err != nil {
		return errors.WithStack(err)
	}
	log.AddHook(hook)
	return nil
}

// ConfigureCliLogging sets up the standard logger for command line tools, whose output goes to stdout:
// warnings and worse are written to stderr without timestamps.
func ConfigureCliLogging() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	log.SetOutput(os.Stderr)
}
