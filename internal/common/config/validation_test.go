package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestLogValidationErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer log.StandardLogger().ReplaceHooks(make(log.LevelHooks))

	fieldErr := validator.New().Struct(PulsarConfig{MaxSendAttempts: 1})
	err := multierror.Append(errors.WithStack(fieldErr), errors.New("JobEvents requires Redis"))
	LogValidationErrors(err)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"ConfigError: Field URL is required but was not found",
		"ConfigError: Field Topic is required but was not found",
		"ConfigError: JobEvents requires Redis",
	}, messages)
}
