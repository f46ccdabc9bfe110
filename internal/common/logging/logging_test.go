package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	logger := log.New()
	var out bytes.Buffer
	require.NoError(t, configure(logger, Config{Level: "debug", Format: "json"}, &out))
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("queue", "normal").Debug("hello")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "normal", line["queue"])
}

func TestConfigure_Defaults(t *testing.T) {
	logger := log.New()
	require.NoError(t, configure(logger, Config{}, &bytes.Buffer{}))
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, logger.Formatter)
}

func TestConfigure_Invalid(t *testing.T) {
	assert.Error(t, configure(log.New(), Config{Level: "loud"}, &bytes.Buffer{}))
	assert.Error(t, configure(log.New(), Config{Format: "xml"}, &bytes.Buffer{}))
}

func TestWithStacktrace(t *testing.T) {
	err := errors.Wrap(errors.New("disk full"), "writing checkpoint")
	entry := WithStacktrace(log.NewEntry(log.New()), err)
	assert.Equal(t, err, entry.Data[log.ErrorKey])
	assert.NotNil(t, entry.Data[Stacktrace])

	entry = WithStacktrace(log.NewEntry(log.New()), assert.AnError)
	assert.NotContains(t, entry.Data, Stacktrace)
}
