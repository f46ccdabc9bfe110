package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	commonconfig "github.com/openlava/openlava-go/internal/common/config"
)

func validConfig() EventIngesterConfiguration {
	return EventIngesterConfiguration{
		EventLog:      "/var/lava/work/logdir/lsb.events",
		PollInterval:  time.Second,
		BatchSize:     100,
		BatchDuration: time.Second,
		Postgres:      &commonconfig.PostgresConfig{Connection: map[string]string{"host": "localhost"}},
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		modify func(c *EventIngesterConfiguration)
		valid  bool
	}{
		"valid": {
			modify: func(c *EventIngesterConfiguration) {},
			valid:  true,
		},
		"no log": {
			modify: func(c *EventIngesterConfiguration) { c.EventLog = "" },
		},
		"zero batch size": {
			modify: func(c *EventIngesterConfiguration) { c.BatchSize = 0 },
		},
		"no sink": {
			modify: func(c *EventIngesterConfiguration) { c.Postgres = nil },
		},
		"job events without redis": {
			modify: func(c *EventIngesterConfiguration) {
				c.JobEvents = &JobEventsConfig{RetentionDuration: time.Hour, MaxRows: 10, MaxSize: 1024}
			},
		},
		"job events with redis": {
			modify: func(c *EventIngesterConfiguration) {
				c.Postgres = nil
				c.Redis = &commonconfig.RedisConfig{Addrs: []string{"localhost:6379"}}
				c.JobEvents = &JobEventsConfig{RetentionDuration: time.Hour, MaxRows: 10, MaxSize: 1024}
			},
			valid: true,
		},
		"pulsar without topic": {
			modify: func(c *EventIngesterConfiguration) {
				c.Pulsar = &commonconfig.PulsarConfig{URL: "pulsar://localhost:6650", MaxSendAttempts: 1}
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			tc.modify(&c)
			err := c.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestName(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "lsb.events", c.Name())
	c.LogName = "cluster1"
	assert.Equal(t, "cluster1", c.Name())
}
