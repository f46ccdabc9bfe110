package convert

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func TestConvert(t *testing.T) {
	c := NewEventConverter("lsb.events")
	record := lsb.NewEventRecord("1.0", time.Unix(1700000000, 0).UTC(), &lsb.JobCleanEvent{JobId: lsb.NewJobId(42, 0)})
	end := eventlog.Position{Line: 3, Offset: 120}

	event, err := c.Convert(record, end)
	require.NoError(t, err)
	assert.Equal(t, "lsb.events", event.LogName)
	assert.Equal(t, end, event.End)
	assert.Equal(t, lsb.EventJobClean, event.Type)
	assert.Equal(t, lsb.NewJobId(42, 0), event.JobId)
	assert.Equal(t, `"JOB_CLEAN" "1.0" 1700000000 42 0`, string(event.Text))

	var decoded lsb.EventRecord
	require.NoError(t, json.Unmarshal(event.Json, &decoded))
	assert.Equal(t, record, &decoded)
}

func TestConvert_TextIsNotShared(t *testing.T) {
	c := NewEventConverter("lsb.events")
	first, err := c.Convert(lsb.NewEventRecord("1.0", time.Time{}, &lsb.JobCleanEvent{JobId: 1}), eventlog.Position{Line: 1})
	require.NoError(t, err)
	_, err = c.Convert(lsb.NewEventRecord("1.0", time.Time{}, &lsb.JobCleanEvent{JobId: 2}), eventlog.Position{Line: 2})
	require.NoError(t, err)
	assert.Equal(t, `"JOB_CLEAN" "1.0" 0 1 0`, string(first.Text))
}
