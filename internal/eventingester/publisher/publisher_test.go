package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// fakeSender fails the first failures sends and records the rest.
type fakeSender struct {
	failures int
	sent     []*pulsar.ProducerMessage
	attempts int
}

func (f *fakeSender) Send(_ context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error) {
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("broker unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil, nil
}

func event(line int64, jobId lsb.JobId) *model.Event {
	return &model.Event{
		LogName: "lsb.events",
		End:     eventlog.Position{Line: line},
		Type:    lsb.EventJobNew,
		Time:    time.Unix(1700000000, 0).UTC(),
		JobId:   jobId,
		Json:    []byte(`{}`),
	}
}

func TestStore(t *testing.T) {
	sender := &fakeSender{}
	p := NewPulsarPublisher(sender, 3, time.Millisecond)
	require.NoError(t, p.Store(context.Background(), []*model.Event{event(1, lsb.NewJobId(7, 2)), event(2, lsb.NoJob)}))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "7", sender.sent[0].Key)
	assert.Equal(t, map[string]string{
		PropertyType:    "JOB_NEW",
		PropertyLogName: "lsb.events",
		PropertyLine:    "1",
	}, sender.sent[0].Properties)
	assert.Equal(t, "lsb.events", sender.sent[1].Key)
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	sender := &fakeSender{failures: 2}
	p := NewPulsarPublisher(sender, 3, time.Millisecond)
	require.NoError(t, p.Store(context.Background(), []*model.Event{event(1, 1)}))
	assert.Equal(t, 3, sender.attempts)
	assert.Len(t, sender.sent, 1)
}

func TestStore_GivesUp(t *testing.T) {
	sender := &fakeSender{failures: 5}
	p := NewPulsarPublisher(sender, 2, time.Millisecond)
	err := p.Store(context.Background(), []*model.Event{event(1, 1), event(2, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Equal(t, 2, sender.attempts)
	assert.Empty(t, sender.sent)
}
