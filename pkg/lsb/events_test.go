package lsb_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/testfixtures"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func TestEventTypes(t *testing.T) {
	types := lsb.EventTypes()
	assert.Len(t, types, 30)
	for _, et := range types {
		payload := lsb.NewEventPayload(et)
		require.NotNil(t, payload, et.String())
		assert.Equal(t, et, payload.EventType())

		parsed, ok := lsb.ParseEventType(et.String())
		assert.True(t, ok)
		assert.Equal(t, et, parsed)
	}
	assert.Nil(t, lsb.NewEventPayload(16))
	_, ok := lsb.ParseEventType("JOB_TELEPORT")
	assert.False(t, ok)
	assert.Equal(t, "EventType(99)", lsb.EventType(99).String())
}

func TestEventRecord_TypeFollowsPayload(t *testing.T) {
	events := testfixtures.AllEvents()
	require.Len(t, events, 30)
	for i, e := range events {
		assert.Equal(t, lsb.EventTypes()[i], e.Type())
	}
}

func TestEventRecord_Getters(t *testing.T) {
	e := lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.JobCleanEvent{JobId: 12})
	require.NotNil(t, e.GetJobClean())
	assert.Equal(t, lsb.JobId(12), e.GetJobClean().JobId)
	assert.Nil(t, e.GetJobNew())
	assert.Nil(t, e.GetJobFinish())

	// Payloads sharing a shape are still distinct variants.
	start := lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.JobStartEvent{})
	preExec := lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.PreExecStartEvent{})
	assert.NotNil(t, start.GetJobStart())
	assert.Nil(t, start.GetPreExecStart())
	assert.NotNil(t, preExec.GetPreExecStart())
	assert.Nil(t, preExec.GetJobStart())
	assert.Equal(t, lsb.EventPreExecStart, preExec.Type())
}

func TestEventRecord_JobId(t *testing.T) {
	e := lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.JobMsgAckEvent{JobId: lsb.NewJobId(7, 2)})
	assert.Equal(t, lsb.NewJobId(7, 2), e.JobId())

	e = lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.MbdStartEvent{Master: "master"})
	assert.Equal(t, lsb.NoJob, e.JobId())
}

func TestNewEventRecord_NilPayloadPanics(t *testing.T) {
	assert.Panics(t, func() { lsb.NewEventRecord("1.0", time.Unix(0, 0), nil) })
}

func TestEventRecord_DeepCopyRelease(t *testing.T) {
	for _, e := range testfixtures.AllEvents() {
		t.Run(e.Type().String(), func(t *testing.T) {
			a := arena.New()
			dup, err := e.DeepCopy(a)
			require.NoError(t, err)
			assert.Equal(t, e, dup)
			assert.Greater(t, a.Outstanding(), 0)

			dup.Release(a)
			assert.Equal(t, 0, a.Outstanding())
			assert.Equal(t, e.Type(), dup.Type())
			dup.Release(a)
			assert.Equal(t, a.Allocs(), a.Frees())
		})
	}
}

func TestEventRecord_DeepCopyFailureReleasesEverything(t *testing.T) {
	for _, e := range testfixtures.AllEvents() {
		needed := arena.New()
		dup, err := e.DeepCopy(needed)
		require.NoError(t, err)
		total := needed.Outstanding()
		dup.Release(needed)

		for limit := 1; limit < total; limit++ {
			a := arena.NewWithLimit(limit)
			_, err := e.DeepCopy(a)
			require.Error(t, err, "%s limit %d", e.Type(), limit)
			assert.True(t, lsberrors.IsResourceExhausted(err))
			assert.Equal(t, 0, a.Outstanding(), "%s limit %d", e.Type(), limit)
		}
	}
}

func TestEventRecord_CopyDoesNotAlias(t *testing.T) {
	src := testfixtures.AllEvents()[0]
	dup, err := src.DeepCopy(arena.Heap)
	require.NoError(t, err)

	src.Release(arena.Heap)
	assert.Equal(t, "", src.GetJobNew().Queue)
	assert.True(t, src.GetJobNew().AskedHosts.IsNull())

	assert.Equal(t, "queue-0", dup.GetJobNew().Queue)
	assert.Equal(t, []string{"hostA-0", "hostB-0"}, dup.GetJobNew().AskedHosts.Items())
	assert.Equal(t, "in-0.dat", dup.GetJobNew().ExtraFiles.At(0).Source)
}

func TestEventRecord_JSON(t *testing.T) {
	for _, e := range testfixtures.AllEvents() {
		t.Run(e.Type().String(), func(t *testing.T) {
			data, err := json.Marshal(e)
			require.NoError(t, err)

			var decoded lsb.EventRecord
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, e.Type(), decoded.Type())
			assert.Equal(t, e.Payload(), decoded.Payload())
			assert.Equal(t, e.Version, decoded.Version)
			assert.True(t, e.Time.Equal(decoded.Time))
		})
	}
}

func TestEventRecord_JSONUnknownType(t *testing.T) {
	var decoded lsb.EventRecord
	err := json.Unmarshal([]byte(`{"version":"1.0","type":"JOB_TELEPORT","time":"2023-01-01T00:00:00Z","event":{}}`), &decoded)
	assert.Error(t, err)
}
