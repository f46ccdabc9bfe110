package fakelsbd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clock "k8s.io/utils/clock/testing"

	"github.com/openlava/openlava-go/internal/fakedaemon"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func newDaemon(t *testing.T, events *bytes.Buffer) *fakedaemon.Daemon {
	d, err := fakedaemon.New(fakedaemon.Config{
		Queues: []fakedaemon.QueueConfig{{Name: "normal"}},
		Hosts:  []string{"node1", "node2"},
		User:   "alice",
	}, fakedaemon.WithEventLog(events))
	require.NoError(t, err)
	return d
}

func submitJobs(t *testing.T, d *fakedaemon.Daemon, n int) {
	c := d.Connect()
	for i := 0; i < n; i++ {
		r := lsb.NewSubmitRequest()
		require.NoError(t, r.SetCommand("sleep 1"))
		_, err := c.Submit(context.Background(), r.Submission())
		require.NoError(t, err)
	}
}

func status(t *testing.T, d *fakedaemon.Daemon, id int64) lsb.JobStatus {
	job, ok := d.Job(lsb.NewJobId(id, 0))
	require.True(t, ok)
	return job.Status
}

func TestScheduler_OneJobPerHost(t *testing.T) {
	var events bytes.Buffer
	d := newDaemon(t, &events)
	submitJobs(t, d, 3)
	fakeClock := clock.NewFakeClock(time.Unix(1700000000, 0))
	s := NewScheduler(d, []string{"node1", "node2"}, time.Minute, 0, fakeClock)

	require.NoError(t, s.tick())
	assert.Equal(t, lsb.JobStatusRun, status(t, d, 1))
	assert.Equal(t, lsb.JobStatusRun, status(t, d, 2))
	assert.Equal(t, lsb.JobStatusPend, status(t, d, 3))

	fakeClock.Step(30 * time.Second)
	require.NoError(t, s.tick())
	assert.Equal(t, lsb.JobStatusPend, status(t, d, 3))

	fakeClock.Step(30 * time.Second)
	require.NoError(t, s.tick())
	assert.Equal(t, lsb.JobStatusDone, status(t, d, 1))
	assert.Equal(t, lsb.JobStatusDone, status(t, d, 2))
	assert.Equal(t, lsb.JobStatusRun, status(t, d, 3))
	assert.Len(t, s.running, 1)
	assert.Contains(t, events.String(), `"JOB_START"`)
}

func TestScheduler_ExitStatus(t *testing.T) {
	var events bytes.Buffer
	d := newDaemon(t, &events)
	submitJobs(t, d, 1)
	fakeClock := clock.NewFakeClock(time.Unix(1700000000, 0))
	s := NewScheduler(d, []string{"node1"}, 0, 3, fakeClock)

	require.NoError(t, s.tick())
	require.NoError(t, s.tick())
	job, ok := d.Job(lsb.NewJobId(1, 0))
	require.True(t, ok)
	assert.Equal(t, lsb.JobStatusExit, job.Status)
	assert.Equal(t, int32(3), job.ExitStatus)
}

func TestScheduler_RunStopsWithContext(t *testing.T) {
	var events bytes.Buffer
	d := newDaemon(t, &events)
	submitJobs(t, d, 1)
	fakeClock := clock.NewFakeClock(time.Unix(1700000000, 0))
	s := NewScheduler(d, []string{"node1"}, time.Hour, 0, fakeClock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- s.Run(ctx, time.Second)
	}()
	require.Eventually(t, fakeClock.HasWaiters, time.Second, time.Millisecond)
	fakeClock.Step(time.Second)
	require.Eventually(t, func() bool {
		job, _ := d.Job(lsb.NewJobId(1, 0))
		return job.Status == lsb.JobStatusRun
	}, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
