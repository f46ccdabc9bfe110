package lavactl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/testfixtures"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func TestQueues(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.Queues(context.Background(), nil))
	assert.Equal(t, [][]string{
		{"QUEUE_NAME", "PRIO", "STATUS", "MAX", "NJOBS", "PEND", "RUN", "SUSP"},
		{"normal", "0", "Open:Active", "-", "0", "0", "0", "0"},
		{"short", "0", "Open:Active", "-", "0", "0", "0", "0"},
	}, lines(app.out.String()))
}

func TestQueues_UnknownQueue(t *testing.T) {
	app := newTestApp(t)
	err := app.Queues(context.Background(), []string{"gpu"})
	code, ok := lsberrors.RejectCodeOf(err)
	assert.True(t, ok, "%v", err)
	assert.Equal(t, lsberrors.RejectBadQueue, code)
}

func TestHosts(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.Hosts(context.Background(), []string{"node2"}))
	assert.Equal(t, [][]string{
		{"HOST_NAME", "STATUS", "MAX", "NJOBS", "RUN", "SSUSP", "USUSP", "RSV"},
		{"node2", "ok", "1", "0", "0", "0", "0", "0"},
	}, lines(app.out.String()))
}

func TestUsers(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.daemon.AddJob(testfixtures.JobRecord(lsb.NewJobId(1, 0))))
	require.NoError(t, app.Users(context.Background(), nil))
	assert.Equal(t, [][]string{
		{"USER", "MAX", "NJOBS", "PEND", "RUN", "SSUSP", "USUSP", "RSV"},
		{"alice", "-", "1", "0", "1", "0", "0", "0"},
	}, lines(app.out.String()))
}

func TestCluster(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.Cluster(context.Background()))
	assert.Equal(t, [][]string{
		{"CLUSTER_NAME", "MASTER_NAME"},
		{"lava", "node1"},
	}, lines(app.out.String()))
}
