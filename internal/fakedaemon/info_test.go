package fakedaemon

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func withRunningJob(t *testing.T, action func(c *Conn)) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		c := d.Connect()
		for i := 0; i < 3; i++ {
			submit(t, c, nil)
		}
		_, ok, err := d.Dispatch("node1")
		require.NoError(t, err)
		require.True(t, ok)
		action(c)
	})
}

func TestQueueInfo(t *testing.T) {
	withRunningJob(t, func(c *Conn) {
		queues, err := c.QueueInfo(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, queues, 3)

		normal := queues[0]
		assert.Equal(t, "normal", normal.Queue)
		assert.Equal(t, "Open:Active", normal.Status.String())
		assert.Equal(t, int32(3), normal.NumJobs)
		assert.Equal(t, int32(2), normal.NumPend)
		assert.Equal(t, int32(1), normal.NumRun)
		assert.Equal(t, []string{"node1", "node2"}, normal.HostList.Items())
		assert.Equal(t, lsb.DefaultRLimits(), normal.RLimits)

		assert.Equal(t, int32(0), queues[1].NumJobs)
		assert.Equal(t, "Closed:Active", queues[2].Status.String())
	})
}

func TestQueueInfo_ByName(t *testing.T) {
	withRunningJob(t, func(c *Conn) {
		queues, err := c.QueueInfo(context.Background(), []string{"short"})
		require.NoError(t, err)
		require.Len(t, queues, 1)
		assert.Equal(t, "short", queues[0].Queue)

		_, err = c.QueueInfo(context.Background(), []string{"short", "missing"})
		code, ok := lsberrors.RejectCodeOf(err)
		assert.True(t, ok)
		assert.Equal(t, lsberrors.RejectBadQueue, code)
	})
}

func TestHostInfo(t *testing.T) {
	withRunningJob(t, func(c *Conn) {
		hosts, err := c.HostInfo(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, hosts, 2)

		assert.Equal(t, "node1", hosts[0].Host)
		assert.Equal(t, lsb.HostStatusFull, hosts[0].Status)
		assert.Equal(t, "closed", hosts[0].Status.String())
		assert.Equal(t, int32(1), hosts[0].NumRun)
		assert.Equal(t, int32(1), hosts[0].MaxJobs)

		assert.Equal(t, "ok", hosts[1].Status.String())
		assert.Equal(t, int32(0), hosts[1].NumJobs)

		_, err = c.HostInfo(context.Background(), []string{"node9"})
		code, _ := lsberrors.RejectCodeOf(err)
		assert.Equal(t, lsberrors.RejectBadHost, code)
	})
}

func TestUserInfo(t *testing.T) {
	withRunningJob(t, func(c *Conn) {
		users, err := c.UserInfo(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, &lsb.UserInfo{
			User:         "alice",
			NumStartJobs: 1,
			NumJobs:      3,
			NumPend:      2,
			NumRun:       1,
		}, users[0])

		_, err = c.UserInfo(context.Background(), []string{"bob"})
		code, _ := lsberrors.RejectCodeOf(err)
		assert.Equal(t, lsberrors.RejectBadUser, code)
	})
}

func TestClusterInfo_Defaults(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		info, err := d.Connect().ClusterInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &lsb.ClusterInfo{ClusterName: "lava", MasterName: "node1"}, info)
	})
}
