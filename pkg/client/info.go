package client

import (
	"context"

	"github.com/openlava/openlava-go/pkg/lsb"
)

// Queues describes the named queues, or every queue when no name is given.
func (c *Client) Queues(ctx context.Context, names ...string) ([]*lsb.QueueInfo, error) {
	queues, err := c.daemon.QueueInfo(ctx, names)
	if err != nil {
		return nil, daemonError("QueueInfo", err)
	}
	return queues, nil
}

// Hosts describes the named batch hosts, or every host when no name is given.
func (c *Client) Hosts(ctx context.Context, names ...string) ([]*lsb.HostInfo, error) {
	hosts, err := c.daemon.HostInfo(ctx, names)
	if err != nil {
		return nil, daemonError("HostInfo", err)
	}
	return hosts, nil
}

// Users describes the named users, or every user known to the daemon when no name is given.
func (c *Client) Users(ctx context.Context, names ...string) ([]*lsb.UserInfo, error) {
	users, err := c.daemon.UserInfo(ctx, names)
	if err != nil {
		return nil, daemonError("UserInfo", err)
	}
	return users, nil
}

// Cluster returns the cluster name and its master host.
func (c *Client) Cluster(ctx context.Context) (*lsb.ClusterInfo, error) {
	info, err := c.daemon.ClusterInfo(ctx)
	if err != nil {
		return nil, daemonError("ClusterInfo", err)
	}
	return info, nil
}
