package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Client is a handle on one daemon connection.
// The daemon holds at most one job query per connection, so the client allows a single live JobQuery at a time.
type Client struct {
	daemon  Daemon
	appName string
	alloc   arena.Allocator

	mu   sync.Mutex
	live *JobQuery
}

type Option func(*Client)

// WithAllocator makes the client copy job records through alloc instead of the heap.
func WithAllocator(alloc arena.Allocator) Option {
	return func(c *Client) {
		c.alloc = alloc
	}
}

// NewClient performs the application-name handshake with the daemon and returns a client for it.
func NewClient(ctx context.Context, daemon Daemon, appName string, opts ...Option) (*Client, error) {
	if daemon == nil {
		return nil, errors.WithStack(&lsberrors.ErrUsage{Operation: "NewClient", Message: "no daemon given"})
	}
	c := &Client{daemon: daemon, appName: appName, alloc: arena.Heap}
	for _, opt := range opts {
		opt(c)
	}
	if err := daemon.Init(ctx, appName); err != nil {
		return nil, daemonError("Init", err)
	}
	log.WithField("app", appName).Debug("connected to daemon")
	return c, nil
}

func (c *Client) AppName() string {
	return c.appName
}

// Allocator returns the allocator that owns the records handed out by this client.
func (c *Client) Allocator() arena.Allocator {
	return c.alloc
}

// Release gives back the storage of a record returned by JobQuery.Read.
func (c *Client) Release(record *lsb.JobRecord) {
	record.Release(c.alloc)
}

// daemonError maps errors returned by a Daemon onto the lsberrors taxonomy.
// Errors that already belong to it are passed through.
func daemonError(operation string, err error) error {
	var rejection *lsberrors.ErrRemoteRejection
	var usage *lsberrors.ErrUsage
	var transient *lsberrors.ErrTransientConnectivity
	switch {
	case errors.As(err, &rejection), errors.As(err, &usage), errors.As(err, &transient):
		return err
	}
	return lsberrors.FromStatus(operation, err)
}
