package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

type QueryState int

const (
	QueryOpen QueryState = iota
	// All matching jobs have been read.
	QueryExhausted
	QueryClosed
)

func (s QueryState) String() string {
	switch s {
	case QueryOpen:
		return "Open"
	case QueryExhausted:
		return "Exhausted"
	case QueryClosed:
		return "Closed"
	}
	return fmt.Sprintf("QueryState(%d)", int(s))
}

// JobQuery iterates over the jobs matching a filter. It must be closed once the caller is done with it,
// whether or not all jobs were read.
type JobQuery struct {
	client *Client
	filter lsb.JobQuery
	count  int
	read   int
	// False if the daemon has nothing open for this query, i.e. when nothing matched.
	remote bool
	// Record read from the daemon but not yet copied. It stays valid until the next daemon call.
	pending *lsb.JobRecord

	mu    sync.Mutex
	state QueryState
}

// OpenJobQuery starts a job query on the daemon.
//
// Only one query may be live per client; opening another before closing the first returns an *lsberrors.ErrUsage
// and leaves the live query untouched. If no job matches, the returned query is already exhausted and has a
// count of zero.
func (c *Client) OpenJobQuery(ctx context.Context, filter lsb.JobQuery) (*JobQuery, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != nil {
		return nil, errors.WithStack(&lsberrors.ErrUsage{
			Operation: "OpenJobQuery",
			Message:   "a job query is already open on this client; close it first",
		})
	}

	count, err := c.daemon.OpenJobInfo(ctx, &filter)
	if code, ok := lsberrors.RejectCodeOf(err); ok && code == lsberrors.RejectNoJob {
		log.WithField("filter", filter).Debug("no job matched")
		return &JobQuery{client: c, filter: filter, state: QueryExhausted}, nil
	}
	if err != nil {
		return nil, daemonError("OpenJobQuery", err)
	}

	q := &JobQuery{client: c, filter: filter, count: count, remote: true}
	if count == 0 {
		q.state = QueryExhausted
	}
	c.live = q
	return q, nil
}

// Count returns the number of jobs that matched when the query was opened.
func (q *JobQuery) Count() int {
	return q.count
}

func (q *JobQuery) Filter() lsb.JobQuery {
	return q.filter
}

func (q *JobQuery) State() QueryState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Read returns a copy of the next matching job, allocated through the client's allocator and owned by the
// caller (see Client.Release). After the last job it returns io.EOF, on this and every later call.
// Reading a closed query returns an *lsberrors.ErrUsage. If the copy fails, the job is not lost: the next Read
// copies it again before reading further.
func (q *JobQuery) Read(ctx context.Context) (*lsb.JobRecord, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch q.state {
	case QueryClosed:
		return nil, errors.WithStack(&lsberrors.ErrUsage{Operation: "ReadJobQuery", Message: "the job query is closed"})
	case QueryExhausted:
		return nil, io.EOF
	}

	record := q.pending
	if record == nil {
		var err error
		record, err = q.client.daemon.ReadJobInfo(ctx)
		if err == io.EOF {
			q.state = QueryExhausted
			return nil, io.EOF
		}
		if err != nil {
			return nil, daemonError("ReadJobQuery", err)
		}
	}
	copied, err := record.DeepCopy(q.client.alloc)
	if err != nil {
		q.pending = record
		return nil, err
	}
	q.pending = nil
	q.read++
	if q.read >= q.count {
		q.state = QueryExhausted
	}
	return copied, nil
}

// Close ends the query on the daemon and lets the client open another. Closing twice is a no-op.
// The query is closed even if the daemon reports an error, which is returned.
func (q *JobQuery) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.state == QueryClosed {
		q.mu.Unlock()
		return nil
	}
	q.state = QueryClosed
	q.pending = nil
	q.mu.Unlock()

	if !q.remote {
		return nil
	}

	c := q.client
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == q {
		c.live = nil
	}
	if err := c.daemon.CloseJobInfo(ctx); err != nil {
		return daemonError("CloseJobQuery", err)
	}
	return nil
}
