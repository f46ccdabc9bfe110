package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// submitLock serialises submissions and modifications across all clients of the process.
// It is held only for the duration of the daemon call.
var submitLock sync.Mutex

// Submit sends a new job to the daemon.
// The request is validated locally first. If the daemon refuses the job, the returned
// *lsberrors.ErrRemoteRejection carries the reply naming the offending part of the request in Details.
func (c *Client) Submit(ctx context.Context, req *lsb.SubmitRequest) (*lsb.SubmitReply, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sub := req.Submission()
	reply, err := c.locked("submit", func() (*lsb.SubmitReply, error) {
		return c.daemon.Submit(ctx, sub)
	})
	if err != nil {
		return reply, withReply(daemonError("Submit", err), reply)
	}
	log.WithField("jobId", reply.JobId).WithField("queue", reply.Queue).Info("job submitted")
	return reply, nil
}

// Modify changes the parameters of an existing job. Only the fields whose option bits are set in the request
// are changed; the modify-scope bits in Options2 say whether pending or running parameters are affected.
func (c *Client) Modify(ctx context.Context, req *lsb.SubmitRequest, jobId lsb.JobId) (*lsb.SubmitReply, error) {
	if !jobId.IsValid() {
		return nil, errors.WithStack(&lsberrors.ErrUsage{
			Operation: "Modify",
			Message:   "job id must have a positive base id, got " + jobId.String(),
		})
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sub := req.Submission()
	reply, err := c.locked("modify", func() (*lsb.SubmitReply, error) {
		return c.daemon.Modify(ctx, sub, jobId)
	})
	if err != nil {
		return reply, withReply(daemonError("Modify", err), reply)
	}
	log.WithField("jobId", jobId).Info("job modified")
	return reply, nil
}

func (c *Client) locked(operation string, call func() (*lsb.SubmitReply, error)) (*lsb.SubmitReply, error) {
	submitLock.Lock()
	defer submitLock.Unlock()
	submissionsInFlight.Inc()
	defer submissionsInFlight.Dec()

	reply, err := call()
	submissionsTotal.WithLabelValues(operation, outcome(err)).Inc()
	return reply, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case lsberrors.IsTransient(err) || lsberrors.IsNetworkError(err):
		return "unavailable"
	}
	if _, ok := lsberrors.RejectCodeOf(err); ok {
		return "rejected"
	}
	return "error"
}

func withReply(err error, reply *lsb.SubmitReply) error {
	var rejection *lsberrors.ErrRemoteRejection
	if reply != nil && errors.As(err, &rejection) && rejection.Details == nil {
		rejection.Details = reply
	}
	return err
}
