package client

import (
	"context"

	"github.com/openlava/openlava-go/pkg/lsb"
)

// Daemon is the request/response boundary to the batch daemon. The lsbrpc package provides the gRPC
// implementation; fakedaemon provides an in-process one.
//
// A Daemon serves a single client: at most one job query is open on it at a time, and the record returned by
// ReadJobInfo is reused by the next call.
type Daemon interface {
	// Init performs the application-name handshake.
	Init(ctx context.Context, appName string) error
	// OpenJobInfo starts a job query and returns the number of matching jobs.
	// If nothing matches it returns an *lsberrors.ErrRemoteRejection with code RejectNoJob.
	OpenJobInfo(ctx context.Context, query *lsb.JobQuery) (int, error)
	// ReadJobInfo returns the next matching job, or io.EOF after the last one.
	// The record is owned by the daemon and is only valid until the next call.
	ReadJobInfo(ctx context.Context) (*lsb.JobRecord, error)
	CloseJobInfo(ctx context.Context) error
	Submit(ctx context.Context, sub *lsb.Submission) (*lsb.SubmitReply, error)
	Modify(ctx context.Context, sub *lsb.Submission, jobId lsb.JobId) (*lsb.SubmitReply, error)

	// QueueInfo, HostInfo and UserInfo describe the named entries, or all of them when names is empty.
	// An unknown name is an *lsberrors.ErrRemoteRejection. The returned records belong to the caller.
	QueueInfo(ctx context.Context, names []string) ([]*lsb.QueueInfo, error)
	HostInfo(ctx context.Context, names []string) ([]*lsb.HostInfo, error)
	UserInfo(ctx context.Context, names []string) ([]*lsb.UserInfo, error)
	ClusterInfo(ctx context.Context) (*lsb.ClusterInfo, error)
}
