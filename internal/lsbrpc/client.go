package lsbrpc

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/common/requestid"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// DaemonClient talks to a daemon over a gRPC connection. It identifies itself with a client id of its own, so
// several DaemonClients may share one connection while keeping separate job queries.
type DaemonClient struct {
	cc       grpc.ClientConnInterface
	clientId string
	// Call options for calls that are safe to repeat.
	retry []grpc.CallOption
}

// NewDaemonClient returns a client using cc. retryOpts are added to the calls that are safe to repeat,
// which excludes reading the next job and submitting.
func NewDaemonClient(cc grpc.ClientConnInterface, retryOpts ...grpc.CallOption) *DaemonClient {
	return &DaemonClient{cc: cc, clientId: requestid.NewClientId(), retry: retryOpts}
}

func (c *DaemonClient) ClientId() string {
	return c.clientId
}

func (c *DaemonClient) invoke(ctx context.Context, method string, in, out interface{}, repeatable bool) error {
	opts := []grpc.CallOption{grpc.ForceCodec(jsonCodec{})}
	if repeatable {
		opts = append(opts, c.retry...)
	}
	ctx = requestid.WithClientId(ctx, c.clientId)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *DaemonClient) Init(ctx context.Context, appName string) error {
	err := c.invoke(ctx, methodInit, &InitRequest{AppName: appName}, &Empty{}, true)
	return callError("Init", err)
}

func (c *DaemonClient) OpenJobInfo(ctx context.Context, query *lsb.JobQuery) (int, error) {
	reply := &OpenJobInfoReply{}
	if err := c.invoke(ctx, methodOpenJobInfo, &OpenJobInfoRequest{Query: *query}, reply, true); err != nil {
		return 0, callError("OpenJobInfo", err)
	}
	if err := reply.Rejection.toError(nil); err != nil {
		return 0, err
	}
	return reply.Count, nil
}

func (c *DaemonClient) ReadJobInfo(ctx context.Context) (*lsb.JobRecord, error) {
	reply := &ReadJobInfoReply{}
	if err := c.invoke(ctx, methodReadJobInfo, &Empty{}, reply, false); err != nil {
		return nil, callError("ReadJobInfo", err)
	}
	if reply.Job == nil {
		return nil, io.EOF
	}
	return reply.Job, nil
}

func (c *DaemonClient) CloseJobInfo(ctx context.Context) error {
	err := c.invoke(ctx, methodCloseJobInfo, &Empty{}, &Empty{}, true)
	return callError("CloseJobInfo", err)
}

func (c *DaemonClient) Submit(ctx context.Context, sub *lsb.Submission) (*lsb.SubmitReply, error) {
	reply := &SubmitReply{}
	if err := c.invoke(ctx, methodSubmit, &SubmitRequest{Submission: sub}, reply, false); err != nil {
		return nil, callError("Submit", err)
	}
	return &reply.Reply, reply.Rejection.toError(&reply.Reply)
}

func (c *DaemonClient) Modify(ctx context.Context, sub *lsb.Submission, jobId lsb.JobId) (*lsb.SubmitReply, error) {
	reply := &SubmitReply{}
	if err := c.invoke(ctx, methodModify, &ModifyRequest{Submission: sub, JobId: jobId}, reply, false); err != nil {
		return nil, callError("Modify", err)
	}
	return &reply.Reply, reply.Rejection.toError(&reply.Reply)
}

func (c *DaemonClient) QueueInfo(ctx context.Context, names []string) ([]*lsb.QueueInfo, error) {
	reply := &QueueInfoReply{}
	if err := c.invoke(ctx, methodQueueInfo, &InfoRequest{Names: names}, reply, true); err != nil {
		return nil, callError("QueueInfo", err)
	}
	if err := reply.Rejection.toError(nil); err != nil {
		return nil, err
	}
	return reply.Queues, nil
}

func (c *DaemonClient) HostInfo(ctx context.Context, names []string) ([]*lsb.HostInfo, error) {
	reply := &HostInfoReply{}
	if err := c.invoke(ctx, methodHostInfo, &InfoRequest{Names: names}, reply, true); err != nil {
		return nil, callError("HostInfo", err)
	}
	if err := reply.Rejection.toError(nil); err != nil {
		return nil, err
	}
	return reply.Hosts, nil
}

func (c *DaemonClient) UserInfo(ctx context.Context, names []string) ([]*lsb.UserInfo, error) {
	reply := &UserInfoReply{}
	if err := c.invoke(ctx, methodUserInfo, &InfoRequest{Names: names}, reply, true); err != nil {
		return nil, callError("UserInfo", err)
	}
	if err := reply.Rejection.toError(nil); err != nil {
		return nil, err
	}
	return reply.Users, nil
}

func (c *DaemonClient) ClusterInfo(ctx context.Context) (*lsb.ClusterInfo, error) {
	reply := &ClusterInfoReply{}
	if err := c.invoke(ctx, methodClusterInfo, &Empty{}, reply, true); err != nil {
		return nil, callError("ClusterInfo", err)
	}
	return &reply.Cluster, nil
}

// callError turns the status of a failed call back into the error the daemon raised.
func callError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.FailedPrecondition {
		return errors.WithStack(&lsberrors.ErrUsage{Operation: operation, Message: s.Message()})
	}
	return lsberrors.FromStatus(operation, err)
}
