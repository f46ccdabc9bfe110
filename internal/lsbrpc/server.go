package lsbrpc

import (
	"context"
	"io"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/common/requestid"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Session is the daemon state of one client. It has the same methods as client.Daemon.
type Session interface {
	Init(ctx context.Context, appName string) error
	OpenJobInfo(ctx context.Context, query *lsb.JobQuery) (int, error)
	ReadJobInfo(ctx context.Context) (*lsb.JobRecord, error)
	CloseJobInfo(ctx context.Context) error
	Submit(ctx context.Context, sub *lsb.Submission) (*lsb.SubmitReply, error)
	Modify(ctx context.Context, sub *lsb.Submission, jobId lsb.JobId) (*lsb.SubmitReply, error)
	QueueInfo(ctx context.Context, names []string) ([]*lsb.QueueInfo, error)
	HostInfo(ctx context.Context, names []string) ([]*lsb.HostInfo, error)
	UserInfo(ctx context.Context, names []string) ([]*lsb.UserInfo, error)
	ClusterInfo(ctx context.Context) (*lsb.ClusterInfo, error)
}

// Server serves the daemon service, keeping one Session per client id.
// Sessions of the least recently seen clients are dropped once maxSessions is reached.
type Server struct {
	newSession func() Session
	sessions   *lru.Cache
}

func NewServer(maxSessions int, newSession func() Session) (*Server, error) {
	sessions, err := lru.NewWithEvict(maxSessions, func(key interface{}, value interface{}) {
		log.WithField("clientId", key).Info("dropping session of idle client")
		if err := value.(Session).CloseJobInfo(context.Background()); err != nil {
			log.WithError(err).WithField("clientId", key).Warn("failed to close job query of dropped session")
		}
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Server{newSession: newSession, sessions: sessions}, nil
}

// Sessions returns the number of clients with a live session.
func (s *Server) Sessions() int {
	return s.sessions.Len()
}

func (s *Server) session(ctx context.Context) (Session, error) {
	clientId, ok := requestid.ClientIdFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing client id")
	}
	if session, ok := s.sessions.Get(clientId); ok {
		return session.(Session), nil
	}
	session := s.newSession()
	// Another call from the same client may have raced us here; keep whichever session got in first.
	if ok, _ := s.sessions.ContainsOrAdd(clientId, session); ok {
		existing, _ := s.sessions.Get(clientId)
		return existing.(Session), nil
	}
	return session, nil
}

// serverError converts an error raised by a session into a gRPC status.
func serverError(ctx context.Context, operation string, err error) error {
	code := lsberrors.CodeFromError(err)
	entry := log.WithField("requestId", requestid.FromContextOrMissing(ctx)).WithField("operation", operation)
	if code == codes.Unknown || code == codes.Internal {
		entry.WithError(err).Error("daemon call failed")
	} else {
		entry.WithError(err).Debug("daemon call failed")
	}
	var usage *lsberrors.ErrUsage
	if errors.As(err, &usage) {
		return status.Error(code, usage.Message)
	}
	return status.Error(code, errors.Cause(err).Error())
}

func (s *Server) Init(ctx context.Context, req *InitRequest) (*Empty, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.Init(ctx, req.AppName); err != nil {
		return nil, serverError(ctx, "Init", err)
	}
	return &Empty{}, nil
}

func (s *Server) OpenJobInfo(ctx context.Context, req *OpenJobInfoRequest) (*OpenJobInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	count, err := session.OpenJobInfo(ctx, &req.Query)
	if rejection := rejectionOf(err); rejection != nil {
		return &OpenJobInfoReply{Rejection: rejection}, nil
	}
	if err != nil {
		return nil, serverError(ctx, "OpenJobInfo", err)
	}
	return &OpenJobInfoReply{Count: count}, nil
}

func (s *Server) ReadJobInfo(ctx context.Context, _ *Empty) (*ReadJobInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	job, err := session.ReadJobInfo(ctx)
	if err == io.EOF {
		return &ReadJobInfoReply{}, nil
	}
	if err != nil {
		return nil, serverError(ctx, "ReadJobInfo", err)
	}
	// The session reuses job on its next read, which only happens after this reply has been encoded.
	return &ReadJobInfoReply{Job: job}, nil
}

func (s *Server) CloseJobInfo(ctx context.Context, _ *Empty) (*Empty, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.CloseJobInfo(ctx); err != nil {
		return nil, serverError(ctx, "CloseJobInfo", err)
	}
	return &Empty{}, nil
}

func (s *Server) Submit(ctx context.Context, req *SubmitRequest) (*SubmitReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if req.Submission == nil {
		return nil, status.Error(codes.InvalidArgument, "missing submission")
	}
	return submitReply(ctx, "Submit")(session.Submit(ctx, req.Submission))
}

func (s *Server) Modify(ctx context.Context, req *ModifyRequest) (*SubmitReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if req.Submission == nil {
		return nil, status.Error(codes.InvalidArgument, "missing submission")
	}
	return submitReply(ctx, "Modify")(session.Modify(ctx, req.Submission, req.JobId))
}

func (s *Server) QueueInfo(ctx context.Context, req *InfoRequest) (*QueueInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	queues, err := session.QueueInfo(ctx, req.Names)
	if rejection := rejectionOf(err); rejection != nil {
		return &QueueInfoReply{Rejection: rejection}, nil
	}
	if err != nil {
		return nil, serverError(ctx, "QueueInfo", err)
	}
	return &QueueInfoReply{Queues: queues}, nil
}

func (s *Server) HostInfo(ctx context.Context, req *InfoRequest) (*HostInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	hosts, err := session.HostInfo(ctx, req.Names)
	if rejection := rejectionOf(err); rejection != nil {
		return &HostInfoReply{Rejection: rejection}, nil
	}
	if err != nil {
		return nil, serverError(ctx, "HostInfo", err)
	}
	return &HostInfoReply{Hosts: hosts}, nil
}

func (s *Server) UserInfo(ctx context.Context, req *InfoRequest) (*UserInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	users, err := session.UserInfo(ctx, req.Names)
	if rejection := rejectionOf(err); rejection != nil {
		return &UserInfoReply{Rejection: rejection}, nil
	}
	if err != nil {
		return nil, serverError(ctx, "UserInfo", err)
	}
	return &UserInfoReply{Users: users}, nil
}

func (s *Server) ClusterInfo(ctx context.Context, _ *Empty) (*ClusterInfoReply, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	info, err := session.ClusterInfo(ctx)
	if err != nil {
		return nil, serverError(ctx, "ClusterInfo", err)
	}
	return &ClusterInfoReply{Cluster: *info}, nil
}

func submitReply(ctx context.Context, operation string) func(*lsb.SubmitReply, error) (*SubmitReply, error) {
	return func(reply *lsb.SubmitReply, err error) (*SubmitReply, error) {
		out := &SubmitReply{}
		if reply != nil {
			out.Reply = *reply
		}
		if rejection := rejectionOf(err); rejection != nil {
			out.Rejection = rejection
			return out, nil
		}
		if err != nil {
			return nil, serverError(ctx, operation, err)
		}
		return out, nil
	}
}
