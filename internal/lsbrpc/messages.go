package lsbrpc

import (
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

type Empty struct{}

type InitRequest struct {
	AppName string `json:"appName"`
}

// Rejection is set on a reply when the daemon refused the request.
type Rejection struct {
	Code    lsberrors.RejectCode `json:"code"`
	Message string               `json:"message,omitempty"`
}

func rejectionOf(err error) *Rejection {
	var e *lsberrors.ErrRemoteRejection
	if !errors.As(err, &e) {
		return nil
	}
	return &Rejection{Code: e.Code, Message: e.Message}
}

func (r *Rejection) toError(details interface{}) error {
	if r == nil {
		return nil
	}
	return errors.WithStack(&lsberrors.ErrRemoteRejection{Code: r.Code, Message: r.Message, Details: details})
}

type OpenJobInfoRequest struct {
	Query lsb.JobQuery `json:"query"`
}

type OpenJobInfoReply struct {
	Count     int        `json:"count"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

type ReadJobInfoReply struct {
	// Nil once every matching job has been read.
	Job *lsb.JobRecord `json:"job,omitempty"`
}

type SubmitRequest struct {
	Submission *lsb.Submission `json:"submission"`
}

type ModifyRequest struct {
	Submission *lsb.Submission `json:"submission"`
	JobId      lsb.JobId       `json:"jobId"`
}

type SubmitReply struct {
	Reply     lsb.SubmitReply `json:"reply"`
	Rejection *Rejection      `json:"rejection,omitempty"`
}

// InfoRequest names the queues, hosts or users to describe. Empty means all of them.
type InfoRequest struct {
	Names []string `json:"names,omitempty"`
}

type QueueInfoReply struct {
	Queues    []*lsb.QueueInfo `json:"queues"`
	Rejection *Rejection       `json:"rejection,omitempty"`
}

type HostInfoReply struct {
	Hosts     []*lsb.HostInfo `json:"hosts"`
	Rejection *Rejection      `json:"rejection,omitempty"`
}

type UserInfoReply struct {
	Users     []*lsb.UserInfo `json:"users"`
	Rejection *Rejection      `json:"rejection,omitempty"`
}

type ClusterInfoReply struct {
	Cluster lsb.ClusterInfo `json:"cluster"`
}
