package lsberrors

import (
	"io"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeFromError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want codes.Code
	}{
		"ErrUsage":                       {&ErrUsage{}, codes.FailedPrecondition},
		"ErrTransientConnectivity":       {&ErrTransientConnectivity{}, codes.Unavailable},
		"ErrResourceExhausted":           {&ErrResourceExhausted{}, codes.ResourceExhausted},
		"ErrDecode":                      {&ErrDecode{}, codes.DataLoss},
		"ErrRemoteRejection NoJob":       {&ErrRemoteRejection{Code: RejectNoJob}, codes.NotFound},
		"ErrRemoteRejection Permission":  {&ErrRemoteRejection{Code: RejectPermissionDenied}, codes.PermissionDenied},
		"ErrRemoteRejection BadQueue":    {&ErrRemoteRejection{Code: RejectBadQueue}, codes.InvalidArgument},
		"ErrRemoteRejection DuplicateJN": {&ErrRemoteRejection{Code: RejectDuplicateJobName}, codes.AlreadyExists},
		"pkg.Error => ErrUsage":          {errors.WithMessage(&ErrUsage{}, "foo"), codes.FailedPrecondition},
		"pkg.Error => ErrDecode":         {errors.WithStack(&ErrDecode{}), codes.DataLoss},
		"pkg.Error":                      {errors.New("foo"), codes.Unknown},
		"nil":                            {nil, codes.OK},
		"gRPC status":                    {status.New(codes.Internal, "foo").Err(), codes.Internal},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeFromError(tc.err))
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"nil":              {nil, false},
		"unavailable":      {status.Error(codes.Unavailable, "connection reset"), true},
		"deadline":         {status.Error(codes.DeadlineExceeded, "timeout"), true},
		"invalid argument": {status.Error(codes.InvalidArgument, "bad"), false},
		"reset":            {errors.WithStack(syscall.ECONNRESET), true},
		"unexpected eof":   {errors.WithStack(io.ErrUnexpectedEOF), true},
		"plain":            {errors.New("foo"), false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNetworkError(tc.err))
		})
	}
}

func TestFromStatus(t *testing.T) {
	assert.NoError(t, FromStatus("ReadJobInfo", nil))

	err := FromStatus("ReadJobInfo", status.Error(codes.Unavailable, "reset"))
	assert.True(t, IsTransient(err))
	var transient *ErrTransientConnectivity
	assert.True(t, errors.As(err, &transient))
	assert.Equal(t, "ReadJobInfo", transient.Operation)

	err = FromStatus("Submit", status.Error(codes.Internal, "boom"))
	assert.False(t, IsTransient(err))
	assert.Contains(t, err.Error(), "Submit failed")
}

func TestRejectCodeOf(t *testing.T) {
	code, ok := RejectCodeOf(errors.WithStack(&ErrRemoteRejection{Code: RejectBadQueue, Message: "no such queue"}))
	assert.True(t, ok)
	assert.Equal(t, RejectBadQueue, code)

	_, ok = RejectCodeOf(errors.New("foo"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "usage error in OpenJobQuery: session already open", (&ErrUsage{Operation: "OpenJobQuery", Message: "session already open"}).Error())
	assert.Equal(t, "request rejected by daemon: BadQueue; queue foo does not exist", (&ErrRemoteRejection{Code: RejectBadQueue, Message: "queue foo does not exist"}).Error())
	assert.Equal(t, "malformed event record at line 3 (offset 120): unknown event type", (&ErrDecode{Line: 3, Offset: 120, Message: "unknown event type"}).Error())
	assert.Equal(t, "RejectCode(99)", RejectCode(99).String())
}
