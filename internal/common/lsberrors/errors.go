// Package lsberrors contains the error types returned by the openlava client core.
//
// Callers should use errors.As (or the Is* helpers below) rather than comparing error values,
// since most errors are wrapped with a stack trace via github.com/pkg/errors before being returned.
//
// If several problems are found at once (e.g., a submission with multiple invalid fields), the
// function returns a *multierror.Error from github.com/hashicorp/go-multierror wrapping them.
package lsberrors

import (
	"fmt"
	"io"
	"net"
	"syscall"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrUsage is returned when a caller violates a precondition of the API, e.g. opening a second job query
// while one is still live, or passing a non-positive job id to a modify call.
// Usage errors are always local and must never be retried automatically.
type ErrUsage struct {
	// Operation that was attempted, e.g., "OpenJobQuery"
	Operation string
	// Explanation of the violated precondition
	Message string
}

func (err *ErrUsage) Error() string {
	if err.Operation == "" {
		return fmt.Sprintf("usage error: %s", err.Message)
	}
	return fmt.Sprintf("usage error in %s: %s", err.Operation, err.Message)
}

// ErrTransientConnectivity is returned when the daemon was reachable but the connection was reset or timed out.
// Idempotent reads may be retried; submissions must not be retried blindly since they may already have landed.
type ErrTransientConnectivity struct {
	Operation string
	Cause     error
}

func (err *ErrTransientConnectivity) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("transient connectivity failure during %s", err.Operation)
	}
	return fmt.Sprintf("transient connectivity failure during %s: %s", err.Operation, err.Cause)
}

func (err *ErrTransientConnectivity) Unwrap() error {
	return err.Cause
}

// RejectCode identifies why the daemon refused a request.
type RejectCode int32

const (
	RejectUnknown RejectCode = iota
	// No job matched the request. For job queries this is turned into an empty result rather than an error.
	RejectNoJob
	RejectBadQueue
	RejectQueueClosed
	RejectPermissionDenied
	RejectResourceLimit
	RejectDuplicateJobName
	RejectBadDependency
	RejectBadResourceRequest
	RejectBadJobId
	RejectBadOption
	RejectBadHost
	RejectBadUser
)

var rejectCodeNames = map[RejectCode]string{
	RejectUnknown:            "Unknown",
	RejectNoJob:              "NoJob",
	RejectBadQueue:           "BadQueue",
	RejectQueueClosed:        "QueueClosed",
	RejectPermissionDenied:   "PermissionDenied",
	RejectResourceLimit:      "ResourceLimit",
	RejectDuplicateJobName:   "DuplicateJobName",
	RejectBadDependency:      "BadDependency",
	RejectBadResourceRequest: "BadResourceRequest",
	RejectBadJobId:           "BadJobId",
	RejectBadOption:          "BadOption",
	RejectBadHost:            "BadHost",
	RejectBadUser:            "BadUser",
}

func (c RejectCode) String() string {
	if s, ok := rejectCodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("RejectCode(%d)", int32(c))
}

// ErrRemoteRejection is returned when the daemon actively refused a request.
// Details is optional and holds request-specific context, e.g. the submit reply naming the offending dependency.
type ErrRemoteRejection struct {
	Code    RejectCode
	Message string
	Details interface{}
}

func (err *ErrRemoteRejection) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("request rejected by daemon: %s", err.Code)
	}
	return fmt.Sprintf("request rejected by daemon: %s; %s", err.Code, err.Message)
}

// ErrDecode is returned when an event log record could not be decoded.
// Line is the 1-based line of the offending record and Offset the byte offset at which it starts.
type ErrDecode struct {
	Line    int64
	Offset  int64
	Message string
}

func (err *ErrDecode) Error() string {
	return fmt.Sprintf("malformed event record at line %d (offset %d): %s", err.Line, err.Offset, err.Message)
}

// ErrResourceExhausted is returned when an allocator budget is exceeded while copying a record.
type ErrResourceExhausted struct {
	Requested int
	Available int
}

func (err *ErrResourceExhausted) Error() string {
	return fmt.Sprintf("resource exhausted: requested %d blocks but only %d available", err.Requested, err.Available)
}

// IsUsage returns true if the error chain contains an ErrUsage.
func IsUsage(err error) bool {
	var e *ErrUsage
	return errors.As(err, &e)
}

// IsTransient returns true if the error chain contains an ErrTransientConnectivity.
func IsTransient(err error) bool {
	var e *ErrTransientConnectivity
	return errors.As(err, &e)
}

// IsDecode returns true if the error chain contains an ErrDecode.
func IsDecode(err error) bool {
	var e *ErrDecode
	return errors.As(err, &e)
}

// IsResourceExhausted returns true if the error chain contains an ErrResourceExhausted.
func IsResourceExhausted(err error) bool {
	var e *ErrResourceExhausted
	return errors.As(err, &e)
}

// RejectCodeOf returns the reject code of the first ErrRemoteRejection in the chain.
// The second return value is false if there is no such error.
func RejectCodeOf(err error) (RejectCode, bool) {
	var e *ErrRemoteRejection
	if errors.As(err, &e) {
		return e.Code, true
	}
	return RejectUnknown, false
}

// IsNetworkError returns true if err is a network-level failure that is expected to go away on retry,
// i.e., a reset or timed-out connection or a gRPC Unavailable status.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return true
		}
		return false
	}
	cause := errors.Cause(err)
	if cause == io.ErrUnexpectedEOF {
		return true
	}
	if errors.Is(cause, syscall.ECONNRESET) || errors.Is(cause, syscall.ECONNREFUSED) || errors.Is(cause, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(cause, &netErr) {
		return netErr.Timeout()
	}
	var opErr *net.OpError
	return errors.As(cause, &opErr)
}

// CodeFromError maps error types to gRPC return codes.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func CodeFromError(err error) codes.Code {
	// Check if the error is a gRPC status and, if so, return the embedded code.
	// If the error is nil, this returns an OK status code.
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}

	// Otherwise, we check for known error types.
	// Using {} scopes just to re-use the "e" variable name for each case.
	{
		var e *ErrUsage
		if errors.As(err, &e) {
			return codes.FailedPrecondition
		}
	}
	{
		var e *ErrTransientConnectivity
		if errors.As(err, &e) {
			return codes.Unavailable
		}
	}
	{
		var e *ErrResourceExhausted
		if errors.As(err, &e) {
			return codes.ResourceExhausted
		}
	}
	{
		var e *ErrDecode
		if errors.As(err, &e) {
			return codes.DataLoss
		}
	}
	{
		var e *ErrRemoteRejection
		if errors.As(err, &e) {
			switch e.Code {
			case RejectNoJob:
				return codes.NotFound
			case RejectPermissionDenied:
				return codes.PermissionDenied
			case RejectResourceLimit:
				return codes.ResourceExhausted
			case RejectDuplicateJobName:
				return codes.AlreadyExists
			default:
				return codes.InvalidArgument
			}
		}
	}

	return codes.Unknown
}

// FromStatus converts an error returned by a gRPC call into the error taxonomy of this package.
// Connection-level failures become ErrTransientConnectivity; other non-nil errors are returned with a stack.
func FromStatus(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsNetworkError(err) {
		return errors.WithStack(&ErrTransientConnectivity{Operation: operation, Cause: err})
	}
	return errors.Wrapf(err, "%s failed", operation)
}
