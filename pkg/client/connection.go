package client

import (
	"strings"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/openlava/openlava-go/internal/common/requestid"
)

type DaemonConnectionDetails struct {
	DaemonUrl  string
	AppName    string
	ForceNoTls bool
	// Attempts made for idempotent calls that fail with Unavailable.
	MaxRetries uint
}

type ConnectionDetails func() *DaemonConnectionDetails

func CreateDaemonConnection(config *DaemonConnectionDetails, additionalDialOptions ...grpc.DialOption) (*grpc.ClientConn, error) {
	return CreateDaemonConnectionWithCallOptions(config, []grpc.CallOption{}, additionalDialOptions...)
}

// CreateDaemonConnectionWithCallOptions dials the daemon.
// Retries are disabled by default for every call and enabled per call by the lsbrpc client for the
// idempotent ones, so that a submission is never sent twice.
func CreateDaemonConnectionWithCallOptions(
	config *DaemonConnectionDetails,
	additionalDefaultCallOptions []grpc.CallOption,
	additionalDialOptions ...grpc.DialOption,
) (*grpc.ClientConn, error) {
	retryOpts := []grpc_retry.CallOption{
		grpc_retry.WithBackoff(grpc_retry.BackoffExponential(1 * time.Second)),
		grpc_retry.WithMax(0),
	}

	callOptions := append(additionalDefaultCallOptions, grpc.WaitForReady(true))

	defaultCallOptions := grpc.WithDefaultCallOptions(callOptions...)
	unaryInterceptors := grpc.WithChainUnaryInterceptor(
		requestid.UnaryClientInterceptor(),
		grpc_retry.UnaryClientInterceptor(retryOpts...),
	)

	dialOpts := append(additionalDialOptions,
		defaultCallOptions,
		unaryInterceptors,
		transportCredentials(config))

	return grpc.Dial(config.DaemonUrl, dialOpts...)
}

// RetryCallOptions enables retries for a call that is safe to repeat.
func RetryCallOptions(config *DaemonConnectionDetails) []grpc.CallOption {
	max := config.MaxRetries
	if max == 0 {
		max = 3
	}
	return []grpc.CallOption{grpc_retry.WithMax(max)}
}

func transportCredentials(config *DaemonConnectionDetails) grpc.DialOption {
	if !config.ForceNoTls && !strings.Contains(config.DaemonUrl, "localhost") {
		return grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, ""))
	}
	return grpc.WithTransportCredentials(insecure.NewCredentials())
}
