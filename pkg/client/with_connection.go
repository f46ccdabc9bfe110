package client

import (
	"context"

	"google.golang.org/grpc"

	"github.com/openlava/openlava-go/internal/lsbrpc"
)

func WithConnection(connectionDetails *DaemonConnectionDetails, action func(*grpc.ClientConn) error) error {
	conn, err := CreateDaemonConnection(connectionDetails)
	if err != nil {
		return err
	}
	defer conn.Close()
	return action(conn)
}

// WithClient connects to the daemon described by connectionDetails and runs action with a client on it.
func WithClient(ctx context.Context, connectionDetails *DaemonConnectionDetails, action func(*Client) error) error {
	return WithConnection(connectionDetails, func(cc *grpc.ClientConn) error {
		daemon := lsbrpc.NewDaemonClient(cc, RetryCallOptions(connectionDetails)...)
		c, err := NewClient(ctx, daemon, connectionDetails.AppName)
		if err != nil {
			return err
		}
		return action(c)
	})
}
