package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openlava/openlava-go/internal/common/grpc/configuration"
)

func TestPanicRecoveryHandler(t *testing.T) {
	err := panicRecoveryHandler("boom")
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "boom")
}

func TestCreateShutdownHandler(t *testing.T) {
	server := CreateGrpcServer(configuration.GrpcConfig{Port: 1})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- CreateShutdownHandler(ctx, time.Second, server)()
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown handler did not return")
	}
}
