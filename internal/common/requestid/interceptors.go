// Package requestid tags daemon calls with ids carried in gRPC metadata.
//
// Every call gets a request id, used to correlate client and daemon logs. Every connection additionally carries
// a client id, which the daemon uses to keep the job query state of each client apart.
package requestid

import (
	"context"

	"github.com/google/uuid"
	"github.com/renstrom/shortuuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// MetadataKey is the standard key for request ids, the same one opentelemetry uses.
	MetadataKey         = "x-request-id"
	ClientIdMetadataKey = "x-lava-client-id"
)

func fromIncoming(ctx context.Context, key string) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	ids := md.Get(key)
	if len(ids) == 0 || ids[0] == "" {
		return "", false
	}
	return ids[0], true
}

// FromContext returns the request id of an incoming call.
func FromContext(ctx context.Context) (string, bool) {
	return fromIncoming(ctx, MetadataKey)
}

// FromContextOrMissing returns the request id of an incoming call, or "missing" if there is none.
func FromContextOrMissing(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return "missing"
}

// ClientIdFromContext returns the client id of an incoming call.
func ClientIdFromContext(ctx context.Context) (string, bool) {
	return fromIncoming(ctx, ClientIdMetadataKey)
}

// NewClientId returns a fresh client id.
func NewClientId() string {
	return uuid.NewString()
}

// AddToIncomingContext returns a copy of ctx whose incoming metadata carries request id id, replacing any
// existing one. The second return value is false if ctx has no incoming metadata.
func AddToIncomingContext(ctx context.Context, id string) (context.Context, bool) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		md = md.Copy()
		md.Set(MetadataKey, id)
		return metadata.NewIncomingContext(ctx, md), true
	}
	return ctx, false
}

// UnaryServerInterceptor makes sure every incoming call has a request id. If replace is true, ids sent by the
// client are overwritten.
func UnaryServerInterceptor(replace bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if _, ok := FromContext(ctx); !ok || replace {
			if _, ok := metadata.FromIncomingContext(ctx); !ok {
				ctx = metadata.NewIncomingContext(ctx, metadata.MD{})
			}
			ctx, _ = AddToIncomingContext(ctx, shortuuid.New())
		}
		return handler(ctx, req)
	}
}

// UnaryClientInterceptor attaches a new request id to every outgoing call that does not have one yet.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if md, ok := metadata.FromOutgoingContext(ctx); !ok || len(md.Get(MetadataKey)) == 0 {
			ctx = metadata.AppendToOutgoingContext(ctx, MetadataKey, shortuuid.New())
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// WithClientId returns a copy of ctx whose outgoing metadata carries clientId.
func WithClientId(ctx context.Context, clientId string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, ClientIdMetadataKey, clientId)
}
