package requestid

import (
	"context"
	"testing"

	"github.com/renstrom/shortuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestAddGet(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{}))

	id := shortuuid.New()
	ctx, ok := AddToIncomingContext(ctx, id)
	require.True(t, ok)
	readId, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, readId)

	id = shortuuid.New()
	ctx, ok = AddToIncomingContext(ctx, id)
	require.True(t, ok)
	readId, ok = FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, readId)
}

func TestFromContextOrMissing(t *testing.T) {
	assert.Equal(t, "missing", FromContextOrMissing(context.Background()))
}

func TestUnaryServerInterceptor(t *testing.T) {
	existing := shortuuid.New()
	tests := map[string]struct {
		ctx          context.Context
		replace      bool
		keepExisting bool
	}{
		"no metadata": {
			ctx: context.Background(),
		},
		"no id": {
			ctx: metadata.NewIncomingContext(context.Background(), metadata.MD{}),
		},
		"existing id kept": {
			ctx:          metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataKey, existing)),
			keepExisting: true,
		},
		"existing id replaced": {
			ctx:     metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataKey, existing)),
			replace: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var seen string
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				id, ok := FromContext(ctx)
				require.True(t, ok)
				seen = id
				return nil, nil
			}
			_, err := UnaryServerInterceptor(tc.replace)(tc.ctx, nil, nil, handler)
			require.NoError(t, err)
			assert.NotEmpty(t, seen)
			if tc.keepExisting {
				assert.Equal(t, existing, seen)
			} else {
				assert.NotEqual(t, existing, seen)
			}
		})
	}
}

func TestUnaryClientInterceptor(t *testing.T) {
	clientId := NewClientId()
	var outgoing metadata.MD
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		outgoing, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}
	chained := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn) error {
		return UnaryClientInterceptor()(ctx, method, req, reply, cc, invoker)
	}

	err := chained(WithClientId(context.Background(), clientId), "/m", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{clientId}, outgoing.Get(ClientIdMetadataKey))
	require.Len(t, outgoing.Get(MetadataKey), 1)
	assert.NotEmpty(t, outgoing.Get(MetadataKey)[0])

	ctx := metadata.AppendToOutgoingContext(context.Background(), MetadataKey, "fixed")
	require.NoError(t, UnaryClientInterceptor()(ctx, "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"fixed"}, outgoing.Get(MetadataKey))
}
