package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func withStore(t *testing.T, maxRows int, maxSize int, action func(s *RedisEventStore, db *miniredis.Miniredis)) {
	db, err := miniredis.Run()
	require.NoError(t, err)
	defer db.Close()
	client := redis.NewClient(&redis.Options{Addr: db.Addr()})
	defer client.Close()
	action(NewRedisEventStore(client, time.Hour, maxRows, maxSize), db)
}

func event(line int64, jobId lsb.JobId) *model.Event {
	return &model.Event{
		LogName: "lsb.events",
		End:     eventlog.Position{Line: line},
		Type:    lsb.EventJobClean,
		JobId:   jobId,
		Json:    []byte(fmt.Sprintf(`{"line":%d}`, line)),
	}
}

func TestStore(t *testing.T) {
	withStore(t, 2, 1024, func(s *RedisEventStore, db *miniredis.Miniredis) {
		events := []*model.Event{event(1, 1), event(2, lsb.NoJob), event(3, 2), event(4, 1), event(5, lsb.NewJobId(1, 3))}
		require.NoError(t, s.Store(context.Background(), events))

		stored, err := s.ReadEvents(1)
		require.NoError(t, err)
		assert.Equal(t, []string{`{"line":1}`, `{"line":4}`}, stored)

		stored, err = s.ReadEvents(lsb.NewJobId(1, 3))
		require.NoError(t, err)
		assert.Equal(t, []string{`{"line":5}`}, stored)

		assert.Equal(t, time.Hour, db.TTL(jobEventsKey(2)))
		assert.False(t, db.Exists(jobEventsKey(lsb.NoJob)))
	})
}

func TestStore_SmallChunks(t *testing.T) {
	withStore(t, 100, 12, func(s *RedisEventStore, _ *miniredis.Miniredis) {
		events := []*model.Event{event(1, 1), event(2, 1), event(3, 1)}
		require.NoError(t, s.Store(context.Background(), events))
		stored, err := s.ReadEvents(1)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})
}

func TestStore_StoringAgainDoesNotDuplicate(t *testing.T) {
	withStore(t, 2, 1024, func(s *RedisEventStore, _ *miniredis.Miniredis) {
		ctx := context.Background()
		require.NoError(t, s.Store(ctx, []*model.Event{event(1, 1), event(2, 1)}))
		require.NoError(t, s.Store(ctx, []*model.Event{event(1, 1), event(2, 1), event(3, 1)}))

		stored, err := s.ReadEvents(1)
		require.NoError(t, err)
		assert.Equal(t, []string{`{"line":1}`, `{"line":2}`, `{"line":3}`}, stored)
	})
}

func TestStore_ResetLog(t *testing.T) {
	withStore(t, 10, 1024, func(s *RedisEventStore, _ *miniredis.Miniredis) {
		ctx := context.Background()
		require.NoError(t, s.Store(ctx, []*model.Event{event(1, 1), event(2, 1)}))
		require.NoError(t, s.ResetLog("lsb.events"))
		require.NoError(t, s.Store(ctx, []*model.Event{event(1, 2)}))

		stored, err := s.ReadEvents(2)
		require.NoError(t, err)
		assert.Equal(t, []string{`{"line":1}`}, stored)
	})
}

func TestIsRetryableRedisError(t *testing.T) {
	assert.True(t, IsRetryableRedisError(fmt.Errorf("CLUSTERDOWN the cluster is down")))
	assert.True(t, IsRetryableRedisError(fmt.Errorf("ERR max number of clients reached")))
	assert.False(t, IsRetryableRedisError(fmt.Errorf("some random error")))
	assert.False(t, IsRetryableRedisError(nil))
}
