package eventlog

import (
	"encoding/json"
	"sync"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const checkpointKey = "EventLog:Checkpoint"

// CheckpointStore remembers how far each event log has been processed.
type CheckpointStore interface {
	// Load returns the saved position of the named log. The second value is false if none was saved.
	Load(logName string) (Position, bool, error)
	Save(logName string, pos Position) error
	Delete(logName string) error
}

// RedisCheckpointStore keeps one field per log in a Redis hash.
type RedisCheckpointStore struct {
	db redis.UniversalClient
}

func NewRedisCheckpointStore(db redis.UniversalClient) *RedisCheckpointStore {
	return &RedisCheckpointStore{db: db}
}

func (s *RedisCheckpointStore) Load(logName string) (Position, bool, error) {
	value, err := s.db.HGet(checkpointKey, logName).Result()
	if err == redis.Nil {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, errors.Wrapf(err, "loading checkpoint of %s", logName)
	}
	var pos Position
	if err := json.Unmarshal([]byte(value), &pos); err != nil {
		return Position{}, false, errors.Wrapf(err, "decoding checkpoint of %s", logName)
	}
	return pos, true, nil
}

func (s *RedisCheckpointStore) Save(logName string, pos Position) error {
	value, err := json.Marshal(pos)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := s.db.HSet(checkpointKey, logName, value).Err(); err != nil {
		return errors.Wrapf(err, "saving checkpoint of %s", logName)
	}
	return nil
}

func (s *RedisCheckpointStore) Delete(logName string) error {
	return errors.WithStack(s.db.HDel(checkpointKey, logName).Err())
}

// MemoryCheckpointStore keeps checkpoints in memory. It is used when no Redis is configured.
type MemoryCheckpointStore struct {
	mu        sync.Mutex
	positions map[string]Position
}

func NewMemoryCheckpointStore() *MemoryCheckpointStore {
	return &MemoryCheckpointStore{positions: make(map[string]Position)}
}

func (s *MemoryCheckpointStore) Load(logName string) (Position, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.positions[logName]
	return pos, ok, nil
}

func (s *MemoryCheckpointStore) Save(logName string, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[logName] = pos
	return nil
}

func (s *MemoryCheckpointStore) Delete(logName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, logName)
	return nil
}
