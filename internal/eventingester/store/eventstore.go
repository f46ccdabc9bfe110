// Package store keeps the recent events of each job in Redis lists.
package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/pkg/lsb"
)

const (
	eventListPrefix = "Events:"
	// Hash of log name to the last line whose event has been stored.
	storedLinesKey = "Events:StoredLine"
)

// RedisEventStore appends each event's JSON to the list of its job. Lists expire once no event has been
// added to them for the retention period. Events that do not concern a job are not stored.
//
// Every chunk is written in a transaction together with the last line it covers, and events at or below
// that line are skipped, so storing a batch again after a failure does not duplicate events.
type RedisEventStore struct {
	db        redis.UniversalClient
	retention time.Duration
	maxRows   int
	maxSize   int
	backoff   time.Duration
}

func NewRedisEventStore(db redis.UniversalClient, retention time.Duration, maxRows int, maxSize int) *RedisEventStore {
	return &RedisEventStore{db: db, retention: retention, maxRows: maxRows, maxSize: maxSize, backoff: time.Second}
}

func (s *RedisEventStore) Name() string {
	return "jobevents"
}

// Store writes events such that no round trip carries more than maxRows events or maxSize bytes.
func (s *RedisEventStore) Store(ctx context.Context, events []*model.Event) error {
	stored := make(map[string]int64)
	var chunk []*model.Event
	size := 0
	for _, e := range events {
		if e.JobId == lsb.NoJob {
			continue
		}
		last, ok := stored[e.LogName]
		if !ok {
			var err error
			if last, err = s.storedLine(e.LogName); err != nil {
				return err
			}
			stored[e.LogName] = last
		}
		if e.End.Line <= last {
			continue
		}
		if len(chunk) > 0 && (len(chunk)+1 > s.maxRows || size+len(e.Json) > s.maxSize) {
			if err := s.insertWithRetry(ctx, chunk); err != nil {
				return err
			}
			chunk, size = nil, 0
		}
		chunk = append(chunk, e)
		size += len(e.Json)
	}
	if len(chunk) > 0 {
		return s.insertWithRetry(ctx, chunk)
	}
	return nil
}

func (s *RedisEventStore) insertWithRetry(ctx context.Context, events []*model.Event) error {
	err := retry.Do(
		func() error { return s.insert(events) },
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(s.backoff),
		retry.MaxDelay(time.Minute),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryableRedisError),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).Warnf("Retryable error inserting into Redis, attempt %d", n+1)
		}),
	)
	return errors.Wrapf(err, "storing %d job events", len(events))
}

func (s *RedisEventStore) insert(events []*model.Event) error {
	pipe := s.db.TxPipeline()
	keys := make(map[string]bool)
	lastLines := make(map[string]int64)
	for _, e := range events {
		key := jobEventsKey(e.JobId)
		pipe.RPush(key, e.Json)
		keys[key] = true
		lastLines[e.LogName] = e.End.Line
	}
	for key := range keys {
		pipe.Expire(key, s.retention)
	}
	for logName, line := range lastLines {
		pipe.HSet(storedLinesKey, logName, line)
	}
	_, err := pipe.Exec()
	return err
}

func (s *RedisEventStore) storedLine(logName string) (int64, error) {
	value, err := s.db.HGet(storedLinesKey, logName).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "loading stored line of %s", logName)
	}
	line, err := strconv.ParseInt(value, 10, 64)
	return line, errors.Wrapf(err, "parsing stored line of %s", logName)
}

// ResetLog forgets which events of a log have been stored. It is called when the log is read again from
// the start.
func (s *RedisEventStore) ResetLog(logName string) error {
	return errors.WithStack(s.db.HDel(storedLinesKey, logName).Err())
}

// ReadEvents returns the stored JSON events of a job, oldest first.
func (s *RedisEventStore) ReadEvents(jobId lsb.JobId) ([]string, error) {
	values, err := s.db.LRange(jobEventsKey(jobId), 0, -1).Result()
	return values, errors.WithStack(err)
}

func jobEventsKey(jobId lsb.JobId) string {
	return eventListPrefix + jobId.String()
}

// IsRetryableRedisError is largely taken from https://github.com/go-redis/redis/blob/master/error.go#L28
func IsRetryableRedisError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if s == "ERR max number of clients reached" {
		return true
	}
	for _, prefix := range []string{"LOADING ", "READONLY ", "CLUSTERDOWN ", "TRYAGAIN "} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
