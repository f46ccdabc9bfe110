// Package eventdb archives event log records in Postgres.
package eventdb

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openlava/openlava-go/internal/common/database"
	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrations returns the schema of the archive.
func Migrations() ([]database.Migration, error) {
	return database.ReadMigrations(migrationFiles, "sql")
}

// EventDb stores events in the event table. Storing an event that is already there is a no-op, so a batch
// may be stored again after a restart.
type EventDb struct {
	db          *pgxpool.Pool
	maxAttempts uint
	backoff     time.Duration
}

func NewEventDb(db *pgxpool.Pool) *EventDb {
	return &EventDb{db: db, maxAttempts: 10, backoff: time.Second}
}

func (e *EventDb) Name() string {
	return "archive"
}

// Store inserts events, retrying on transient database errors.
func (e *EventDb) Store(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}
	start := time.Now()
	err := retry.Do(
		func() error { return e.insertBatch(ctx, events) },
		retry.Context(ctx),
		retry.Attempts(e.maxAttempts),
		retry.Delay(e.backoff),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(time.Minute),
		retry.LastErrorOnly(true),
		retry.RetryIf(database.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).Warnf("Retryable error inserting events, attempt %d", n+1)
		}),
	)
	if err != nil {
		return errors.Wrapf(err, "archiving %d events", len(events))
	}
	log.Debugf("Archived %d events in %s", len(events), time.Since(start))
	return nil
}

func (e *EventDb) insertBatch(ctx context.Context, events []*model.Event) error {
	tmpTable := uniqueTableName("event")

	createTmp := func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
				CREATE TEMPORARY TABLE %s
				(
				  log_name    text,
				  line        bigint,
				  end_offset  bigint,
				  event_type  text,
				  event_time  timestamptz,
				  job_id      bigint,
				  array_index int,
				  record      text,
				  payload     jsonb
				) ON COMMIT DROP;`, tmpTable))
		return errors.WithStack(err)
	}

	insertTmp := func(tx pgx.Tx) error {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{tmpTable},
			[]string{"log_name", "line", "end_offset", "event_type", "event_time", "job_id", "array_index", "record", "payload"},
			pgx.CopyFromSlice(len(events), func(i int) ([]interface{}, error) {
				return row(events[i]), nil
			}),
		)
		return errors.WithStack(err)
	}

	copyToDest := func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
				INSERT INTO event (log_name, line, end_offset, event_type, event_time, job_id, array_index, record, payload)
				SELECT * FROM %s
				ON CONFLICT DO NOTHING`, tmpTable))
		return errors.WithStack(err)
	}

	return batchInsert(ctx, e.db, createTmp, insertTmp, copyToDest)
}

func row(e *model.Event) []interface{} {
	var eventTime, jobId, arrayIndex interface{}
	if !e.Time.IsZero() {
		eventTime = e.Time
	}
	if e.JobId != lsb.NoJob {
		jobId = e.JobId.BaseId()
		arrayIndex = int32(e.JobId.ArrayIndex())
	}
	return []interface{}{
		e.LogName, e.End.Line, e.End.Offset, e.Type.String(), eventTime, jobId, arrayIndex, string(e.Text), string(e.Json),
	}
}

// LastPosition returns the boundary after the last archived record of logName.
// The second value is false if nothing has been archived.
func (e *EventDb) LastPosition(ctx context.Context, logName string) (eventlog.Position, bool, error) {
	sql, args, err := lastPositionQuery(logName)
	if err != nil {
		return eventlog.Position{}, false, err
	}
	var pos eventlog.Position
	err = e.db.QueryRow(ctx, sql, args...).Scan(&pos.Line, &pos.Offset)
	if errors.Is(err, pgx.ErrNoRows) {
		return eventlog.Position{}, false, nil
	}
	if err != nil {
		return eventlog.Position{}, false, errors.WithStack(err)
	}
	return pos, true, nil
}

// JobEvents returns the archived records of a job in log order.
func (e *EventDb) JobEvents(ctx context.Context, logName string, jobId lsb.JobId) ([]string, error) {
	sql, args, err := jobEventsQuery(logName, jobId)
	if err != nil {
		return nil, err
	}
	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()
	var records []string
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, errors.WithStack(err)
		}
		records = append(records, record)
	}
	return records, errors.WithStack(rows.Err())
}

func uniqueTableName(table string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_tmp_%s", table, suffix)
}

func batchInsert(ctx context.Context, db *pgxpool.Pool, createTmp func(pgx.Tx) error,
	insertTmp func(pgx.Tx) error, copyToDest func(pgx.Tx) error,
) error {
	return db.BeginTxFunc(ctx, pgx.TxOptions{
		IsoLevel:       pgx.ReadCommitted,
		AccessMode:     pgx.ReadWrite,
		DeferrableMode: pgx.Deferrable,
	}, func(tx pgx.Tx) error {
		// Stage the rows in a temporary table so conflicts can be skipped on the way to the real one
		if err := createTmp(tx); err != nil {
			return err
		}
		if err := insertTmp(tx); err != nil {
			return err
		}
		return copyToDest(tx)
	})
}
