// Package fakedaemon is an in-memory batch daemon. It backs the fakelsbd development binary and serves as the
// daemon in tests of the client and transport.
package fakedaemon

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

const eventVersion = "1.0"

type QueueConfig struct {
	Name        string `validate:"required"`
	Closed      bool
	Description string
	Priority    int32
}

type Config struct {
	// Reported by ClusterInfo. The master defaults to the first host.
	ClusterName string
	MasterHost  string
	Queues []QueueConfig `validate:"required,min=1,dive"`
	// Queue of jobs submitted without one. Defaults to the first queue.
	DefaultQueue string
	// Hosts jobs may ask for and run on.
	Hosts    []string `validate:"required,min=1"`
	User     string   `validate:"required"`
	UserId   int32
	FromHost string
	Cwd      string
}

// Daemon holds the job table shared by all connections.
type Daemon struct {
	config Config
	db     *memdb.MemDB
	now    func() time.Time

	// Serialises writers, so that job ids and event log lines are assigned in the same order.
	mu     sync.Mutex
	lastId int64
	events *eventlog.Encoder
}

type Option func(*Daemon)

// WithEventLog makes the daemon append an event record to w for every change to the job table.
func WithEventLog(w io.Writer) Option {
	return func(d *Daemon) {
		d.events = eventlog.NewEncoder(w)
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Daemon) {
		d.now = now
	}
}

func New(config Config, opts ...Option) (*Daemon, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.WithStack(err)
	}
	if config.DefaultQueue == "" {
		config.DefaultQueue = config.Queues[0].Name
	}
	if config.ClusterName == "" {
		config.ClusterName = "lava"
	}
	if config.MasterHost == "" {
		config.MasterHost = config.Hosts[0]
	}
	db, err := newJobDb()
	if err != nil {
		return nil, err
	}
	d := &Daemon{config: config, db: db, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Connect returns a new client connection to the daemon.
func (d *Daemon) Connect() *Conn {
	return &Conn{daemon: d, buffer: arena.New()}
}

func (d *Daemon) queue(name string) (QueueConfig, bool) {
	i := slices.IndexFunc(d.config.Queues, func(q QueueConfig) bool { return q.Name == name })
	if i < 0 {
		return QueueConfig{}, false
	}
	return d.config.Queues[i], true
}

func (d *Daemon) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Second)
}

// writeEvent appends an event to the event log, if there is one. Must be called with mu held.
func (d *Daemon) writeEvent(payload lsb.EventPayload) {
	if d.events == nil {
		return
	}
	record := lsb.NewEventRecord(eventVersion, d.timestamp(), payload)
	if err := d.events.Encode(record); err != nil {
		log.WithError(err).WithField("event", record.Type()).Error("failed to write event record")
	}
}

// AddJob stores a copy of record as is, replacing any job with the same id.
func (d *Daemon) AddJob(record *lsb.JobRecord) error {
	copied, err := record.DeepCopy(arena.Heap)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	txn := d.db.Txn(true)
	defer txn.Abort()
	if err := upsertJob(txn, copied); err != nil {
		return err
	}
	txn.Commit()
	if base := record.JobId.BaseId(); base > d.lastId {
		d.lastId = base
	}
	return nil
}

// Job returns a copy of the job with the given id.
func (d *Daemon) Job(id lsb.JobId) (*lsb.JobRecord, bool) {
	row, err := getJob(d.db.Txn(false), id)
	if err != nil || row == nil {
		return nil, false
	}
	return row.mutableCopy(), true
}

// Dispatch starts the oldest pending job on host. It returns false if there is no pending job.
func (d *Daemon) Dispatch(host string) (lsb.JobId, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	txn := d.db.Txn(true)
	defer txn.Abort()

	pending, err := candidates(txn, &lsb.JobQuery{Options: lsb.QueryPendJob})
	if err != nil {
		return lsb.NoJob, false, err
	}
	i := slices.IndexFunc(pending, func(j *storedJob) bool { return j.Record.Status == lsb.JobStatusPend })
	if i < 0 {
		return lsb.NoJob, false, nil
	}
	record := pending[i].mutableCopy()
	record.Status = lsb.JobStatusRun
	record.StartTime = d.timestamp()
	record.ExecHosts = arena.ArrayOf(host)
	record.JobPid = int32(record.JobId.BaseId())
	if err := upsertJob(txn, record); err != nil {
		return lsb.NoJob, false, err
	}
	txn.Commit()

	d.writeEvent(&lsb.JobStartEvent{
		JobId:     record.JobId,
		Status:    lsb.JobStatusRun,
		JobPid:    record.JobPid,
		JobPGid:   record.JobPid,
		ExecHosts: arena.ArrayOf(host),
	})
	log.WithField("jobId", record.JobId).WithField("host", host).Info("job started")
	return record.JobId, true, nil
}

// Finish ends a running job. A zero exit status means the job is done, anything else that it exited.
func (d *Daemon) Finish(id lsb.JobId, exitStatus int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	txn := d.db.Txn(true)
	defer txn.Abort()

	row, err := getJob(txn, id)
	if err != nil {
		return err
	}
	if row == nil || !row.Record.Status.IsRunning() {
		return errors.WithStack(&lsberrors.ErrUsage{Operation: "Finish", Message: fmt.Sprintf("job %s is not running", id)})
	}
	record := row.mutableCopy()
	record.Status = lsb.JobStatusDone
	if exitStatus != 0 {
		record.Status = lsb.JobStatusExit
	}
	record.ExitStatus = exitStatus
	record.EndTime = d.timestamp()
	if err := upsertJob(txn, record); err != nil {
		return err
	}
	txn.Commit()

	d.writeEvent(&lsb.JobStatusEvent{
		JobId:      record.JobId,
		Status:     record.Status,
		EndTime:    record.EndTime,
		ExitStatus: exitStatus,
	})
	return nil
}
