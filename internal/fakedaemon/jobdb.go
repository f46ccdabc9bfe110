package fakedaemon

import (
	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/pkg/lsb"
)

const (
	jobsTable  = "jobs"
	idIndex    = "id"    // primary key
	queueIndex = "queue" // jobs of a queue
	nameIndex  = "name"  // jobs with a given name, used for name queries and dependencies
)

// storedJob is a row of the jobs table. Rows are immutable once inserted; an update inserts a new row.
type storedJob struct {
	Id     int64
	Queue  string
	Name   string
	Record *lsb.JobRecord
}

func newStoredJob(record *lsb.JobRecord) *storedJob {
	return &storedJob{
		Id:     int64(record.JobId),
		Queue:  record.Submission.Queue,
		Name:   record.JobName,
		Record: record,
	}
}

// mutableCopy returns a heap copy of the row's record that may be changed and stored again.
func (j *storedJob) mutableCopy() *lsb.JobRecord {
	record, err := j.Record.DeepCopy(arena.Heap)
	if err != nil {
		// The heap has no limit.
		panic(err)
	}
	return record
}

func newJobDb() (*memdb.MemDB, error) {
	db, err := memdb.NewMemDB(jobDbSchema())
	return db, errors.WithStack(err)
}

func upsertJob(txn *memdb.Txn, record *lsb.JobRecord) error {
	return errors.WithStack(txn.Insert(jobsTable, newStoredJob(record)))
}

// getJob returns the row with the given id, or nil.
func getJob(txn *memdb.Txn, id lsb.JobId) (*storedJob, error) {
	obj, err := txn.First(jobsTable, idIndex, int64(id))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*storedJob), nil
}

// candidates returns the rows that may match query, in ascending job id order.
// The queue and name indexes narrow the scan when the query selects on them.
func candidates(txn *memdb.Txn, query *lsb.JobQuery) ([]*storedJob, error) {
	var it memdb.ResultIterator
	var err error
	switch {
	case query.Queue != "":
		it, err = txn.Get(jobsTable, queueIndex, query.Queue)
	case query.JobName != "":
		it, err = txn.Get(jobsTable, nameIndex, query.JobName)
	default:
		it, err = txn.Get(jobsTable, idIndex)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var result []*storedJob
	for obj := it.Next(); obj != nil; obj = it.Next() {
		result = append(result, obj.(*storedJob))
	}
	// Index keys are varint encoded, which does not preserve numeric order.
	slices.SortFunc(result, func(a, b *storedJob) bool {
		return a.Id < b.Id
	})
	return result, nil
}

func jobDbSchema() *memdb.DBSchema {
	indexes := map[string]*memdb.IndexSchema{
		idIndex: {
			Name:    idIndex,
			Unique:  true,
			Indexer: &memdb.IntFieldIndex{Field: "Id"},
		},
		queueIndex: {
			Name:    queueIndex,
			Indexer: &memdb.StringFieldIndex{Field: "Queue"},
		},
		nameIndex: {
			Name:         nameIndex,
			AllowMissing: true,
			Indexer:      &memdb.StringFieldIndex{Field: "Name"},
		},
	}
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			jobsTable: {
				Name:    jobsTable,
				Indexes: indexes,
			},
		},
	}
}
