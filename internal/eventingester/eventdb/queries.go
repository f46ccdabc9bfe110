package eventdb

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/pkg/lsb"
)

var (
	dialect = goqu.Dialect("postgres")

	eventTable = goqu.T("event")

	event_logName    = goqu.C("log_name")
	event_line       = goqu.C("line")
	event_endOffset  = goqu.C("end_offset")
	event_jobId      = goqu.C("job_id")
	event_arrayIndex = goqu.C("array_index")
	event_record     = goqu.C("record")
)

// lastPositionQuery selects the end of the last archived record of a log.
func lastPositionQuery(logName string) (string, []interface{}, error) {
	sql, args, err := dialect.
		From(eventTable).
		Select(event_line, event_endOffset).
		Where(event_logName.Eq(logName)).
		Order(event_line.Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	return sql, args, errors.WithStack(err)
}

// jobEventsQuery selects the records of one job in log order.
func jobEventsQuery(logName string, jobId lsb.JobId) (string, []interface{}, error) {
	sql, args, err := dialect.
		From(eventTable).
		Select(event_record).
		Where(
			event_logName.Eq(logName),
			event_jobId.Eq(jobId.BaseId()),
			event_arrayIndex.Eq(int32(jobId.ArrayIndex())),
		).
		Order(event_line.Asc()).
		Prepared(true).
		ToSQL()
	return sql, args, errors.WithStack(err)
}
