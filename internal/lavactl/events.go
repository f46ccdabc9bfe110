package lavactl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// EventsFilter selects the records printed by Events.
type EventsFilter struct {
	// Job whose events are printed. Without an array index every element of an array job matches.
	JobId string
	// Print each record as a JSON document instead of a table row.
	Json bool
}

// Events prints the records of an event log file. Malformed records are reported on the
// output and skipped; the number of them is returned as an error at the end.
func (a *App) Events(path string, filter EventsFilter) error {
	var jobId lsb.JobId
	if filter.JobId != "" {
		id, err := lsb.ParseJobId(filter.JobId)
		if err != nil {
			return err
		}
		jobId = id
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	w := a.tabWriter()
	if !filter.Json {
		fmt.Fprintln(w, "LINE\tTIME\tTYPE\tJOBID")
	}
	malformed := 0
	d := eventlog.NewDecoder(f)
	for {
		record, err := d.Next()
		if err == io.EOF {
			break
		}
		if lsberrors.IsDecode(err) {
			malformed++
			fmt.Fprintf(w, "%s\n", err)
			continue
		}
		if err != nil {
			w.Flush()
			return err
		}
		if jobId != 0 && !matchesJob(jobId, record.JobId()) {
			continue
		}
		if filter.Json {
			data, err := json.Marshal(record)
			if err != nil {
				w.Flush()
				return errors.WithStack(err)
			}
			fmt.Fprintf(w, "%s\n", data)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.Position().Line, formatTime(record.Time), record.Type(), eventJob(record))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if malformed > 0 {
		return errors.Errorf("%d malformed record(s) in %s", malformed, path)
	}
	return nil
}

func matchesJob(want lsb.JobId, got lsb.JobId) bool {
	if got == lsb.NoJob {
		return false
	}
	if want.ArrayIndex() == 0 {
		return want.BaseId() == got.BaseId()
	}
	return want == got
}

func eventJob(record *lsb.EventRecord) string {
	if id := record.JobId(); id != lsb.NoJob {
		return id.String()
	}
	return "-"
}
