package model

import (
	"time"

	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Event is one decoded event log record, ready to be stored.
type Event struct {
	LogName string
	// Boundary just after the record. End.Line is the record's line number.
	End   eventlog.Position
	Type  lsb.EventType
	Time  time.Time
	JobId lsb.JobId
	// The record as it appears in the log, without the line break.
	Text []byte
	// The record as JSON.
	Json []byte
}

// Size approximates the storage an event needs.
func (e *Event) Size() int {
	return len(e.Text) + len(e.Json)
}
