package convert

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// EventConverter turns decoded records into storable events. It is not safe for concurrent use.
type EventConverter struct {
	logName string
	buf     bytes.Buffer
	encoder *eventlog.Encoder
}

func NewEventConverter(logName string) *EventConverter {
	c := &EventConverter{logName: logName}
	c.encoder = eventlog.NewEncoder(&c.buf)
	return c
}

// Convert builds the event for record, which ends at end.
func (c *EventConverter) Convert(record *lsb.EventRecord, end eventlog.Position) (*model.Event, error) {
	c.buf.Reset()
	if err := c.encoder.Encode(record); err != nil {
		return nil, err
	}
	text := bytes.TrimRight(c.buf.Bytes(), "\n")

	js, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "marshalling %s record at line %d", record.Type(), end.Line)
	}
	return &model.Event{
		LogName: c.logName,
		End:     end,
		Type:    record.Type(),
		Time:    record.Time,
		JobId:   record.JobId(),
		Text:    append([]byte(nil), text...),
		Json:    js,
	}, nil
}
