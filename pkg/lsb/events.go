package lsb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/arena"
)

// EventType is the discriminant of an event log record. Values match the event numbers used by the daemon.
type EventType int32

const (
	EventJobNew         EventType = 1
	EventJobStart       EventType = 2
	EventJobStatus      EventType = 3
	EventJobSwitch      EventType = 4
	EventJobMove        EventType = 5
	EventQueueCtrl      EventType = 6
	EventHostCtrl       EventType = 7
	EventMbdDie         EventType = 8
	EventMbdUnfulfill   EventType = 9
	EventJobFinish      EventType = 10
	EventLoadIndex      EventType = 11
	EventChkpnt         EventType = 12
	EventMig            EventType = 13
	EventPreExecStart   EventType = 14
	EventMbdStart       EventType = 15
	EventJobModify      EventType = 17
	EventJobSignal      EventType = 18
	EventJobForward     EventType = 22
	EventJobAccept      EventType = 23
	EventStatusAck      EventType = 24
	EventJobExecute     EventType = 25
	EventJobMsg         EventType = 26
	EventJobMsgAck      EventType = 27
	EventJobRequeue     EventType = 28
	EventJobSigAct      EventType = 32
	EventSbdJobStatus   EventType = 34
	EventJobStartAccept EventType = 35
	EventJobClean       EventType = 37
	EventJobForce       EventType = 44
	EventLogSwitch      EventType = 45
)

// Names as they appear in the header of a record in the event log.
var eventTypeNames = map[EventType]string{
	EventJobNew:         "JOB_NEW",
	EventJobStart:       "JOB_START",
	EventJobStatus:      "JOB_STATUS",
	EventJobSwitch:      "JOB_SWITCH",
	EventJobMove:        "JOB_MOVE",
	EventQueueCtrl:      "QUEUE_CTRL",
	EventHostCtrl:       "HOST_CTRL",
	EventMbdDie:         "MBD_DIE",
	EventMbdUnfulfill:   "UNFULFILL",
	EventJobFinish:      "JOB_FINISH",
	EventLoadIndex:      "LOAD_INDEX",
	EventChkpnt:         "CHKPNT",
	EventMig:            "MIG",
	EventPreExecStart:   "PRE_EXEC_START",
	EventMbdStart:       "MBD_START",
	EventJobModify:      "JOB_MODIFY2",
	EventJobSignal:      "JOB_SIGNAL",
	EventJobForward:     "JOB_FORWARD",
	EventJobAccept:      "JOB_ACCEPT",
	EventStatusAck:      "JOB_STATUS_ACK",
	EventJobExecute:     "JOB_EXECUTE",
	EventJobMsg:         "JOB_MSG",
	EventJobMsgAck:      "JOB_MSG_ACK",
	EventJobRequeue:     "JOB_REQUEUE",
	EventJobSigAct:      "JOB_SIGACT",
	EventSbdJobStatus:   "SBD_JOB_STATUS",
	EventJobStartAccept: "JOB_START_ACCEPT",
	EventJobClean:       "JOB_CLEAN",
	EventJobForce:       "JOB_FORCE",
	EventLogSwitch:      "LOG_SWITCH",
}

var eventTypesByName = func() map[string]EventType {
	m := make(map[string]EventType, len(eventTypeNames))
	for t, name := range eventTypeNames {
		m[name] = t
	}
	return m
}()

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int32(t))
}

// ParseEventType returns the event type with the given log name, e.g. "JOB_NEW".
func ParseEventType(name string) (EventType, bool) {
	t, ok := eventTypesByName[name]
	return t, ok
}

// EventTypes returns every known event type in ascending order.
func EventTypes() []EventType {
	types := make([]EventType, 0, len(eventTypeNames))
	for t := EventType(0); t <= EventLogSwitch; t++ {
		if _, ok := eventTypeNames[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// EventPayload is implemented by the payload struct of every event type, and only by them.
type EventPayload interface {
	EventType() EventType
	deepCopy(c *arena.Copier) EventPayload
	release(alloc arena.Allocator)
}

// NewEventPayload returns a zero payload of the given type, or nil if the type is unknown.
func NewEventPayload(t EventType) EventPayload {
	switch t {
	case EventJobNew:
		return &JobNewEvent{}
	case EventJobStart:
		return &JobStartEvent{}
	case EventJobStatus:
		return &JobStatusEvent{}
	case EventJobSwitch:
		return &JobSwitchEvent{}
	case EventJobMove:
		return &JobMoveEvent{}
	case EventQueueCtrl:
		return &QueueCtrlEvent{}
	case EventHostCtrl:
		return &HostCtrlEvent{}
	case EventMbdDie:
		return &MbdDieEvent{}
	case EventMbdUnfulfill:
		return &MbdUnfulfillEvent{}
	case EventJobFinish:
		return &JobFinishEvent{}
	case EventLoadIndex:
		return &LoadIndexEvent{}
	case EventChkpnt:
		return &ChkpntEvent{}
	case EventMig:
		return &MigEvent{}
	case EventPreExecStart:
		return &PreExecStartEvent{}
	case EventMbdStart:
		return &MbdStartEvent{}
	case EventJobModify:
		return &JobModifyEvent{}
	case EventJobSignal:
		return &JobSignalEvent{}
	case EventJobForward:
		return &JobForwardEvent{}
	case EventJobAccept:
		return &JobAcceptEvent{}
	case EventStatusAck:
		return &StatusAckEvent{}
	case EventJobExecute:
		return &JobExecuteEvent{}
	case EventJobMsg:
		return &JobMsgEvent{}
	case EventJobMsgAck:
		return &JobMsgAckEvent{}
	case EventJobRequeue:
		return &JobRequeueEvent{}
	case EventJobSigAct:
		return &JobSigActEvent{}
	case EventSbdJobStatus:
		return &SbdJobStatusEvent{}
	case EventJobStartAccept:
		return &JobStartAcceptEvent{}
	case EventJobClean:
		return &JobCleanEvent{}
	case EventJobForce:
		return &JobForceEvent{}
	case EventLogSwitch:
		return &LogSwitchEvent{}
	}
	return nil
}

// EventRecord is one entry of the event log: a header and exactly one payload.
// The type is derived from the payload, so the two cannot disagree.
type EventRecord struct {
	Version string
	Time    time.Time
	payload EventPayload
}

// NewEventRecord panics if payload is nil.
func NewEventRecord(version string, t time.Time, payload EventPayload) *EventRecord {
	if payload == nil {
		panic("lsb: event record without payload")
	}
	return &EventRecord{Version: version, Time: t, payload: payload}
}

func (e *EventRecord) Type() EventType {
	if e.payload == nil {
		return 0
	}
	return e.payload.EventType()
}

// Payload returns the active payload for use in a type switch.
func (e *EventRecord) Payload() EventPayload {
	return e.payload
}

// JobId returns the job an event refers to, or NoJob for events that do not concern a single job.
func (e *EventRecord) JobId() JobId {
	if p, ok := e.payload.(interface{ jobId() JobId }); ok {
		return p.jobId()
	}
	return NoJob
}

// DeepCopy returns a copy of e that shares no storage with it. On failure nothing stays allocated.
func (e *EventRecord) DeepCopy(alloc arena.Allocator) (*EventRecord, error) {
	out := &EventRecord{Time: e.Time}
	c := &arena.Copier{Alloc: alloc}
	out.Version = c.String(e.Version)
	if e.payload != nil {
		out.payload = e.payload.deepCopy(c)
	}
	if c.Err != nil {
		out.Release(alloc)
		return nil, c.Err
	}
	return out, nil
}

// Release frees every owned field of e and its payload. The payload stays in place with null fields,
// so the type of a released record is still known. Releasing twice is a no-op.
func (e *EventRecord) Release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Version)
	if e.payload != nil {
		e.payload.release(alloc)
	}
}

type rawEventRecord struct {
	Version string          `json:"version"`
	Type    string          `json:"type"`
	Time    time.Time       `json:"time"`
	Event   json.RawMessage `json:"event"`
}

func (e *EventRecord) MarshalJSON() ([]byte, error) {
	event, err := json.Marshal(e.payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rawEventRecord{
		Version: e.Version,
		Type:    e.Type().String(),
		Time:    e.Time,
		Event:   event,
	})
}

// UnmarshalJSON uses the type name to pick the payload struct the event is decoded into.
func (e *EventRecord) UnmarshalJSON(data []byte) error {
	var raw rawEventRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, ok := ParseEventType(raw.Type)
	if !ok {
		return errors.Errorf("unknown event type %q", raw.Type)
	}
	payload := NewEventPayload(t)
	if len(raw.Event) > 0 {
		if err := json.Unmarshal(raw.Event, payload); err != nil {
			return errors.Wrapf(err, "decoding %s event", raw.Type)
		}
	}
	e.Version = raw.Version
	e.Time = raw.Time
	e.payload = payload
	return nil
}
