package eventlog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Encoder writes event records in the format read by Decoder. Each record is written with a single Write call.
type Encoder struct {
	w   io.Writer
	buf bytes.Buffer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode appends one record. Strings containing a line break cannot be represented and are rejected
// with an *lsberrors.ErrUsage.
func (e *Encoder) Encode(record *lsb.EventRecord) error {
	if record.Payload() == nil {
		return errors.WithStack(&lsberrors.ErrUsage{Operation: "Encode", Message: "event record has no payload"})
	}
	e.buf.Reset()
	enc := &encoder{buf: &e.buf}
	typeName := record.Type().String()
	enc.String(&typeName)
	version := record.Version
	enc.String(&version)
	eventTime := record.Time
	enc.Time(&eventTime)
	walkPayload(enc, record.Payload())
	if enc.err != nil {
		return enc.err
	}
	e.buf.WriteByte('\n')
	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return errors.Wrapf(err, "writing %s record", typeName)
	}
	return nil
}

// encoder appends fields to a record line. The walked values are only read.
type encoder struct {
	buf *bytes.Buffer
	err error
}

func (e *encoder) field(s string) {
	if e.buf.Len() > 0 {
		e.buf.WriteByte(' ')
	}
	e.buf.WriteString(s)
}

func (e *encoder) Int32(v *int32) {
	e.field(strconv.FormatInt(int64(*v), 10))
}

func (e *encoder) Uint32(v *uint32) {
	e.field(strconv.FormatUint(uint64(*v), 10))
}

func (e *encoder) Int64(v *int64) {
	e.field(strconv.FormatInt(*v, 10))
}

func (e *encoder) Float32(v *float32) {
	e.field(strconv.FormatFloat(float64(*v), 'g', -1, 32))
}

func (e *encoder) Float64(v *float64) {
	e.field(strconv.FormatFloat(*v, 'g', -1, 64))
}

func (e *encoder) String(v *string) {
	if strings.ContainsAny(*v, "\r\n") && e.err == nil {
		e.err = errors.WithStack(&lsberrors.ErrUsage{
			Operation: "Encode",
			Message:   fmt.Sprintf("string %q contains a line break", *v),
		})
	}
	e.field(quote(*v))
}

func (e *encoder) Time(v *time.Time) {
	if v.IsZero() {
		e.field("0")
		return
	}
	e.field(strconv.FormatInt(v.Unix(), 10))
}

func (e *encoder) Duration(v *time.Duration) {
	e.field(strconv.FormatInt(int64(*v/time.Second), 10))
}

func (e *encoder) JobId(v *lsb.JobId) {
	e.field(strconv.FormatInt(v.BaseId(), 10))
}

func (e *encoder) ArrayIndex(v *lsb.JobId) {
	e.field(strconv.Itoa(v.ArrayIndex()))
}

func (e *encoder) Strings(v *arena.Array[string]) {
	e.field(strconv.Itoa(v.Len()))
	v.Each(func(_ int, s string) bool {
		e.String(&s)
		return true
	})
}

func (e *encoder) XFiles(v *arena.Array[lsb.XFile]) {
	e.field(strconv.Itoa(v.Len()))
	v.Each(func(_ int, x lsb.XFile) bool {
		e.String(&x.Source)
		e.String(&x.Dest)
		e.Int32((*int32)(&x.Options))
		return true
	})
}

func (e *encoder) RLimits(v *[lsb.NumRLimits]int64) {
	for i := range v {
		e.Int64(&v[i])
	}
}
