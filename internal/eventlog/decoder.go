// Package eventlog reads and writes the daemon's event log.
//
// The log is a text file with one record per line:
//
//	"JOB_NEW" "1.0" 1700000000 1234 501 "alice" ...
//
// A record starts with the quoted event type name, the quoted schema version and the event time in seconds since
// the epoch, followed by the fields of that event type in a fixed order. Strings are quoted, with a doubled quote
// standing for a literal one; numbers are bare. Every array is preceded by its element count.
package eventlog

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// maxArrayLength bounds the element count of any array in a record.
const maxArrayLength = 1 << 16

// Position identifies a record boundary in a log.
// Line is the number of lines before the boundary and Offset its byte offset.
type Position struct {
	Line   int64 `json:"line"`
	Offset int64 `json:"offset"`
}

// Decoder reads event records from a log, one per call to Next.
// A record that cannot be decoded is consumed whole, so decoding may continue with the record after it.
type Decoder struct {
	r   *bufio.Reader
	pos Position
	// Bytes of a last line that has no newline yet.
	partial []byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// NewDecoderAt returns a decoder that starts at pos, which must be a record boundary previously
// reported by Position.
func NewDecoderAt(r io.ReadSeeker, pos Position) (*Decoder, error) {
	if _, err := r.Seek(pos.Offset, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "seeking to offset %d", pos.Offset)
	}
	d := NewDecoder(r)
	d.pos = pos
	return d, nil
}

// Position returns the boundary of the next record to be read.
func (d *Decoder) Position() Position {
	return d.pos
}

// Next returns the next record. At the end of the log it returns io.EOF. If the record is malformed it returns an
// *lsberrors.ErrDecode naming its line and offset; the next call continues with the following record.
//
// A last line without a newline is treated as a record that is still being written: it is not consumed and
// Next returns io.EOF. A later call picks it up once the line is complete.
func (d *Decoder) Next() (*lsb.EventRecord, error) {
	for {
		line, start, err := d.readLine()
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		record, err := decodeRecord(line)
		if err != nil {
			return nil, errors.WithStack(&lsberrors.ErrDecode{
				Line:    d.pos.Line,
				Offset:  start,
				Message: err.Error(),
			})
		}
		return record, nil
	}
}

func (d *Decoder) readLine() ([]byte, int64, error) {
	chunk, err := d.r.ReadBytes('\n')
	if err != nil {
		// Bytes read before the error belong to the current line and are kept for the next call.
		d.partial = append(d.partial, chunk...)
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		return nil, 0, errors.WithStack(err)
	}
	line := chunk
	if len(d.partial) > 0 {
		line = append(d.partial, chunk...)
		d.partial = nil
	}
	start := d.pos.Offset
	d.pos.Offset += int64(len(line))
	d.pos.Line++
	line = bytes.TrimRight(line, "\r\n")
	return line, start, nil
}

func decodeRecord(line []byte) (*lsb.EventRecord, error) {
	dec := &decoder{lex: lexer{line: line}}

	var typeName, version string
	var eventTime time.Time
	dec.String(&typeName)
	if dec.err != nil {
		return nil, dec.err
	}
	eventType, ok := lsb.ParseEventType(typeName)
	if !ok {
		return nil, errors.Errorf("unknown event type %q", typeName)
	}
	dec.String(&version)
	dec.Time(&eventTime)

	payload := lsb.NewEventPayload(eventType)
	walkPayload(dec, payload)
	if dec.err != nil {
		return nil, errors.Wrapf(dec.err, "%s record", typeName)
	}
	if !dec.lex.done() {
		return nil, errors.Errorf("%s record has unexpected trailing fields at column %d", typeName, dec.lex.pos+1)
	}
	return lsb.NewEventRecord(version, eventTime, payload), nil
}

// decoder reads fields from one record line. After the first error every method is a no-op.
type decoder struct {
	lex lexer
	err error
}

func (d *decoder) bare() string {
	if d.err != nil {
		return ""
	}
	tok, err := d.lex.next()
	if err != nil {
		d.err = err
		return ""
	}
	if tok.quoted {
		d.err = errors.Errorf("expected a number but found string %q", tok.text)
		return ""
	}
	return tok.text
}

func (d *decoder) integer(bits int) int64 {
	tok := d.bare()
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, bits)
	if err != nil {
		d.err = errors.Errorf("invalid integer %q", tok)
		return 0
	}
	return v
}

func (d *decoder) float(bits int) float64 {
	tok := d.bare()
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(tok, bits)
	if err != nil {
		d.err = errors.Errorf("invalid number %q", tok)
		return 0
	}
	return v
}

func (d *decoder) count() int {
	n := d.integer(32)
	if d.err != nil {
		return 0
	}
	if n < 0 || n > maxArrayLength || int(n) > d.lex.remaining() {
		d.err = errors.Errorf("invalid array length %d", n)
		return 0
	}
	return int(n)
}

func (d *decoder) Int32(v *int32) {
	*v = int32(d.integer(32))
}

func (d *decoder) Uint32(v *uint32) {
	tok := d.bare()
	if d.err != nil {
		return
	}
	u, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		d.err = errors.Errorf("invalid unsigned integer %q", tok)
		return
	}
	*v = uint32(u)
}

func (d *decoder) Int64(v *int64) {
	*v = d.integer(64)
}

func (d *decoder) Float32(v *float32) {
	*v = float32(d.float(32))
}

func (d *decoder) Float64(v *float64) {
	*v = d.float(64)
}

func (d *decoder) String(v *string) {
	if d.err != nil {
		return
	}
	tok, err := d.lex.next()
	if err != nil {
		d.err = err
		return
	}
	if !tok.quoted {
		d.err = errors.Errorf("expected a quoted string but found %q", tok.text)
		return
	}
	*v = tok.text
}

func (d *decoder) Time(v *time.Time) {
	secs := d.integer(64)
	if d.err != nil || secs == 0 {
		*v = time.Time{}
		return
	}
	*v = time.Unix(secs, 0).UTC()
}

func (d *decoder) Duration(v *time.Duration) {
	*v = time.Duration(d.integer(64)) * time.Second
}

func (d *decoder) JobId(v *lsb.JobId) {
	id := d.integer(64)
	if d.err != nil {
		return
	}
	if id < -1 || id > 0xFFFFFFFF {
		d.err = errors.Errorf("job id %d out of range", id)
		return
	}
	if id == -1 {
		*v = lsb.NoJob
		return
	}
	*v = lsb.NewJobId(id, v.ArrayIndex())
}

func (d *decoder) ArrayIndex(v *lsb.JobId) {
	idx := d.integer(32)
	if d.err != nil {
		return
	}
	if idx < 0 || idx > 0xFFFF {
		d.err = errors.Errorf("array index %d out of range", idx)
		return
	}
	if *v == lsb.NoJob {
		if idx != 0 {
			d.err = errors.Errorf("array index %d given for no job", idx)
		}
		return
	}
	*v = lsb.NewJobId(v.BaseId(), int(idx))
}

func (d *decoder) Strings(v *arena.Array[string]) {
	n := d.count()
	if d.err != nil || n == 0 {
		*v = arena.Array[string]{}
		return
	}
	items := make([]string, n)
	for i := range items {
		d.String(&items[i])
	}
	*v = arena.ArrayOf(items...)
}

func (d *decoder) XFiles(v *arena.Array[lsb.XFile]) {
	n := d.count()
	if d.err != nil || n == 0 {
		*v = arena.Array[lsb.XFile]{}
		return
	}
	items := make([]lsb.XFile, n)
	for i := range items {
		d.String(&items[i].Source)
		d.String(&items[i].Dest)
		d.Int32((*int32)(&items[i].Options))
	}
	*v = arena.ArrayOf(items...)
}

func (d *decoder) RLimits(v *[lsb.NumRLimits]int64) {
	for i := range v {
		d.Int64(&v[i])
	}
}
