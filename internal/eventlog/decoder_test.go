package eventlog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/testfixtures"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func encodeAll(t *testing.T, records []*lsb.EventRecord) []byte {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, r := range records {
		require.NoError(t, enc.Encode(r))
	}
	return buf.Bytes()
}

func TestRoundTrip_AllEventTypes(t *testing.T) {
	expected := testfixtures.AllEvents()
	data := encodeAll(t, expected)
	assert.Equal(t, len(expected), bytes.Count(data, []byte("\n")))

	d := NewDecoder(bytes.NewReader(data))
	for _, e := range expected {
		actual, err := d.Next()
		require.NoError(t, err, e.Type().String())
		assert.Equal(t, e, actual, e.Type().String())
	}
	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
	_, err = d.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, Position{Line: int64(len(expected)), Offset: int64(len(data))}, d.Position())
}

func TestDecode_CopiesDoNotAliasAcrossRecords(t *testing.T) {
	expected := testfixtures.AllEvents()
	d := NewDecoder(bytes.NewReader(encodeAll(t, expected)))
	a := arena.New()

	var kept []*lsb.EventRecord
	for range expected {
		record, err := d.Next()
		require.NoError(t, err)
		copied, err := record.DeepCopy(a)
		require.NoError(t, err)
		record.Release(arena.Heap)
		kept = append(kept, copied)
	}
	for i, e := range expected {
		assert.Equal(t, e, kept[i], e.Type().String())
	}
	for _, k := range kept {
		k.Release(a)
	}
	assert.Equal(t, 0, a.Outstanding())
}

func TestDecode_HeaderOnly(t *testing.T) {
	d := NewDecoder(strings.NewReader(`"JOB_CLEAN" "1.0" 1700000000 1234 0` + "\n"))
	record, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, lsb.EventJobClean, record.Type())
	assert.Equal(t, "1.0", record.Version)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), record.Time)
	assert.Equal(t, lsb.JobId(1234), record.GetJobClean().JobId)
}

func TestDecode_JobIdWithArrayIndex(t *testing.T) {
	d := NewDecoder(strings.NewReader(`"JOB_REQUEUE" "1.0" 0 1000 1` + "\n"))
	record, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, lsb.JobId(4294968296), record.GetJobRequeue().JobId)
	assert.True(t, record.Time.IsZero())
}

func TestDecode_QuotedStrings(t *testing.T) {
	d := NewDecoder(strings.NewReader(`"JOB_SIGNAL" "1.0" 1 7 501 0 "SIG ""TERM""" "" 0` + "\n"))
	record, err := d.Next()
	require.NoError(t, err)
	e := record.GetJobSignal()
	require.NotNil(t, e)
	assert.Equal(t, `SIG "TERM"`, e.SignalSymbol)
	assert.Equal(t, "", e.UserName)
}

func TestDecode_MalformedRecordsDoNotDesync(t *testing.T) {
	good := `"JOB_CLEAN" "1.0" 1700000000 1 0`
	tests := map[string]string{
		"unknown type":            `"JOB_TELEPORT" "1.0" 1700000000 1 0`,
		"negative count":          `"LOAD_INDEX" "1.0" 1700000000 -1`,
		"oversized count":         `"LOAD_INDEX" "1.0" 1700000000 99999999 "a"`,
		"count beyond record":     `"LOAD_INDEX" "1.0" 1700000000 3 "a"`,
		"trailing field":          `"JOB_CLEAN" "1.0" 1700000000 1 0 17`,
		"missing field":           `"JOB_CLEAN" "1.0" 1700000000 1`,
		"string for number":       `"JOB_CLEAN" "1.0" 1700000000 "1" 0`,
		"number for string":       `"MBD_DIE" "1.0" 1700000000 master 0 0`,
		"unterminated string":     `"MBD_DIE" "1.0" 1700000000 "master 0 0`,
		"bad number":              `"JOB_CLEAN" "1.0" 1700000000 12x 0`,
		"array index too large":   `"JOB_CLEAN" "1.0" 1700000000 1 70000`,
		"unquoted type":           `JOB_CLEAN "1.0" 1700000000 1 0`,
		"job id out of range":     `"JOB_CLEAN" "1.0" 1700000000 99999999999 0`,
		"garbage after string":    `"MBD_DIE" "1.0" 1700000000 "master"x 0 0`,
		"status is not a number":  `"JOB_STATUS_ACK" "1.0" 1700000000 1 x 0`,
		"negative unsigned value": `"SBD_JOB_STATUS" "1.0" 1700000000 1 -4 0 0 0 0 0 0 0 0 0 0`,
	}
	for name, bad := range tests {
		t.Run(name, func(t *testing.T) {
			input := good + "\n" + bad + "\n" + good + "\n"
			d := NewDecoder(strings.NewReader(input))

			_, err := d.Next()
			require.NoError(t, err)

			_, err = d.Next()
			require.Error(t, err)
			var decodeErr *lsberrors.ErrDecode
			require.True(t, errors.As(err, &decodeErr), "%v", err)
			assert.Equal(t, int64(2), decodeErr.Line)
			assert.Equal(t, int64(len(good)+1), decodeErr.Offset)
			assert.Equal(t, Position{Line: 2, Offset: int64(len(good) + len(bad) + 2)}, d.Position())

			record, err := d.Next()
			require.NoError(t, err)
			assert.Equal(t, lsb.EventJobClean, record.Type())

			_, err = d.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	d := NewDecoder(strings.NewReader("\n  \n\"JOB_CLEAN\" \"1.0\" 0 1 0\r\n"))
	record, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, lsb.EventJobClean, record.Type())
	assert.Equal(t, int64(3), d.Position().Line)
}

func TestDecode_IncompleteLastLine(t *testing.T) {
	var log bytes.Buffer
	log.WriteString(`"JOB_CLEAN" "1.0" 0 1`)
	d := NewDecoder(&log)

	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, Position{}, d.Position())

	log.WriteString(" 0\n")
	record, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, lsb.JobId(1), record.GetJobClean().JobId)
	assert.Equal(t, Position{Line: 1, Offset: int64(len(`"JOB_CLEAN" "1.0" 0 1 0`) + 1)}, d.Position())
}

// flakyReader fails once after handing out the first n bytes.
type flakyReader struct {
	data   []byte
	n      int
	failed bool
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if !r.failed && r.n == 0 {
		r.failed = true
		return 0, errors.New("connection reset")
	}
	limit := len(r.data)
	if !r.failed && r.n < limit {
		limit = r.n
	}
	if limit == 0 {
		return 0, io.EOF
	}
	k := copy(p, r.data[:limit])
	r.data = r.data[k:]
	if !r.failed {
		r.n -= k
	}
	return k, nil
}

func TestDecode_ReadErrorMidLineKeepsPosition(t *testing.T) {
	first := `"JOB_CLEAN" "1.0" 0 1 0` + "\n"
	second := `"JOB_CLEAN" "1.0" 0 2 0` + "\n"
	d := NewDecoder(&flakyReader{data: []byte(first + second), n: len(first) + 10})

	_, err := d.Next()
	require.NoError(t, err)
	_, err = d.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	assert.Equal(t, Position{Line: 1, Offset: int64(len(first))}, d.Position())

	record, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, lsb.JobId(2), record.GetJobClean().JobId)
	assert.Equal(t, Position{Line: 2, Offset: int64(len(first) + len(second))}, d.Position())
}

func TestNewDecoderAt_ResumesAtBoundary(t *testing.T) {
	expected := testfixtures.AllEvents()
	data := encodeAll(t, expected)

	d := NewDecoder(bytes.NewReader(data))
	for i := 0; i < 5; i++ {
		_, err := d.Next()
		require.NoError(t, err)
	}
	pos := d.Position()
	assert.Equal(t, int64(5), pos.Line)

	resumed, err := NewDecoderAt(bytes.NewReader(data), pos)
	require.NoError(t, err)
	record, err := resumed.Next()
	require.NoError(t, err)
	assert.Equal(t, expected[5], record)
	assert.Equal(t, int64(6), resumed.Position().Line)
}

func TestEncode_RejectsLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(lsb.NewEventRecord("1.0", time.Unix(0, 0), &lsb.MbdDieEvent{Master: "a\nb"}))
	assert.True(t, lsberrors.IsUsage(err))
	assert.Equal(t, 0, buf.Len())
}

func TestEncode_Format(t *testing.T) {
	var buf bytes.Buffer
	record := lsb.NewEventRecord("1.0", time.Unix(1700000000, 0), &lsb.MigEvent{
		JobId:      lsb.NewJobId(42, 3),
		AskedHosts: arena.ArrayOf("node1", `odd"name`),
		UserId:     501,
		UserName:   "alice",
	})
	require.NoError(t, NewEncoder(&buf).Encode(record))
	assert.Equal(t, `"MIG" "1.0" 1700000000 42 2 "node1" "odd""name" 501 "alice" 3`+"\n", buf.String())
}

func TestLexer(t *testing.T) {
	l := lexer{line: []byte(`  "a ""b"" c"  12 ""  -3.5`)}
	var tokens []token
	for !l.done() {
		tok, err := l.next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}
	assert.Equal(t, []token{
		{text: `a "b" c`, quoted: true},
		{text: "12"},
		{text: "", quoted: true},
		{text: "-3.5"},
	}, tokens)
}
