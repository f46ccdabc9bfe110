package lsb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

// JobStatus is the state of a job as reported by the daemon. Values are bit flags so that a status class can be
// expressed as a mask, although a single job is always in exactly one state.
type JobStatus uint32

const (
	JobStatusNull    JobStatus = 0x00
	JobStatusPend    JobStatus = 0x01
	JobStatusPSusp   JobStatus = 0x02
	JobStatusRun     JobStatus = 0x04
	JobStatusSSusp   JobStatus = 0x08
	JobStatusUSusp   JobStatus = 0x10
	JobStatusExit    JobStatus = 0x20
	JobStatusDone    JobStatus = 0x40
	JobStatusPDone   JobStatus = 0x80
	JobStatusPErr    JobStatus = 0x100
	JobStatusWait    JobStatus = 0x200
	JobStatusUnknown JobStatus = 0x10000
)

var jobStatusNames = map[JobStatus]string{
	JobStatusNull:    "NULL",
	JobStatusPend:    "PEND",
	JobStatusPSusp:   "PSUSP",
	JobStatusRun:     "RUN",
	JobStatusSSusp:   "SSUSP",
	JobStatusUSusp:   "USUSP",
	JobStatusExit:    "EXIT",
	JobStatusDone:    "DONE",
	JobStatusPDone:   "PDONE",
	JobStatusPErr:    "PERR",
	JobStatusWait:    "WAIT",
	JobStatusUnknown: "UNKWN",
}

// String returns the short name used by the command line tools, e.g. "PEND".
// Combined post-processing flags are rendered with the main state first, e.g. "DONE+PDONE".
func (s JobStatus) String() string {
	if name, ok := jobStatusNames[s]; ok {
		return name
	}
	parts := make([]string, 0, 2)
	for _, flag := range []JobStatus{
		JobStatusPend, JobStatusPSusp, JobStatusRun, JobStatusSSusp, JobStatusUSusp,
		JobStatusExit, JobStatusDone, JobStatusPDone, JobStatusPErr, JobStatusWait, JobStatusUnknown,
	} {
		if s&flag != 0 {
			parts = append(parts, jobStatusNames[flag])
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("JobStatus(0x%x)", uint32(s))
	}
	return strings.Join(parts, "+")
}

func (s JobStatus) IsPending() bool {
	return s&(JobStatusPend|JobStatusPSusp) != 0
}

func (s JobStatus) IsRunning() bool {
	return s&JobStatusRun != 0
}

func (s JobStatus) IsSuspended() bool {
	return s&(JobStatusPSusp|JobStatusSSusp|JobStatusUSusp) != 0
}

func (s JobStatus) IsFinished() bool {
	return s&(JobStatusExit|JobStatusDone) != 0
}

// QueryOption selects which classes of jobs a job query returns.
type QueryOption uint32

const (
	// Zero is treated as QueryCurJob.
	QueryAllJob  QueryOption = 0x0001
	QueryDoneJob QueryOption = 0x0002
	QueryPendJob QueryOption = 0x0004
	QuerySuspJob QueryOption = 0x0008
	QueryCurJob  QueryOption = 0x0010
	QueryLastJob QueryOption = 0x0020
)

const queryOptionMask = QueryAllJob | QueryDoneJob | QueryPendJob | QuerySuspJob | QueryCurJob | QueryLastJob

var queryOptionNames = map[string]QueryOption{
	"all":  QueryAllJob,
	"done": QueryDoneJob,
	"pend": QueryPendJob,
	"susp": QuerySuspJob,
	"cur":  QueryCurJob,
	"last": QueryLastJob,
}

// ParseQueryOption parses a list of status class names separated by '|' or ',', e.g. "pend|susp".
// An empty string yields 0.
func ParseQueryOption(s string) (QueryOption, error) {
	var opt QueryOption
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' })
	for _, f := range fields {
		o, ok := queryOptionNames[strings.ToLower(f)]
		if !ok {
			names := maps.Keys(queryOptionNames)
			sort.Strings(names)
			return 0, errors.WithStack(&lsberrors.ErrUsage{
				Operation: "ParseQueryOption",
				Message:   fmt.Sprintf("unknown job class %q; valid classes are %s", f, strings.Join(names, ", ")),
			})
		}
		opt |= o
	}
	return opt, nil
}

func (o QueryOption) String() string {
	if o == 0 {
		return "cur"
	}
	names := make([]string, 0, 2)
	for _, name := range []string{"all", "done", "pend", "susp", "cur", "last"} {
		if o&queryOptionNames[name] != 0 {
			names = append(names, name)
		}
	}
	if rest := o &^ queryOptionMask; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// Matches reports whether a job in the given status belongs to one of the selected classes.
// QueryLastJob is a selector on recency rather than status, so it matches every status here and the daemon
// narrows the result to the most recently submitted job.
func (o QueryOption) Matches(s JobStatus) bool {
	if o == 0 {
		o = QueryCurJob
	}
	switch {
	case o&(QueryAllJob|QueryLastJob) != 0:
		return true
	case o&QueryCurJob != 0 && !s.IsFinished():
		return true
	case o&QueryDoneJob != 0 && s.IsFinished():
		return true
	case o&QueryPendJob != 0 && s.IsPending():
		return true
	case o&QuerySuspJob != 0 && s.IsSuspended():
		return true
	}
	return false
}
