package lsb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

// JobId is the combined job identifier used by the daemon: the array index lives in the high 32 bits and the base
// job id in the low 32 bits.
type JobId int64

// NoJob is the reserved identifier meaning "no job".
const NoJob JobId = -1

// NewJobId packs a base job id and an array index into a JobId.
func NewJobId(jobId int64, arrayIndex int) JobId {
	return JobId(int64(arrayIndex)<<32 | (jobId & 0xFFFFFFFF))
}

// BaseId returns the base job id. NoJob decodes to -1.
func (id JobId) BaseId() int64 {
	if id == NoJob {
		return -1
	}
	return int64(id) & 0xFFFFFFFF
}

// ArrayIndex returns the array index, or 0 for non-array jobs. NoJob decodes to 0.
func (id JobId) ArrayIndex() int {
	if id == NoJob {
		return 0
	}
	return int((int64(id) >> 32) & 0xFFFF)
}

// IsValid returns true for ids that can reference an existing job: a positive base id, with or without an
// array index.
func (id JobId) IsValid() bool {
	return id > 0 && id.BaseId() > 0
}

// String renders the id the way users type it: "1234" or "1234[5]".
func (id JobId) String() string {
	if idx := id.ArrayIndex(); idx > 0 {
		return fmt.Sprintf("%d[%d]", id.BaseId(), idx)
	}
	return strconv.FormatInt(id.BaseId(), 10)
}

// ParseJobId parses the output of JobId.String.
func ParseJobId(s string) (JobId, error) {
	s = strings.TrimSpace(s)
	base := s
	index := 0
	if open := strings.IndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return NoJob, invalidJobId(s)
		}
		i, err := strconv.Atoi(s[open+1 : len(s)-1])
		if err != nil || i < 0 || i > 0xFFFF {
			return NoJob, invalidJobId(s)
		}
		base = s[:open]
		index = i
	}
	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil || id <= 0 || id > 0xFFFFFFFF {
		return NoJob, invalidJobId(s)
	}
	return NewJobId(id, index), nil
}

func invalidJobId(s string) error {
	return errors.WithStack(&lsberrors.ErrUsage{
		Operation: "ParseJobId",
		Message:   fmt.Sprintf("%q is not a valid job id", s),
	})
}
