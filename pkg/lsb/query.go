package lsb

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

// JobQuery selects the jobs returned by a job query session.
// At most one of JobName, User, Queue and Host may be set. JobId 0 means every job.
type JobQuery struct {
	JobId   JobId       `json:"jobId,omitempty"`
	JobName string      `json:"jobName,omitempty"`
	User    string      `json:"user,omitempty"`
	Queue   string      `json:"queue,omitempty"`
	Host    string      `json:"host,omitempty"`
	Options QueryOption `json:"options,omitempty"`
}

func ByJobId(id JobId) JobQuery {
	return JobQuery{JobId: id, Options: QueryAllJob}
}

func ByJobName(name string) JobQuery {
	return JobQuery{JobName: name}
}

func ByUser(user string) JobQuery {
	return JobQuery{User: user}
}

func ByQueue(queue string) JobQuery {
	return JobQuery{Queue: queue}
}

func ByHost(host string) JobQuery {
	return JobQuery{Host: host}
}

func ByStatus(options QueryOption) JobQuery {
	return JobQuery{Options: options}
}

// Validate returns an *lsberrors.ErrUsage for each violated constraint, aggregated in a *multierror.Error.
func (q JobQuery) Validate() error {
	var result *multierror.Error
	usage := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.WithStack(&lsberrors.ErrUsage{
			Operation: "OpenJobQuery",
			Message:   fmt.Sprintf(format, args...),
		}))
	}

	selectors := 0
	for _, s := range []string{q.JobName, q.User, q.Queue, q.Host} {
		if s != "" {
			selectors++
		}
	}
	if selectors > 1 {
		usage("job name, user, queue and host are mutually exclusive; got %d of them", selectors)
	}
	if q.JobId < 0 {
		usage("job id must not be negative; got %d", q.JobId)
	}
	if unknown := q.Options &^ queryOptionMask; unknown != 0 {
		usage("unknown query option bits 0x%x", uint32(unknown))
	}
	if q.Options&QueryLastJob != 0 && q.Options&^QueryLastJob&queryOptionMask != 0 {
		usage("last may not be combined with other job classes; got %s", q.Options)
	}
	return result.ErrorOrNil()
}

// Matches reports whether job j satisfies every selector of the query.
func (q JobQuery) Matches(j *JobRecord) bool {
	if q.JobId != 0 {
		if q.JobId.ArrayIndex() == 0 {
			if j.JobId.BaseId() != q.JobId.BaseId() {
				return false
			}
		} else if j.JobId != q.JobId {
			return false
		}
	}
	if q.JobName != "" && j.JobName != q.JobName && j.Submission.JobName != q.JobName {
		return false
	}
	if q.User != "" && q.User != "all" && j.User != q.User {
		return false
	}
	if q.Queue != "" && j.Submission.Queue != q.Queue {
		return false
	}
	if q.Host != "" {
		found := false
		j.ExecHosts.Each(func(_ int, h string) bool {
			found = h == q.Host
			return !found
		})
		if !found {
			return false
		}
	}
	options := q.Options
	if q.JobId != 0 && options == 0 {
		options = QueryAllJob
	}
	return options.Matches(j.Status)
}
