package lavactl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/client"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// JobsFilter is the command line form of a job query.
type JobsFilter struct {
	JobId string
	Name  string
	User  string
	Queue string
	Host  string
	// Job classes such as "pend|susp". Empty lists unfinished jobs, or every job if JobId is set.
	Classes string
	// One of table, json or yaml. Empty means table.
	Output string
}

const (
	OutputTable = "table"
	OutputJson  = "json"
	OutputYaml  = "yaml"
)

func (f JobsFilter) query() (lsb.JobQuery, error) {
	var q lsb.JobQuery
	if f.JobId != "" {
		id, err := lsb.ParseJobId(f.JobId)
		if err != nil {
			return q, err
		}
		q.JobId = id
	}
	options, err := lsb.ParseQueryOption(f.Classes)
	if err != nil {
		return q, err
	}
	q.Options = options
	q.JobName = f.Name
	q.User = f.User
	q.Queue = f.Queue
	q.Host = f.Host
	return q, nil
}

// Jobs lists the jobs matching filter, one per line.
func (a *App) Jobs(ctx context.Context, filter JobsFilter) error {
	query, err := filter.query()
	if err != nil {
		return err
	}
	printer, err := a.jobPrinter(filter.Output)
	if err != nil {
		return err
	}
	return a.withClient(ctx, func(c *client.Client) error {
		q, err := a.openWithRetry(ctx, c, query)
		if err != nil {
			return err
		}
		defer func() {
			if err := q.Close(ctx); err != nil {
				log.WithError(err).Warn("closing job query")
			}
		}()
		if q.Count() == 0 {
			fmt.Fprintln(a.Out, "No job found")
			return nil
		}

		for {
			job, err := q.Read(ctx)
			if err == io.EOF {
				break
			}
			if err != nil {
				printer.flush()
				return err
			}
			err = printer.job(job)
			c.Release(job)
			if err != nil {
				return err
			}
		}
		return printer.flush()
	})
}

type jobPrinter struct {
	job   func(*lsb.JobRecord) error
	flush func() error
}

func (a *App) jobPrinter(output string) (jobPrinter, error) {
	switch strings.ToLower(output) {
	case "", OutputTable:
		w := a.tabWriter()
		header := false
		return jobPrinter{
			job: func(job *lsb.JobRecord) error {
				if !header {
					fmt.Fprintln(w, "JOBID\tUSER\tSTAT\tQUEUE\tFROM_HOST\tEXEC_HOST\tJOB_NAME\tSUBMIT_TIME")
					header = true
				}
				_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					job.JobId, job.User, job.Status, dash(job.Submission.Queue), dash(job.FromHost),
					dash(strings.Join(job.ExecHosts.Items(), ",")), dash(jobName(job)), formatTime(job.SubmitTime))
				return err
			},
			flush: w.Flush,
		}, nil
	case OutputJson:
		return jobPrinter{
			job: func(job *lsb.JobRecord) error {
				data, err := json.Marshal(job)
				if err != nil {
					return errors.WithStack(err)
				}
				_, err = fmt.Fprintf(a.Out, "%s\n", data)
				return err
			},
			flush: func() error { return nil },
		}, nil
	case OutputYaml:
		return jobPrinter{
			job: func(job *lsb.JobRecord) error {
				data, err := yaml.Marshal(job)
				if err != nil {
					return errors.WithStack(err)
				}
				_, err = fmt.Fprintf(a.Out, "---\n%s", data)
				return err
			},
			flush: func() error { return nil },
		}, nil
	}
	return jobPrinter{}, errors.Errorf("unknown output format %q, valid formats are %s, %s and %s",
		output, OutputTable, OutputJson, OutputYaml)
}

// openWithRetry opens a job query, retrying while the daemon is unreachable. Any other failure,
// including a rejection, is returned at once.
func (a *App) openWithRetry(ctx context.Context, c *client.Client, query lsb.JobQuery) (*client.JobQuery, error) {
	var q *client.JobQuery
	attempts := a.Params.OpenAttempts
	if attempts == 0 {
		attempts = 1
	}
	err := retry.Do(
		func() error {
			var err error
			q, err = c.OpenJobQuery(ctx, query)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(a.Params.OpenRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(lsberrors.IsTransient),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).Warnf("Daemon unavailable, retrying (attempt %d)", n+1)
		}),
	)
	if err != nil {
		return nil, errors.WithMessage(err, "querying jobs")
	}
	return q, nil
}

func jobName(job *lsb.JobRecord) string {
	if job.JobName != "" {
		return job.JobName
	}
	return job.Submission.JobName
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 02 15:04")
}
