package lavactl

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/pkg/client"
	"github.com/openlava/openlava-go/pkg/client/domain"
	"github.com/openlava/openlava-go/pkg/client/util"
	"github.com/openlava/openlava-go/pkg/client/validation"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Submit submits the jobs of a submit file in order, stopping at the first failure.
// If dryRun is set the file is only validated.
func (a *App) Submit(ctx context.Context, path string, dryRun bool) error {
	if ok, err := validation.ValidateSubmitFile(path); !ok {
		return err
	}
	if dryRun {
		fmt.Fprintf(a.Out, "%s is valid\n", path)
		return nil
	}
	submitFile := &domain.JobSubmitFile{}
	if err := util.BindJsonOrYaml(path, submitFile); err != nil {
		return err
	}

	return a.withClient(ctx, func(c *client.Client) error {
		for i, spec := range submitFile.Jobs {
			req, err := spec.Request(submitFile.Queue)
			if err != nil {
				return errors.WithMessagef(err, "job %d", i)
			}
			reply, err := c.Submit(ctx, req)
			req.Release()
			if err != nil {
				return errors.WithMessagef(err, "submitting job %d", i)
			}
			fmt.Fprintf(a.Out, "Job <%s> is submitted to queue <%s>.\n", reply.JobId, queueName(reply))
		}
		return nil
	})
}

func queueName(reply *lsb.SubmitReply) string {
	if reply.Queue == "" {
		return "default"
	}
	return reply.Queue
}
