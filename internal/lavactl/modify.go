package lavactl

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/pkg/client"
	"github.com/openlava/openlava-go/pkg/client/domain"
	"github.com/openlava/openlava-go/pkg/client/util"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Modify changes an existing job. The file holds a single job spec, and only the fields set in it are changed.
func (a *App) Modify(ctx context.Context, jobId string, path string) error {
	id, err := lsb.ParseJobId(jobId)
	if err != nil {
		return err
	}
	spec := &domain.JobSpec{}
	if err := util.BindJsonOrYaml(path, spec); err != nil {
		return err
	}
	req, err := spec.ModifyRequest()
	if err != nil {
		return err
	}
	defer req.Release()
	// Every setter records an option or a modify scope.
	if req.Options() == 0 && req.Options2() == 0 {
		return errors.Errorf("%s changes nothing", path)
	}

	return a.withClient(ctx, func(c *client.Client) error {
		if _, err := c.Modify(ctx, req, id); err != nil {
			return errors.WithMessagef(err, "modifying job %s", id)
		}
		fmt.Fprintf(a.Out, "Parameters of job <%s> are being changed.\n", id)
		return nil
	})
}
