package validation

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/pkg/client/domain"
	"github.com/openlava/openlava-go/pkg/client/util"
)

// ValidateSubmitFile checks that the file parses and that every job in it makes a valid submit request.
func ValidateSubmitFile(filePath string) (bool, error) {
	submitFile := &domain.JobSubmitFile{}
	err := util.BindJsonOrYaml(filePath, submitFile)
	if err != nil {
		return false, err
	}

	if len(submitFile.Jobs) <= 0 {
		return false, errors.New("Warning: You have provided no jobs to submit.")
	}

	var result *multierror.Error
	for i, job := range submitFile.Jobs {
		r, err := job.Request(submitFile.Queue)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "job %d", i))
			continue
		}
		r.Release()
	}
	if err := result.ErrorOrNil(); err != nil {
		return false, err
	}
	return true, nil
}
