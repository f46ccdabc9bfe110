package configuration

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Validate checks the struct tags and the rules that span fields.
func (c EventIngesterConfiguration) Validate() error {
	var result *multierror.Error
	if err := validator.New().Struct(c); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Postgres == nil && c.Pulsar == nil && c.JobEvents == nil {
		result = multierror.Append(result, errors.New("at least one of Postgres, Pulsar or JobEvents must be configured"))
	}
	if c.JobEvents != nil && c.Redis == nil {
		result = multierror.Append(result, errors.New("JobEvents requires Redis"))
	}
	return result.ErrorOrNil()
}

// Name returns LogName, or the base name of the log file if it is empty.
func (c EventIngesterConfiguration) Name() string {
	if c.LogName != "" {
		return c.LogName
	}
	return filepath.Base(c.EventLog)
}
