package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LogValidationErrors logs one line per field rejected by the validator. Other errors, which may be
// aggregated with them in a *multierror.Error, are logged as they are.
func LogValidationErrors(err error) {
	if err == nil {
		return
	}
	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	}
	for _, err := range errs {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			log.Errorf("ConfigError: %s", err)
			continue
		}
		for _, err := range fieldErrs {
			fieldName := stripPrefix(err.Namespace())
			tag := err.Tag()
			switch tag {
			case "required":
				log.Errorf("ConfigError: Field %s is required but was not found", fieldName)
			default:
				log.Errorf("ConfigError: Field %s has invalid value %v: %s", fieldName, err.Value(), tag)
			}
		}
	}
}

func stripPrefix(s string) string {
	if idx := strings.Index(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
