// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New returns an Echo-compatible request validator.
func New() *echoValidator {
	return &echoValidator{validate: playground.New()}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.Wrap(err, "request validation failed")
	}

	return nil
}
