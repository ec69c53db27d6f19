// Package validator adapts go-playground/validator to echo.
package validator

import (
	"hbnb/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator with required-struct checks enabled.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags of i.
func (v *Validator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
