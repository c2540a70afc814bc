// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	validator "github.com/go-playground/validator/v10"
)

// echoValidator wraps a validator instance for echo.Echo.Validator.
type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
