package validators

import "github.com/go-playground/validator/v10"

// Validator wraps go-playground/validator for request structs.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks the struct's validate tags and returns the first failure.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
