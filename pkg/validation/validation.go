// Package validation runs struct-tag validation on request DTOs.
package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Struct validates the `validate:` tags on a request struct.
func Struct(s interface{}) error {
	return validate.Struct(s)
}
