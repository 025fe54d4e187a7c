// Package validator registers the domain formats used by request validation
// tags on the shared validator instance.
package validator

import (
	govalidator "github.com/go-playground/validator/v10"

	"hampstead_backend/internal/shared/postcode"
	"hampstead_backend/platform/validator"
)

// RegisterDomainFormats installs the custom validation tags. Call once at
// startup, before any request is validated.
func RegisterDomainFormats(val *validator.Validator) error {
	return val.RegisterValidation("uk_postcode", validateUKPostcode)
}

func validateUKPostcode(fl govalidator.FieldLevel) bool {
	return postcode.Valid(fl.Field().String())
}
