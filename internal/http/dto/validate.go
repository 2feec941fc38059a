package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/campmatch/backend/internal/apperr"
)

var validate = validator.New()

// ValidateStruct checks the tags on a request body and reports every failing
// field in the error details.
func ValidateStruct(s any) *apperr.Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string, len(ve))
		for _, fe := range ve {
			details[fe.Field()] = fe.Tag()
		}
		return apperr.Validation("VALIDATION_ERROR", "invalid request body").WithDetails(details)
	}
	return apperr.Validation("VALIDATION_ERROR", "invalid request body")
}
