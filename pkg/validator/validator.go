package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ParseError flattens a binding error into a field->message map suitable for
// a validation error response body.
func ParseError(err error) map[string]interface{} {
	errors := make(map[string]interface{})
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}
