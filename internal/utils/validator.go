// internal/utils/validator.go
package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using its validate tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator errors into field -> message.
func GetValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["general"] = err.Error()
		return errors
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("%s es requerido", field)
		case "min":
			errors[field] = fmt.Sprintf("%s debe tener al menos %s caracteres", field, e.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s no puede exceder %s caracteres", field, e.Param())
		case "email":
			errors[field] = fmt.Sprintf("%s debe ser un correo válido", field)
		default:
			errors[field] = fmt.Sprintf("%s no es válido", field)
		}
	}

	return errors
}
