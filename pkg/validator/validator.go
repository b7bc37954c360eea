package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que falló la validación de struct tags.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un struct y devuelve la lista
// de campos inválidos. Nil significa que el struct es válido. Con un valor
// que no es struct (validator devuelve *InvalidValidationError) reporta un
// error genérico en vez de hacer panic.
func ValidateStruct(data interface{}) []*FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*FieldError{{Field: "", Tag: "invalid_input"}}
	}

	fieldErrors := make([]*FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		fieldErrors = append(fieldErrors, &FieldError{
			Field: ve.Field(),
			Tag:   ve.Tag(),
			Param: ve.Param(),
		})
	}
	return fieldErrors
}
