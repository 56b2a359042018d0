package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// FormatValidationError converts validator errors into the per-field shape
// the API returns, so request structs keep a consistent error type.
func FormatValidationError(err error) *RequestError {
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := map[string]string{}
		message := ""
		for _, e := range validationErrors {
			detail := "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
			fields[e.Field()] = detail
			if message != "" {
				message += ", "
			}
			message += detail
		}
		return &RequestError{Message: message, Fields: fields}
	}

	return &RequestError{Message: err.Error(), Fields: map[string]string{}}
}

// RequestError is a field-level request validation failure.
type RequestError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *RequestError) Error() string { return e.Message }
