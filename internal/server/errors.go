package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *ErrValidation
		inputErr  *layout.InputError
		schemaErr *schemas.ValidationError
		loadErr   *schemas.SchemaLoadError
		fieldErrs validator.ValidationErrors
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &loadErr):
		return http.StatusInternalServerError
	case errors.As(err, &reqErr), errors.As(err, &inputErr),
		errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
