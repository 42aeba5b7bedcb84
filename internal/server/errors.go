package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/fetch"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrDecode indicates a request body that is not valid JSON for the endpoint.
type ErrDecode struct {
	Cause error
}

func (e *ErrDecode) Error() string {
	return "invalid request body: " + e.Cause.Error()
}

func (e *ErrDecode) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps an error to a status code: 400 for bad input, 412 for an export whose
// precondition is unmet, 502 when a job posting could not be fetched, 500 otherwise.
func HTTPStatus(err error) int {
	var (
		ve  *ErrValidation
		de  *ErrDecode
		fe  validator.ValidationErrors
		pre *export.PreconditionError
		fte *fetch.Error
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &de), errors.As(err, &fe),
		errors.Is(err, orchestrator.ErrMissingATSInput), errors.Is(err, fetch.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.As(err, &pre):
		return http.StatusPreconditionFailed
	case errors.As(err, &fte):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the text shown to the caller. Export preconditions use their
// user-facing message.
func ErrorMessage(err error) string {
	var pre *export.PreconditionError
	if errors.As(err, &pre) {
		return pre.UserMessage()
	}
	return err.Error()
}
