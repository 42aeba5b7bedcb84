package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/fetch"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	req := types.ATSRequest{}
	validationErr := req.Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "bullets", Message: "required"}, http.StatusBadRequest},
		{"decode", &ErrDecode{Cause: errors.New("unexpected EOF")}, http.StatusBadRequest},
		{"validator", fmt.Errorf("invalid: %w", validationErr), http.StatusBadRequest},
		{"missing ats input", orchestrator.ErrMissingATSInput, http.StatusBadRequest},
		{"precondition", &export.PreconditionError{Action: "resume export", Cause: export.ErrNoResume}, http.StatusPreconditionFailed},
		{"bad job url", &fetch.Error{URL: "x", Message: "bad request URL", Cause: fetch.ErrInvalidURL}, http.StatusBadRequest},
		{"job fetch", &fetch.Error{URL: "https://example.com", Message: "HTTP status 404"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := fmt.Errorf("studio: %w", &export.PreconditionError{Action: "portfolio packaging", Cause: export.ErrNoPortfolio})
	assert.Equal(t, "Generate your portfolio first.", ErrorMessage(err))
	assert.Equal(t, "validation error: role - too long", ErrorMessage(&ErrValidation{Field: "role", Message: "too long"}))
}
