package http

import (
	"errors"
	"net/http"

	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
)

// statusFor maps domain errors to HTTP status codes. Invalid input is a
// client error and must not be retried; unknown IDs are 404.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrActivityNotFound),
		errors.Is(err, usecase.ErrAssessmentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
