// Package server provides the HTTP REST API for the people matcher.
package server

import (
	"errors"
	"net/http"

	"github.com/tyler/people-match/internal/schemas"
	"github.com/tyler/people-match/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var fieldErr *types.FieldRequiredError
	var validationErr *schemas.ValidationError
	switch {
	case errors.As(err, &fieldErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
