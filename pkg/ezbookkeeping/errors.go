package ezbookkeeping

import (
	"errors"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = types.ErrNotFound

	// ErrInvalidConfig is returned when required settings are missing
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrInvalidRequest is returned for inputs rejected before any request is sent
	ErrInvalidRequest = types.ErrInvalidRequest
)

type (
	// APIError is returned when the server answers with success=false.
	// Code and Message carry the upstream errorCode and errorMessage.
	APIError = types.APIError

	// TransportError is returned when the server is unreachable or the
	// response body is not JSON. StatusCode and Body hold the raw response.
	TransportError = types.TransportError

	// ConfigurationError names the required settings that are missing
	ConfigurationError = types.ConfigurationError

	// NotFoundError is returned when a lookup by id finds nothing
	NotFoundError = types.NotFoundError

	// ValidationError represents a rejected input field
	ValidationError = types.ValidationError
)

// IsNotFound checks if the error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsAPIError returns the APIError in err's chain, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
