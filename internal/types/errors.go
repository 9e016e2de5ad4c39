package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// APIError is returned when the response envelope reports a failure
type APIError struct {
	Code       string `json:"errorCode"`
	Message    string `json:"errorMessage"`
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error %s: %s", e.Code, e.Message)
}

// TransportError is returned when the server could not be reached or
// answered with something that is not JSON
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}

	status := fmt.Sprintf("%d", e.StatusCode)
	if desc := HTTPStatusDescription(e.StatusCode); desc != "" {
		status = fmt.Sprintf("%d (%s)", e.StatusCode, desc)
	}
	return fmt.Sprintf("invalid JSON response (%s): %s", status, Truncate(e.Body, 200))
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigurationError names the required settings that are missing
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s (set it in .env or environment variables)",
		strings.Join(e.Missing, ", "))
}

// Is matches ErrInvalidConfig
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NotFoundError is returned when a lookup by id finds nothing
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Is matches ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents a rejected input field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is matches ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// HTTPStatusDescription returns a human-readable description for common HTTP status codes.
// Cloudflare-specific codes are included.
func HTTPStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		400: "Bad Request",
		401: "Unauthorized",
		403: "Forbidden",
		404: "Not Found",
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
		530: "Origin DNS Error",
	}
	return descriptions[statusCode]
}

// Truncate shortens s to at most maxLen bytes for logging and error messages.
// The cut never splits a UTF-8 sequence.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 0 {
		maxLen = 0
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
