package types

import (
	"errors"
	"time"
)

const (
	// APIPrefix is the versioned path prefix appended to the EzBookkeeping base URL
	APIPrefix = "/api/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "ezbookkeeping-go/1.0.0"

	// DefaultCurrency is used when no currency is configured
	DefaultCurrency = "USD"
)

// Common errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidConfig is returned when required configuration is missing
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest is returned for requests rejected before reaching the server
	ErrInvalidRequest = errors.New("invalid request")
)
