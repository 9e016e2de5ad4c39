package ezbookkeeping

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables read by LoadSettings
const (
	EnvURL             = "EZBOOKKEEPING_URL"
	EnvToken           = "EZBOOKKEEPING_TOKEN"
	EnvTimezoneOffset  = "EZBOOKKEEPING_TIMEZONE_OFFSET"
	EnvDefaultCurrency = "EZBOOKKEEPING_DEFAULT_CURRENCY"
	EnvSentryDSN       = "EZBOOKKEEPING_SENTRY_DSN"
	EnvDebug           = "EZBOOKKEEPING_DEBUG"
	EnvMaxRetries      = "EZBOOKKEEPING_MAX_RETRIES"
)

// Settings holds the connection settings for an EzBookkeeping instance.
// It is loaded once at startup and passed to NewClient; nothing mutates it afterwards.
type Settings struct {
	// URL is the base URL of the instance, without the /api/v1 suffix
	URL string

	// Token is the API token sent as a bearer credential
	Token string

	// TimezoneOffset is the client timezone offset in minutes
	TimezoneOffset int

	// DefaultCurrency is an ISO 4217 code used when formatting amounts
	DefaultCurrency string

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// Debug enables debug logging
	Debug bool

	// MaxRetries enables retries on failed requests when greater than zero
	MaxRetries int
}

// LoadSettings reads settings from the environment.
// A .env file in the working directory is loaded when present; an explicit
// envPath must exist. Values already set in the environment take precedence.
func LoadSettings(envPath ...string) (*Settings, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, errors.Wrap(err, "failed to load .env file")
		}
	} else {
		_ = godotenv.Load()
	}

	offset, err := intEnv(EnvTimezoneOffset, 0)
	if err != nil {
		return nil, err
	}

	retries, err := intEnv(EnvMaxRetries, 0)
	if err != nil {
		return nil, err
	}

	return &Settings{
		URL:             strings.TrimSpace(os.Getenv(EnvURL)),
		Token:           strings.TrimSpace(os.Getenv(EnvToken)),
		TimezoneOffset:  offset,
		DefaultCurrency: strings.ToUpper(envOrDefault(EnvDefaultCurrency, types.DefaultCurrency)),
		SentryDSN:       os.Getenv(EnvSentryDSN),
		Debug:           os.Getenv(EnvDebug) == "true",
		MaxRetries:      retries,
	}, nil
}

// ValidateRequired checks that the URL and token are present.
// The returned ConfigurationError names every missing variable.
func (s *Settings) ValidateRequired() error {
	var missing []string
	if s.URL == "" {
		missing = append(missing, EnvURL)
	}
	if s.Token == "" {
		missing = append(missing, EnvToken)
	}

	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// RetryConfig returns the retry policy for these settings, or nil when retries are disabled
func (s *Settings) RetryConfig() *RetryConfig {
	if s.MaxRetries <= 0 {
		return nil
	}
	return &RetryConfig{
		MaxRetries: s.MaxRetries,
		RetryWait:  500 * time.Millisecond,
		MaxWait:    5 * time.Second,
	}
}

// currency returns the configured currency, falling back to USD
func (s *Settings) currency() string {
	if s == nil || s.DefaultCurrency == "" {
		return types.DefaultCurrency
	}
	return s.DefaultCurrency
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}
