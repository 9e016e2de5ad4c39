package ezbookkeeping

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/eshaffer321/ezbookkeeping-go/internal/transport"
	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultTimeout is the fixed HTTP client timeout
	DefaultTimeout = types.DefaultTimeout

	// UserAgent is the user agent string
	UserAgent = types.UserAgent
)

type (
	// Logger interface for logging
	Logger = types.Logger

	// RetryConfig configures retry behavior
	RetryConfig = types.RetryConfig

	// Hooks provides lifecycle hooks for requests
	Hooks = types.Hooks
)

// Client is the main EzBookkeeping API client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService

	// Internal fields
	settings  *Settings
	transport Transport
	options   *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil disables retries
	RetryConfig *RetryConfig

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Transport handles HTTP communication with the REST API
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, result interface{}) error
	Post(ctx context.Context, path string, body interface{}, result interface{}) error
	Close()
}

// NewClient creates a new EzBookkeeping client from validated settings
func NewClient(settings *Settings, opts *ClientOptions) (*Client, error) {
	if settings == nil {
		return nil, &ConfigurationError{Missing: []string{EnvURL, EnvToken}}
	}
	if err := settings.ValidateRequired(); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.SentryDSN == "" {
		opts.SentryDSN = settings.SentryDSN
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.RetryConfig == nil {
		opts.RetryConfig = settings.RetryConfig()
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:        settings.URL,
		Token:          settings.Token,
		TimezoneOffset: settings.TimezoneOffset,
		HTTPClient:     opts.HTTPClient,
		RetryConfig:    opts.RetryConfig,
		Logger:         opts.Logger,
		Hooks:          opts.Hooks,
	})

	c := &Client{
		settings:  settings,
		transport: trans,
		options:   opts,
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
}

// Settings returns a copy of the settings the client was built with
func (c *Client) Settings() Settings {
	if c.settings == nil {
		return Settings{}
	}
	return *c.settings
}

// get issues a read request relative to /api/v1
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.execute(ctx, http.MethodGet, path, func() error {
		return c.transport.Get(ctx, path, query, result)
	})
}

// post issues a write request relative to /api/v1
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.execute(ctx, http.MethodPost, path, func() error {
		return c.transport.Post(ctx, path, body, result)
	})
}

// execute runs a request and reports failures to Sentry and the logger
func (c *Client) execute(ctx context.Context, method, path string, do func() error) error {
	start := time.Now()
	err := do()
	duration := time.Since(start)

	if err == nil {
		return nil
	}

	capture := func(hub *sentry.Hub) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("ezbookkeeping.path", path)
			scope.SetContext("request", map[string]interface{}{
				"method":   method,
				"path":     path,
				"duration": duration.String(),
			})
			if apiErr, ok := AsAPIError(err); ok {
				scope.SetTag("ezbookkeeping.error_code", apiErr.Code)
			}
			hub.CaptureException(err)
		})
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		capture(hub)
	} else {
		capture(sentry.CurrentHub())
	}

	if c.options != nil && c.options.Logger != nil {
		c.options.Logger.Warn("API request failed", "method", method, "path", path, "duration", duration, "error", err)
	}

	return err
}

// currency returns the configured default currency
func (c *Client) currency() string {
	return c.settings.currency()
}

// Close releases idle connections and flushes any pending Sentry events.
// The client must not be used afterwards.
func (c *Client) Close() {
	if c.transport != nil {
		c.transport.Close()
	}
	sentry.Flush(2 * time.Second)
}
