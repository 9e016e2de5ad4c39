package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey     = "Authorization"
	timezoneHeaderKey = "X-Timezone-Offset"
	requestIDHeader   = "X-Request-ID"
	contentType       = "application/json"

	defaultErrorCode    = "N/A"
	defaultErrorMessage = "Unknown error"
)

// RESTTransport handles communication with the EzBookkeeping REST API
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	logger      types.Logger
	hooks       *types.Hooks
}

// Envelope is the wrapper around every API response
type Envelope struct {
	Success      bool            `json:"success"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorCode    json.RawMessage `json:"errorCode,omitempty"`
	ErrorMessage *string         `json:"errorMessage,omitempty"`
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil && opts.RetryConfig.MaxRetries > 0 {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait
		retryClient.Logger = nil
		// Hand back the last response so its envelope is still decoded
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":          contentType,
		"Content-Type":    contentType,
		"User-Agent":      types.UserAgent,
		authHeaderKey:     "Bearer " + opts.Token,
		timezoneHeaderKey: strconv.Itoa(opts.TimezoneOffset),
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:     strings.TrimRight(opts.BaseURL, "/") + types.APIPrefix,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// BaseURL returns the versioned endpoint all paths are relative to
func (t *RESTTransport) BaseURL() string {
	return t.baseURL
}

// Get issues a read request and decodes the envelope result into result
func (t *RESTTransport) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return t.do(ctx, http.MethodGet, path, query, nil, result)
}

// Post issues a write request with a JSON body and decodes the envelope result into result
func (t *RESTTransport) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
	}
	return t.do(ctx, http.MethodPost, path, nil, payload, result)
}

// Close releases idle connections held by the underlying HTTP client
func (t *RESTTransport) Close() {
	t.httpClient.CloseIdleConnections()
}

func (t *RESTTransport) do(ctx context.Context, method, path string, query url.Values, payload []byte, result interface{}) error {
	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(requestIDHeader, requestID)

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	if t.logger != nil {
		t.logger.Debug("API request", "method", method, "path", path, "query", query.Encode(), "request_id", requestID)
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		err = &types.TransportError{Err: err}
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &types.TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        errors.Wrap(err, "failed to read response"),
		}
	}

	if t.logger != nil {
		t.logger.Debug("API response", "path", path, "status", resp.StatusCode, "duration", duration, "size", len(respBody), "request_id", requestID)
	}

	if err := decodeEnvelope(resp.StatusCode, resp.Status, respBody, result); err != nil {
		if apiErr, ok := err.(*types.APIError); ok {
			apiErr.Path = path
		}
		return err
	}
	return nil
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// decodeEnvelope unwraps the response envelope. The HTTP status code is only
// consulted for error reporting; the envelope's success flag is authoritative.
func decodeEnvelope(statusCode int, status string, body []byte, result interface{}) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &types.TransportError{
			StatusCode: statusCode,
			Status:     status,
			Body:       string(body),
		}
	}

	if !env.Success {
		message := defaultErrorMessage
		if env.ErrorMessage != nil {
			message = *env.ErrorMessage
		}
		return &types.APIError{
			Code:       errorCodeString(env.ErrorCode),
			Message:    message,
			StatusCode: statusCode,
		}
	}

	if result == nil {
		return nil
	}

	raw := env.Result
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return errors.Wrap(err, "failed to unmarshal result")
	}
	return nil
}

// errorCodeString renders an errorCode that may arrive as a JSON string or number
func errorCodeString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return defaultErrorCode
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}

// Options for REST transport
type Options struct {
	BaseURL        string
	Token          string
	TimezoneOffset int
	HTTPClient     *http.Client
	Headers        map[string]string
	RetryConfig    *types.RetryConfig
	Logger         types.Logger
	Hooks          *types.Hooks
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
