package ezbookkeeping

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	args := m.Called(ctx, path, query, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	args := m.Called(ctx, path, body, result)

	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) Close() {
	m.Called()
}

func newMockClient(transport *MockTransport) *Client {
	client := &Client{
		transport: transport,
		options:   &ClientOptions{},
		settings: &Settings{
			URL:             "https://books.test.com",
			Token:           "test-token",
			DefaultCurrency: "USD",
		},
	}
	client.initServices()
	return client
}
