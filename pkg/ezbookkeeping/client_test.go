package ezbookkeeping

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer records requests and answers with canned envelopes per path
type fakeServer struct {
	mu        sync.Mutex
	requests  []*http.Request
	bodies    []string
	responses map[string]string
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(context.Background()))
	f.bodies = append(f.bodies, string(body))
	resp, ok := f.responses[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "404 page not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func newTestClient(t *testing.T, responses map[string]string) (*Client, *fakeServer) {
	t.Helper()

	fake := &fakeServer{responses: responses}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := NewClient(&Settings{
		URL:             server.URL + "/",
		Token:           "test-token",
		TimezoneOffset:  480,
		DefaultCurrency: "USD",
	}, &ClientOptions{HTTPClient: server.Client()})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, fake
}

func TestClient_ListAccounts(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"/api/v1/accounts/list.json": `{"success": true, "result": [
			{"id": "1", "name": "Cash", "balance": 1000, "subAccounts": [{"id": "2", "name": "Coins", "balance": 25}]}
		]}`,
	})

	list, err := client.Accounts.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "10", list.Accounts[0].BalanceDollars.String())
	assert.Equal(t, "0.25", list.Accounts[0].SubAccounts[0].BalanceDollars.String())

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "480", req.Header.Get("X-Timezone-Offset"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestClient_CreateTransaction(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"/api/v1/transactions/add.json": `{"success": true, "result": {"id": "777", "amount": 4599}}`,
	})

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      45.99,
		Description: "Groceries",
		AccountID:   "1",
		CategoryID:  "5",
	})

	require.NoError(t, err)
	assert.Equal(t, "777", *result.TransactionID)

	require.Len(t, fake.bodies, 1)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &body))
	assert.Equal(t, map[string]interface{}{
		"amount":          float64(4599),
		"description":     "Groceries",
		"sourceAccountId": "1",
		"categoryId":      "5",
		"type":            float64(1),
	}, body)
}

func TestClient_ListTransactions_Query(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"/api/v1/transactions/list.json": `{"success": true, "result": {"items": [{"id": "1", "amount": 150}]}}`,
	})

	list, err := client.Transactions.List(context.Background(), &ListTransactionsParams{AccountID: "acc-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "1.5", list.Transactions[0].AmountDollars.String())

	query := fake.requests[0].URL.Query()
	assert.Equal(t, "50", query.Get("count"))
	assert.Equal(t, "acc-1", query.Get("accountId"))
	assert.NotContains(t, query, "minTime")
	assert.NotContains(t, query, "maxTime")
	assert.NotContains(t, query, "categoryId")
}

func TestClient_APIError(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/api/v1/accounts/list.json": `{"success": false, "errorCode": "E1", "errorMessage": "bad"}`,
	})

	_, err := client.Accounts.List(context.Background())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "E1", apiErr.Code)
	assert.Equal(t, "bad", apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{})

	_, err := client.Transactions.List(context.Background(), nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
	assert.Equal(t, "404 page not found", transportErr.Body)
}

func TestClient_Settings(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{})

	settings := client.Settings()
	assert.Equal(t, "test-token", settings.Token)
	assert.Equal(t, 480, settings.TimezoneOffset)
}
