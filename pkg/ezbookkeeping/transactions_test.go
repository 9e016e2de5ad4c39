package ezbookkeeping

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_Create(t *testing.T) {
	// Setup
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	var sent *addTransactionRequest
	mockTransport.On("Post",
		mock.Anything,
		"/transactions/add.json",
		mock.MatchedBy(func(body interface{}) bool {
			req, ok := body.(*addTransactionRequest)
			sent = req
			return ok
		}),
		mock.Anything,
	).Return(`{"id": "tx-123", "type": 1, "categoryId": "cat-1", "sourceAccountId": "acc-1", "amount": 4599}`, nil)

	// Execute
	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      45.99,
		Description: "Lunch",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.TransactionID)
	assert.Equal(t, "tx-123", *result.TransactionID)
	assert.Equal(t, "Transaction added: Lunch - $45.99", result.Message)
	assert.Equal(t, "tx-123", result.Details.ID)

	require.NotNil(t, sent)
	assert.Equal(t, int64(4599), sent.Amount)
	assert.Equal(t, "Lunch", sent.Description)
	assert.Equal(t, "acc-1", sent.SourceAccountID)
	assert.Equal(t, "cat-1", sent.CategoryID)
	assert.Equal(t, TransactionTypeExpense, sent.Type)

	// Optional fields are omitted, not null
	payload, err := json.Marshal(sent)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &fields))
	assert.NotContains(t, fields, "time")
	assert.NotContains(t, fields, "tagIds")

	mockTransport.AssertExpectations(t)
}

func TestTransactionService_Create_WithTimeAndTags(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/transactions/add.json",
		mock.MatchedBy(func(body interface{}) bool {
			req := body.(*addTransactionRequest)
			return req.Time == 1700000000000 &&
				len(req.TagIDs) == 2 &&
				req.Type == TransactionTypeIncome &&
				req.Amount == 250000
		}),
		mock.Anything,
	).Return(`{"id": "tx-9"}`, nil)

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      2500,
		Description: "Salary",
		AccountID:   "acc-1",
		CategoryID:  "cat-income",
		Type:        TransactionTypeIncome,
		Time:        1700000000000,
		TagIDs:      []string{"tag-1", "tag-2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Transaction added: Salary - $2500.00", result.Message)
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_Create_MissingID(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/transactions/add.json", mock.Anything, mock.Anything).
		Return(`{}`, nil)

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      1,
		Description: "Coffee",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
	})

	require.NoError(t, err)
	assert.Nil(t, result.TransactionID)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"transaction_id":null`)
}

func TestTransactionService_Create_KeepsUpstreamDetails(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/transactions/add.json", mock.Anything, mock.Anything).
		Return(`{"id": "9", "amount": 4599, "sourceAmount": 4599, "tags": [{"id": "t1"}], "geoLocation": {"latitude": 1.5}}`, nil)

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      45.99,
		Description: "Lunch",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
	})
	require.NoError(t, err)

	data, err := json.Marshal(result.Details)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "9",
		"amount": 4599,
		"sourceAmount": 4599,
		"tags": [{"id": "t1"}],
		"geoLocation": {"latitude": 1.5}
	}`, string(data))
}

func TestTransactionService_Create_OtherCurrency(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)
	client.settings.DefaultCurrency = "EUR"

	mockTransport.On("Post", mock.Anything, "/transactions/add.json", mock.Anything, mock.Anything).
		Return(`{"id": "tx-1"}`, nil)

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      12.5,
		Description: "Bread",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Transaction added: Bread - 12.50 EUR", result.Message)
}

func TestTransactionService_Create_InvalidType(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      10,
		Description: "Refund",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		Type:        TransactionType(7),
	})

	assert.Nil(t, result)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "type", validationErr.Field)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	mockTransport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_Create_InvalidAmount(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	for _, amount := range []float64{1e17, math.NaN(), math.Inf(-1)} {
		result, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
			Amount:      amount,
			Description: "Yacht",
			AccountID:   "acc-1",
			CategoryID:  "cat-1",
		})

		assert.Nil(t, result)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "amount %v", amount)
		assert.Equal(t, "amount", validationErr.Field)
	}
	mockTransport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_Create_APIError(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/transactions/add.json", mock.Anything, mock.Anything).
		Return(nil, &APIError{Code: "203001", Message: "account not found"})

	_, err := client.Transactions.Create(context.Background(), &CreateTransactionParams{
		Amount:      10,
		Description: "Lunch",
		AccountID:   "missing",
		CategoryID:  "cat-1",
	})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "203001", apiErr.Code)
	assert.Contains(t, err.Error(), "API Error 203001: account not found")
}

func TestTransactionService_List(t *testing.T) {
	// Setup
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	response := `{
		"items": [
			{"id": "tx-1", "type": 1, "amount": 4599, "description": "Lunch"},
			{"id": "tx-2", "type": 2, "description": "No amount"}
		],
		"nextTimeSequenceId": 0
	}`

	mockTransport.On("Get", mock.Anything, "/transactions/list.json",
		url.Values{"count": {"50"}},
		mock.Anything,
	).Return(response, nil)

	// Execute
	list, err := client.Transactions.List(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, list.Success)
	assert.Equal(t, 2, list.Count)
	require.NotNil(t, list.Transactions[0].AmountDollars)
	assert.Equal(t, "45.99", list.Transactions[0].AmountDollars.String())
	assert.Nil(t, list.Transactions[1].AmountDollars)

	mockTransport.AssertExpectations(t)
}

func TestTransactionService_List_Filters(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newMockClient(mockTransport)

	expected := url.Values{
		"count":      {"10"},
		"minTime":    {"1700000000000"},
		"maxTime":    {"1700086400000"},
		"accountId":  {"acc-1"},
		"categoryId": {"cat-1"},
	}

	mockTransport.On("Get", mock.Anything, "/transactions/list.json", expected, mock.Anything).
		Return(`{}`, nil)

	list, err := client.Transactions.List(context.Background(), &ListTransactionsParams{
		StartTime:  1700000000000,
		EndTime:    1700086400000,
		AccountID:  "acc-1",
		CategoryID: "cat-1",
		MaxCount:   10,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Transactions)
	mockTransport.AssertExpectations(t)
}

func TestListTransactionsParams_Query(t *testing.T) {
	tests := []struct {
		name   string
		params ListTransactionsParams
		want   url.Values
	}{
		{
			name:   "defaults",
			params: ListTransactionsParams{},
			want:   url.Values{"count": {"50"}},
		},
		{
			name:   "zero filters are omitted",
			params: ListTransactionsParams{MaxCount: 5, StartTime: 0, AccountID: ""},
			want:   url.Values{"count": {"5"}},
		},
		{
			name:   "account only",
			params: ListTransactionsParams{AccountID: "acc-1"},
			want:   url.Values{"count": {"50"}, "accountId": {"acc-1"}},
		},
		{
			name:   "time range only",
			params: ListTransactionsParams{StartTime: 1, EndTime: 2},
			want:   url.Values{"count": {"50"}, "minTime": {"1"}, "maxTime": {"2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.query())
		})
	}
}

func TestTransactionType(t *testing.T) {
	assert.True(t, TransactionTypeExpense.IsValid())
	assert.True(t, TransactionTypeTransferIn.IsValid())
	assert.False(t, TransactionType(0).IsValid())
	assert.False(t, TransactionType(5).IsValid())
	assert.Equal(t, "transfer_out", TransactionTypeTransferOut.String())
	assert.Equal(t, "unknown(9)", TransactionType(9).String())
}
