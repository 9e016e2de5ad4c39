package ezbookkeeping

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

const (
	transactionsAddPath  = "/transactions/add.json"
	transactionsListPath = "/transactions/list.json"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// Create creates a new transaction. Amount is converted to minor units with ToMinorUnits.
func (s *transactionService) Create(ctx context.Context, params *CreateTransactionParams) (*CreateTransactionResult, error) {
	if params == nil {
		return nil, &ValidationError{Field: "params", Message: "must not be nil"}
	}

	txType := params.Type
	if txType == 0 {
		txType = TransactionTypeExpense
	}
	if !txType.IsValid() {
		return nil, &ValidationError{
			Field:   "type",
			Message: "must be 1 (expense), 2 (income), 3 (transfer out) or 4 (transfer in)",
			Value:   int(params.Type),
		}
	}

	amount, err := ToMinorUnits(params.Amount)
	if err != nil {
		return nil, err
	}

	req := &addTransactionRequest{
		Amount:          amount,
		Description:     params.Description,
		SourceAccountID: params.AccountID,
		CategoryID:      params.CategoryID,
		Type:            txType,
		Time:            params.Time,
	}
	if len(params.TagIDs) > 0 {
		req.TagIDs = params.TagIDs
	}

	var created Transaction
	if err := s.client.post(ctx, transactionsAddPath, req, &created); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	result := &CreateTransactionResult{
		Success: true,
		Message: fmt.Sprintf("Transaction added: %s - %s", params.Description, FormatAmount(amount, s.client.currency())),
		Details: &created,
	}
	if created.ID != "" {
		id := created.ID
		result.TransactionID = &id
	}

	return result, nil
}

// List retrieves transactions matching params; nil params lists the latest DefaultMaxCount
func (s *transactionService) List(ctx context.Context, params *ListTransactionsParams) (*TransactionList, error) {
	if params == nil {
		params = &ListTransactionsParams{}
	}

	var result struct {
		Items []*Transaction `json:"items"`
	}

	if err := s.client.get(ctx, transactionsListPath, params.query(), &result); err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	items := result.Items
	if items == nil {
		items = []*Transaction{}
	}

	for _, tx := range items {
		if tx != nil {
			tx.annotate()
		}
	}

	return &TransactionList{
		Success:      true,
		Count:        len(items),
		Transactions: items,
	}, nil
}
