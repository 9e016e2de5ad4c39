package ezbookkeeping

import (
	"context"
)

// AccountService handles account operations
type AccountService interface {
	// List retrieves all accounts with balances annotated in major units
	List(ctx context.Context) (*AccountList, error)

	// Get retrieves a single account by ID, searching sub-accounts too.
	// Balances are annotated on the matched account and its whole subtree.
	Get(ctx context.Context, accountID string) (*AccountDetail, error)
}

// TransactionService handles transaction operations
type TransactionService interface {
	// Create creates a new transaction
	Create(ctx context.Context, params *CreateTransactionParams) (*CreateTransactionResult, error)

	// List retrieves transactions matching the given filters
	List(ctx context.Context, params *ListTransactionsParams) (*TransactionList, error)
}
