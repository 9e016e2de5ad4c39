package mcpserver

import (
	"context"
	"fmt"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ledgerTools holds the transaction service and implements the tool handlers
type ledgerTools struct {
	transactions ezbookkeeping.TransactionService
	logger       types.Logger
}

func registerTools(server *mcp.Server, tools *ledgerTools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_transaction",
		Description: "Create a new transaction in EzBookkeeping. The amount is given in dollars (e.g. 45.99) and stored in cents. Transaction types: 1=Expense, 2=Income, 3=Transfer Out, 4=Transfer In.",
	}, tools.CreateTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_transactions",
		Description: "List recent transactions from EzBookkeeping, optionally filtered by account, category and time range. Amounts are returned in both cents and dollars.",
	}, tools.ListTransactions)
}

// CreateTransaction tool - records a new transaction
type CreateTransactionInput struct {
	Amount          float64  `json:"amount" jsonschema:"Transaction amount in dollars (e.g. 45.99)"`
	Description     string   `json:"description" jsonschema:"Description of the transaction"`
	AccountID       string   `json:"account_id" jsonschema:"ID of the account"`
	CategoryID      string   `json:"category_id" jsonschema:"ID of the category"`
	TransactionType int      `json:"transaction_type,omitempty" jsonschema:"Type of transaction: 1=Expense, 2=Income, 3=Transfer Out, 4=Transfer In (default: 1)"`
	Time            int64    `json:"time,omitempty" jsonschema:"Transaction time in Unix epoch milliseconds (optional, server time when omitted)"`
	TagIDs          []string `json:"tag_ids,omitempty" jsonschema:"IDs of tags to attach (optional)"`
}

type TransactionEntry struct {
	ID                   string   `json:"id,omitempty" jsonschema:"Transaction ID"`
	Type                 int      `json:"type,omitempty" jsonschema:"Transaction type code (1-4)"`
	TypeName             string   `json:"type_name,omitempty" jsonschema:"Transaction type name"`
	CategoryID           string   `json:"category_id,omitempty" jsonschema:"Category ID"`
	Time                 int64    `json:"time,omitempty" jsonschema:"Transaction time in Unix epoch milliseconds"`
	SourceAccountID      string   `json:"source_account_id,omitempty" jsonschema:"Account the amount is booked against"`
	DestinationAccountID string   `json:"destination_account_id,omitempty" jsonschema:"Destination account for transfers"`
	Amount               *int64   `json:"amount,omitempty" jsonschema:"Amount in cents, when the server reported one"`
	AmountDollars        *float64 `json:"amount_dollars,omitempty" jsonschema:"Amount in dollars, present whenever amount is"`
	Description          string   `json:"description,omitempty" jsonschema:"Transaction description"`
	Comment              string   `json:"comment,omitempty" jsonschema:"Transaction comment"`
	TagIDs               []string `json:"tag_ids,omitempty" jsonschema:"Attached tag IDs"`
}

type CreateTransactionOutput struct {
	Success       bool              `json:"success" jsonschema:"Whether the transaction was recorded"`
	TransactionID string            `json:"transaction_id,omitempty" jsonschema:"ID assigned by the server, when it returned one"`
	Message       string            `json:"message" jsonschema:"Human readable confirmation"`
	Details       *TransactionEntry `json:"details,omitempty" jsonschema:"The transaction as stored by the server"`
}

func (t *ledgerTools) CreateTransaction(ctx context.Context, req *mcp.CallToolRequest, input CreateTransactionInput) (*mcp.CallToolResult, CreateTransactionOutput, error) {
	t.logger.Debug("tool call", "tool", "create_transaction", "account_id", input.AccountID, "type", input.TransactionType)

	result, err := t.transactions.Create(ctx, &ezbookkeeping.CreateTransactionParams{
		Amount:      input.Amount,
		Description: input.Description,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		Type:        ezbookkeeping.TransactionType(input.TransactionType),
		Time:        input.Time,
		TagIDs:      input.TagIDs,
	})
	if err != nil {
		t.logger.Warn("create_transaction failed", "error", err)
		return nil, CreateTransactionOutput{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	output := CreateTransactionOutput{
		Success: result.Success,
		Message: result.Message,
	}
	if result.TransactionID != nil {
		output.TransactionID = *result.TransactionID
	}
	if result.Details != nil {
		entry := toTransactionEntry(result.Details)
		output.Details = &entry
	}

	return nil, output, nil
}

// ListTransactions tool - queries transactions with optional filters
type ListTransactionsInput struct {
	MaxCount   int    `json:"max_count,omitempty" jsonschema:"Maximum number of transactions to return (default: 50)"`
	AccountID  string `json:"account_id,omitempty" jsonschema:"Filter by account ID (optional)"`
	CategoryID string `json:"category_id,omitempty" jsonschema:"Filter by category ID (optional)"`
	StartTime  int64  `json:"start_time,omitempty" jsonschema:"Only transactions at or after this Unix epoch millisecond time (optional)"`
	EndTime    int64  `json:"end_time,omitempty" jsonschema:"Only transactions at or before this Unix epoch millisecond time (optional)"`
}

type ListTransactionsOutput struct {
	Success      bool               `json:"success" jsonschema:"Whether the query succeeded"`
	Count        int                `json:"count" jsonschema:"Number of transactions returned"`
	Transactions []TransactionEntry `json:"transactions" jsonschema:"List of transactions"`
}

func (t *ledgerTools) ListTransactions(ctx context.Context, req *mcp.CallToolRequest, input ListTransactionsInput) (*mcp.CallToolResult, ListTransactionsOutput, error) {
	t.logger.Debug("tool call", "tool", "list_transactions", "max_count", input.MaxCount, "account_id", input.AccountID, "category_id", input.CategoryID)

	result, err := t.transactions.List(ctx, &ezbookkeeping.ListTransactionsParams{
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
		MaxCount:   input.MaxCount,
	})
	if err != nil {
		t.logger.Warn("list_transactions failed", "error", err)
		return nil, ListTransactionsOutput{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	entries := make([]TransactionEntry, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		if tx == nil {
			continue
		}
		entries = append(entries, toTransactionEntry(tx))
	}

	return nil, ListTransactionsOutput{
		Success:      result.Success,
		Count:        result.Count,
		Transactions: entries,
	}, nil
}

func toTransactionEntry(tx *ezbookkeeping.Transaction) TransactionEntry {
	entry := TransactionEntry{
		ID:                   tx.ID,
		Type:                 int(tx.Type),
		CategoryID:           tx.CategoryID,
		Time:                 tx.Time,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Description:          tx.Description,
		Comment:              tx.Comment,
		TagIDs:               tx.TagIDs,
	}

	if tx.Type.IsValid() {
		entry.TypeName = tx.Type.String()
	}

	if tx.Amount != nil {
		amount := *tx.Amount
		dollars := ezbookkeeping.MajorFromMinor(amount).Float64()
		entry.Amount = &amount
		entry.AmountDollars = &dollars
	}

	return entry
}
