// Package demo provides an in-memory ledger that satisfies the account and
// transaction services, so the MCP surface can be tried without a server.
package demo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/google/uuid"
)

// Store is an in-memory ledger. It is safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	accounts     []*ezbookkeeping.Account
	transactions []*ezbookkeeping.Transaction
	currency     string
	now          func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithCurrency sets the currency used in confirmation messages
func WithCurrency(currency string) Option {
	return func(s *Store) { s.currency = currency }
}

// WithClock overrides the clock used to time new transactions
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store seeded with sample accounts and transactions
func NewStore(opts ...Option) *Store {
	s := &Store{
		accounts:     seedAccounts(),
		transactions: seedTransactions(),
		currency:     "USD",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Accounts returns the store as an AccountService
func (s *Store) Accounts() ezbookkeeping.AccountService {
	return accountView{s}
}

// Transactions returns the store as a TransactionService
func (s *Store) Transactions() ezbookkeeping.TransactionService {
	return transactionView{s}
}

type accountView struct{ s *Store }

func (v accountView) List(ctx context.Context) (*ezbookkeeping.AccountList, error) {
	return v.s.ListAccounts(ctx)
}

func (v accountView) Get(ctx context.Context, accountID string) (*ezbookkeeping.AccountDetail, error) {
	return v.s.GetAccount(ctx, accountID)
}

type transactionView struct{ s *Store }

func (v transactionView) Create(ctx context.Context, params *ezbookkeeping.CreateTransactionParams) (*ezbookkeeping.CreateTransactionResult, error) {
	return v.s.CreateTransaction(ctx, params)
}

func (v transactionView) List(ctx context.Context, params *ezbookkeeping.ListTransactionsParams) (*ezbookkeeping.TransactionList, error) {
	return v.s.ListTransactions(ctx, params)
}

// ListAccounts returns a copy of the account tree with balances annotated
func (s *Store) ListAccounts(ctx context.Context) (*ezbookkeeping.AccountList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	accounts := cloneAccounts(s.accounts)
	s.mu.Unlock()

	ezbookkeeping.AnnotateBalances(accounts)

	return &ezbookkeeping.AccountList{
		Success:  true,
		Count:    len(accounts),
		Accounts: accounts,
	}, nil
}

// GetAccount looks an account up anywhere in the tree
func (s *Store) GetAccount(ctx context.Context, accountID string) (*ezbookkeeping.AccountDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	found := ezbookkeeping.FindAccount(s.accounts, accountID)
	var account *ezbookkeeping.Account
	if found != nil {
		account = cloneAccount(found)
	}
	s.mu.Unlock()

	if account == nil {
		return nil, &ezbookkeeping.NotFoundError{Resource: "account", ID: accountID}
	}

	ezbookkeeping.AnnotateBalances([]*ezbookkeeping.Account{account})

	return &ezbookkeeping.AccountDetail{
		Success: true,
		Account: account,
	}, nil
}

// CreateTransaction records a transaction and applies it to the source account balance
func (s *Store) CreateTransaction(ctx context.Context, params *ezbookkeeping.CreateTransactionParams) (*ezbookkeeping.CreateTransactionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, &ezbookkeeping.ValidationError{Field: "params", Message: "must not be nil"}
	}

	txType := params.Type
	if txType == 0 {
		txType = ezbookkeeping.TransactionTypeExpense
	}
	if !txType.IsValid() {
		return nil, &ezbookkeeping.ValidationError{
			Field:   "type",
			Message: "must be 1 (expense), 2 (income), 3 (transfer out) or 4 (transfer in)",
			Value:   int(params.Type),
		}
	}

	amount, err := ezbookkeeping.ToMinorUnits(params.Amount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := ezbookkeeping.FindAccount(s.accounts, params.AccountID)
	if account == nil {
		return nil, &ezbookkeeping.APIError{
			Code:    "200001",
			Message: fmt.Sprintf("account %s does not exist", params.AccountID),
		}
	}

	txTime := params.Time
	if txTime == 0 {
		txTime = s.now().UnixMilli()
	}

	tx := &ezbookkeeping.Transaction{
		ID:              uuid.NewString(),
		Type:            txType,
		CategoryID:      params.CategoryID,
		Time:            txTime,
		SourceAccountID: params.AccountID,
		Amount:          &amount,
		Description:     params.Description,
	}
	if len(params.TagIDs) > 0 {
		tx.TagIDs = append([]string(nil), params.TagIDs...)
	}

	s.transactions = append(s.transactions, tx)
	applyToBalance(account, txType, amount)

	id := tx.ID
	details := *tx
	return &ezbookkeeping.CreateTransactionResult{
		Success:       true,
		TransactionID: &id,
		Message:       fmt.Sprintf("Transaction added: %s - %s", params.Description, ezbookkeeping.FormatAmount(amount, s.currency)),
		Details:       &details,
	}, nil
}

// ListTransactions returns matching transactions, newest first
func (s *Store) ListTransactions(ctx context.Context, params *ezbookkeeping.ListTransactionsParams) (*ezbookkeeping.TransactionList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		params = &ezbookkeeping.ListTransactionsParams{}
	}

	maxCount := params.MaxCount
	if maxCount <= 0 {
		maxCount = ezbookkeeping.DefaultMaxCount
	}

	s.mu.Lock()
	var matched []*ezbookkeeping.Transaction
	for _, tx := range s.transactions {
		if matches(tx, params) {
			copied := *tx
			matched = append(matched, &copied)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Time > matched[j].Time
	})
	if len(matched) > maxCount {
		matched = matched[:maxCount]
	}

	items := make([]*ezbookkeeping.Transaction, 0, len(matched))
	for _, tx := range matched {
		if tx.Amount != nil {
			dollars := ezbookkeeping.MajorFromMinor(*tx.Amount)
			tx.AmountDollars = &dollars
		}
		items = append(items, tx)
	}

	return &ezbookkeeping.TransactionList{
		Success:      true,
		Count:        len(items),
		Transactions: items,
	}, nil
}

func matches(tx *ezbookkeeping.Transaction, params *ezbookkeeping.ListTransactionsParams) bool {
	if params.AccountID != "" && tx.SourceAccountID != params.AccountID && tx.DestinationAccountID != params.AccountID {
		return false
	}
	if params.CategoryID != "" && tx.CategoryID != params.CategoryID {
		return false
	}
	if params.StartTime != 0 && tx.Time < params.StartTime {
		return false
	}
	if params.EndTime != 0 && tx.Time > params.EndTime {
		return false
	}
	return true
}

func applyToBalance(account *ezbookkeeping.Account, txType ezbookkeeping.TransactionType, amount int64) {
	balance := int64(0)
	if account.Balance != nil {
		balance = *account.Balance
	}

	switch txType {
	case ezbookkeeping.TransactionTypeIncome, ezbookkeeping.TransactionTypeTransferIn:
		balance += amount
	default:
		balance -= amount
	}
	account.Balance = &balance
}

func cloneAccounts(accounts []*ezbookkeeping.Account) []*ezbookkeeping.Account {
	if accounts == nil {
		return nil
	}
	out := make([]*ezbookkeeping.Account, 0, len(accounts))
	for _, account := range accounts {
		if account != nil {
			out = append(out, cloneAccount(account))
		}
	}
	return out
}

func cloneAccount(account *ezbookkeeping.Account) *ezbookkeeping.Account {
	copied := *account
	if account.Balance != nil {
		balance := *account.Balance
		copied.Balance = &balance
	}
	copied.BalanceDollars = nil
	copied.SubAccounts = cloneAccounts(account.SubAccounts)
	return &copied
}
