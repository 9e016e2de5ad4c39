package ezbookkeeping

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// TransactionType is the EzBookkeeping transaction type
type TransactionType int

const (
	TransactionTypeExpense     TransactionType = 1
	TransactionTypeIncome      TransactionType = 2
	TransactionTypeTransferOut TransactionType = 3
	TransactionTypeTransferIn  TransactionType = 4
)

// DefaultMaxCount is the number of transactions listed when no count is given
const DefaultMaxCount = 50

// IsValid reports whether t is one of the known transaction types
func (t TransactionType) IsValid() bool {
	return t >= TransactionTypeExpense && t <= TransactionTypeTransferIn
}

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeExpense:
		return "expense"
	case TransactionTypeIncome:
		return "income"
	case TransactionTypeTransferOut:
		return "transfer_out"
	case TransactionTypeTransferIn:
		return "transfer_in"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// Account represents an account and its ordered sub-accounts.
// Fields the server sends that are not modelled here are kept and written
// back out unchanged by MarshalJSON.
type Account struct {
	ID             string       `json:"id"`
	Name           string       `json:"name,omitempty"`
	ParentID       string       `json:"parentId,omitempty"`
	Category       int          `json:"category,omitempty"`
	Type           int          `json:"type,omitempty"`
	Icon           string       `json:"icon,omitempty"`
	Color          string       `json:"color,omitempty"`
	Currency       string       `json:"currency,omitempty"`
	Balance        *int64       `json:"balance,omitempty"`
	BalanceDollars *MajorAmount `json:"balance_dollars,omitempty"`
	Comment        string       `json:"comment,omitempty"`
	DisplayOrder   int          `json:"displayOrder,omitempty"`
	IsAsset        bool         `json:"isAsset,omitempty"`
	IsLiability    bool         `json:"isLiability,omitempty"`
	Hidden         bool         `json:"hidden,omitempty"`
	SubAccounts    []*Account   `json:"subAccounts,omitempty"`

	// fields holds the object as the server sent it
	fields map[string]json.RawMessage
}

type accountJSON Account

// UnmarshalJSON implements json.Unmarshaler for Account
func (a *Account) UnmarshalJSON(data []byte) error {
	var decoded accountJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	*a = Account(decoded)
	a.fields = fields
	return nil
}

// MarshalJSON implements json.Marshaler for Account
func (a Account) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(accountJSON(a))
	if err != nil {
		return nil, err
	}
	return mergeFields(encoded, a.fields)
}

// annotate sets BalanceDollars from Balance when a balance is present
func (a *Account) annotate() {
	if a.Balance != nil {
		dollars := MajorFromMinor(*a.Balance)
		a.BalanceDollars = &dollars
	}
}

// Transaction represents a single transaction.
// Unmodelled fields from the server are kept, as for Account.
type Transaction struct {
	ID                   string          `json:"id,omitempty"`
	TimeSequenceID       string          `json:"timeSequenceId,omitempty"`
	Type                 TransactionType `json:"type,omitempty"`
	CategoryID           string          `json:"categoryId,omitempty"`
	Time                 int64           `json:"time,omitempty"`
	UTCOffset            int             `json:"utcOffset,omitempty"`
	SourceAccountID      string          `json:"sourceAccountId,omitempty"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty"`
	Amount               *int64          `json:"amount,omitempty"`
	AmountDollars        *MajorAmount    `json:"amount_dollars,omitempty"`
	Description          string          `json:"description,omitempty"`
	Comment              string          `json:"comment,omitempty"`
	TagIDs               []string        `json:"tagIds,omitempty"`

	fields map[string]json.RawMessage
}

type transactionJSON Transaction

// UnmarshalJSON implements json.Unmarshaler for Transaction
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var decoded transactionJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	*t = Transaction(decoded)
	t.fields = fields
	return nil
}

// MarshalJSON implements json.Marshaler for Transaction
func (t Transaction) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(transactionJSON(t))
	if err != nil {
		return nil, err
	}
	return mergeFields(encoded, t.fields)
}

// annotate sets AmountDollars from Amount when an amount is present
func (t *Transaction) annotate() {
	if t.Amount != nil {
		dollars := MajorFromMinor(*t.Amount)
		t.AmountDollars = &dollars
	}
}

// decodeFields returns the members of a JSON object, or nil for anything else
func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	if !isJSONObject(data) {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// mergeFields adds to the encoded object every member of fields it does not
// already have. Modelled values win over what the server sent.
func mergeFields(encoded []byte, fields map[string]json.RawMessage) ([]byte, error) {
	if len(fields) == 0 {
		return encoded, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &merged); err != nil {
		return nil, err
	}
	for key, value := range fields {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// CreateTransactionParams contains parameters for creating a transaction
type CreateTransactionParams struct {
	// Amount in major units, e.g. 45.99
	Amount      float64
	Description string
	AccountID   string
	CategoryID  string
	// Type defaults to TransactionTypeExpense when zero
	Type TransactionType
	// Time in epoch milliseconds; zero leaves it to the server
	Time   int64
	TagIDs []string
}

// addTransactionRequest is the wire payload for /transactions/add.json
type addTransactionRequest struct {
	Amount          int64           `json:"amount"`
	Description     string          `json:"description"`
	SourceAccountID string          `json:"sourceAccountId"`
	CategoryID      string          `json:"categoryId"`
	Type            TransactionType `json:"type"`
	Time            int64           `json:"time,omitempty"`
	TagIDs          []string        `json:"tagIds,omitempty"`
}

// ListTransactionsParams contains filters for listing transactions.
// Zero values mean "not provided", so a time bound of exactly 0 cannot be expressed.
type ListTransactionsParams struct {
	// StartTime in epoch milliseconds
	StartTime int64
	// EndTime in epoch milliseconds
	EndTime    int64
	AccountID  string
	CategoryID string
	// MaxCount defaults to DefaultMaxCount when zero or negative
	MaxCount int
}

// query builds the query string; count is always present
func (p *ListTransactionsParams) query() url.Values {
	count := p.MaxCount
	if count <= 0 {
		count = DefaultMaxCount
	}

	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	if p.StartTime != 0 {
		q.Set("minTime", strconv.FormatInt(p.StartTime, 10))
	}
	if p.EndTime != 0 {
		q.Set("maxTime", strconv.FormatInt(p.EndTime, 10))
	}
	if p.AccountID != "" {
		q.Set("accountId", p.AccountID)
	}
	if p.CategoryID != "" {
		q.Set("categoryId", p.CategoryID)
	}
	return q
}

// AccountList is the result of listing accounts
type AccountList struct {
	Success  bool       `json:"success"`
	Count    int        `json:"count"`
	Accounts []*Account `json:"accounts"`

	// Raw holds the upstream result when it was not a list.
	// It is emitted unchanged as "accounts" and Count stays 0.
	Raw json.RawMessage `json:"-"`
}

// MarshalJSON implements json.Marshaler for AccountList
func (l AccountList) MarshalJSON() ([]byte, error) {
	out := struct {
		Success  bool        `json:"success"`
		Count    int         `json:"count"`
		Accounts interface{} `json:"accounts"`
	}{
		Success:  l.Success,
		Count:    l.Count,
		Accounts: l.Accounts,
	}
	if l.Raw != nil {
		out.Accounts = l.Raw
	}
	return json.Marshal(out)
}

// AccountDetail is the result of looking up a single account
type AccountDetail struct {
	Success bool     `json:"success"`
	Account *Account `json:"account"`
}

// CreateTransactionResult is the result of creating a transaction
type CreateTransactionResult struct {
	Success       bool         `json:"success"`
	TransactionID *string      `json:"transaction_id"`
	Message       string       `json:"message"`
	Details       *Transaction `json:"details"`
}

// TransactionList is the result of listing transactions
type TransactionList struct {
	Success      bool           `json:"success"`
	Count        int            `json:"count"`
	Transactions []*Transaction `json:"transactions"`
}
