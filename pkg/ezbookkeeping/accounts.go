package ezbookkeeping

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

const accountsListPath = "/accounts/list.json"

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts
func (s *accountService) List(ctx context.Context) (*AccountList, error) {
	var raw json.RawMessage
	if err := s.client.get(ctx, accountsListPath, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	list := &AccountList{Success: true}

	if !isJSONArray(raw) {
		list.Raw = raw
		return list, nil
	}

	var accounts []*Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, errors.Wrap(err, "failed to decode accounts")
	}

	AnnotateBalances(accounts)

	list.Accounts = accounts
	list.Count = len(accounts)
	return list, nil
}

// Get retrieves a single account by ID.
// The whole tree is fetched and searched with FindAccount.
func (s *accountService) Get(ctx context.Context, accountID string) (*AccountDetail, error) {
	var raw json.RawMessage
	if err := s.client.get(ctx, accountsListPath, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	var accounts []*Account
	if isJSONArray(raw) {
		if err := json.Unmarshal(raw, &accounts); err != nil {
			return nil, errors.Wrap(err, "failed to decode accounts")
		}
	}

	account := FindAccount(accounts, accountID)
	if account == nil {
		return nil, &NotFoundError{Resource: "account", ID: accountID}
	}

	AnnotateBalances([]*Account{account})

	return &AccountDetail{
		Success: true,
		Account: account,
	}, nil
}

// FindAccount searches the account tree depth-first in pre-order and returns
// the first account whose ID matches. A parent is checked before its
// sub-accounts, and a sub-tree is exhausted before the next sibling is visited.
func FindAccount(accounts []*Account, accountID string) *Account {
	for _, account := range accounts {
		if account == nil {
			continue
		}
		if account.ID == accountID {
			return account
		}
		if found := FindAccount(account.SubAccounts, accountID); found != nil {
			return found
		}
	}
	return nil
}

// AnnotateBalances sets BalanceDollars on every account in the tree that has a balance
func AnnotateBalances(accounts []*Account) {
	for _, account := range accounts {
		if account == nil {
			continue
		}
		account.annotate()
		AnnotateBalances(account.SubAccounts)
	}
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
