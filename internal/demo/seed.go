package demo

import (
	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
)

// Account categories and types as used by EzBookkeeping
const (
	categoryCash       = 1
	categoryChecking   = 2
	categoryCreditCard = 3
	categorySavings    = 5

	typeSingle = 1
	typeParent = 2
)

func balance(v int64) *int64 { return &v }

func seedAccounts() []*ezbookkeeping.Account {
	return []*ezbookkeeping.Account{
		{
			ID:           "1001",
			Name:         "Cash",
			Category:     categoryCash,
			Type:         typeSingle,
			Currency:     "USD",
			Balance:      balance(12050),
			DisplayOrder: 1,
			IsAsset:      true,
		},
		{
			ID:           "1002",
			Name:         "Everyday Bank",
			Category:     categoryChecking,
			Type:         typeParent,
			Currency:     "USD",
			DisplayOrder: 2,
			IsAsset:      true,
			SubAccounts: []*ezbookkeeping.Account{
				{
					ID:           "1003",
					Name:         "Checking",
					ParentID:     "1002",
					Category:     categoryChecking,
					Type:         typeSingle,
					Currency:     "USD",
					Balance:      balance(245099),
					DisplayOrder: 1,
					IsAsset:      true,
				},
				{
					ID:           "1004",
					Name:         "Savings",
					ParentID:     "1002",
					Category:     categorySavings,
					Type:         typeParent,
					Currency:     "USD",
					DisplayOrder: 2,
					IsAsset:      true,
					SubAccounts: []*ezbookkeeping.Account{
						{
							ID:           "1005",
							Name:         "Emergency Fund",
							ParentID:     "1004",
							Category:     categorySavings,
							Type:         typeSingle,
							Currency:     "USD",
							Balance:      balance(1000000),
							DisplayOrder: 1,
							IsAsset:      true,
						},
					},
				},
			},
		},
		{
			ID:           "1006",
			Name:         "Credit Card",
			Category:     categoryCreditCard,
			Type:         typeSingle,
			Currency:     "USD",
			Balance:      balance(-38417),
			DisplayOrder: 3,
			IsLiability:  true,
		},
	}
}

func seedTransactions() []*ezbookkeeping.Transaction {
	return []*ezbookkeeping.Transaction{
		{
			ID:              "2001",
			Type:            ezbookkeeping.TransactionTypeIncome,
			CategoryID:      "301",
			Time:            1727769600000,
			SourceAccountID: "1003",
			Amount:          balance(350000),
			Description:     "Salary",
		},
		{
			ID:              "2002",
			Type:            ezbookkeeping.TransactionTypeExpense,
			CategoryID:      "401",
			Time:            1727877600000,
			SourceAccountID: "1006",
			Amount:          balance(8642),
			Description:     "Groceries",
			TagIDs:          []string{"501"},
		},
		{
			ID:              "2003",
			Type:            ezbookkeeping.TransactionTypeExpense,
			CategoryID:      "402",
			Time:            1727964000000,
			SourceAccountID: "1001",
			Amount:          balance(1875),
			Description:     "Lunch",
		},
		{
			ID:                   "2004",
			Type:                 ezbookkeeping.TransactionTypeTransferOut,
			CategoryID:           "601",
			Time:                 1728050400000,
			SourceAccountID:      "1003",
			DestinationAccountID: "1005",
			Amount:               balance(50000),
			Description:          "Monthly savings",
		},
	}
}
