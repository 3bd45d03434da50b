package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func tx(id string, typ finance.TransactionType, category string, amount string, when time.Time) finance.Transaction {
	return finance.Transaction{
		ID:          id,
		Type:        typ,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Date:        when,
		Description: id,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// januaryTransactions is the canonical three-transaction month used across tests.
func januaryTransactions() []finance.Transaction {
	return []finance.Transaction{
		tx("salary", finance.Income, "salary", "1000", date(2024, 1, 5)),
		tx("groceries", finance.Expense, "food_dining", "200", date(2024, 1, 10)),
		tx("rent", finance.Expense, "housing", "850", date(2024, 1, 15)),
	}
}

var januaryNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
