// Package finance defines the financial records consumed by the reporting engine.
//
// The records are owned by an external ledger and are treated as read-only
// inputs: transactions, budgets, investment positions, debts and the aggregate
// account balance. Monetary values use decimal arithmetic so that category
// sums match period totals exactly.
//
// Example usage:
//
//	var ds finance.Dataset
//	if err := json.Unmarshal(raw, &ds); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ds.TotalInvestments(), ds.TotalDebt())
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to transactions that carry no category.
const DefaultCategory = "other"

// TransactionType classifies a transaction.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// CategoryOrDefault returns the transaction category, or DefaultCategory when it is empty.
func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// Budget caps spending for a category.
//
// Older records store the cap under "amount" instead of "limit". Both fields
// are kept as read; the effective limit is resolved by the budget evaluator.
type Budget struct {
	Category string           `json:"category"`
	Limit    *decimal.Decimal `json:"limit,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Period   string           `json:"period,omitempty"`
}

// Investment is a held position.
type Investment struct {
	Name          string           `json:"name,omitempty"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	CurrentValue  *decimal.Decimal `json:"current_value,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
}

// Value returns the position value, priced at the current value when known
// and at the purchase price otherwise.
func (i Investment) Value() decimal.Decimal {
	price := i.PurchasePrice
	if i.CurrentValue != nil {
		price = *i.CurrentValue
	}
	return price.Mul(i.Quantity)
}

// Debt tracks an outstanding balance.
type Debt struct {
	Name           string          `json:"name,omitempty"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// Dataset bundles every collection a report is computed from.
type Dataset struct {
	Transactions []Transaction   `json:"transactions"`
	Budgets      []Budget        `json:"budgets"`
	Investments  []Investment    `json:"investments"`
	Debts        []Debt          `json:"debts"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// TotalInvestments sums the value of every investment position.
func (d *Dataset) TotalInvestments() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range d.Investments {
		total = total.Add(inv.Value())
	}
	return total
}

// TotalDebt sums the current balance of every debt.
func (d *Dataset) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, debt := range d.Debts {
		total = total.Add(debt.CurrentBalance)
	}
	return total
}

// Normalize fills defaults for missing optional fields in place.
func (d *Dataset) Normalize() {
	for i := range d.Transactions {
		d.Transactions[i].Category = d.Transactions[i].CategoryOrDefault()
	}
	for i := range d.Budgets {
		if d.Budgets[i].Category == "" {
			d.Budgets[i].Category = DefaultCategory
		}
	}
}
