package analytics

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/finreport/finance"
)

// TopExpensesLimit caps the number of entries in Summary.TopExpenses.
const TopExpensesLimit = 10

var hundred = decimal.NewFromInt(100)

// Summary holds the totals of the transactions that fall inside a range.
type Summary struct {
	Range Range

	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Savings     decimal.Decimal
	SavingsRate decimal.Decimal

	// SpendingByCategory maps a category to its summed expense amount.
	// Categories without expenses in the range are absent.
	SpendingByCategory map[string]decimal.Decimal
	// Categories lists the keys of SpendingByCategory in first-seen order.
	Categories []string

	TopExpenses      []finance.Transaction
	TransactionCount int

	// Transactions is the filtered subset, in input order.
	Transactions []finance.Transaction
}

// Filter returns the transactions dated inside rng, in input order.
func Filter(txs []finance.Transaction, rng Range) []finance.Transaction {
	filtered := make([]finance.Transaction, 0, len(txs))
	for _, tx := range txs {
		if rng.Contains(tx.Date) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// Aggregate totals the transactions inside rng. An empty input yields zero
// totals and an empty category map.
func Aggregate(txs []finance.Transaction, rng Range) *Summary {
	filtered := Filter(txs, rng)

	s := &Summary{
		Range:              rng,
		Income:             decimal.Zero,
		Expenses:           decimal.Zero,
		SpendingByCategory: make(map[string]decimal.Decimal),
		Categories:         []string{},
		TransactionCount:   len(filtered),
		Transactions:       filtered,
	}

	expenses := make([]finance.Transaction, 0, len(filtered))
	for _, tx := range filtered {
		switch tx.Type {
		case finance.Income:
			s.Income = s.Income.Add(tx.Amount)
		case finance.Expense:
			s.Expenses = s.Expenses.Add(tx.Amount)
			expenses = append(expenses, tx)

			category := tx.CategoryOrDefault()
			current, seen := s.SpendingByCategory[category]
			if !seen {
				s.Categories = append(s.Categories, category)
			}
			s.SpendingByCategory[category] = current.Add(tx.Amount)
		}
	}

	s.Savings = s.Income.Sub(s.Expenses)
	s.SavingsRate = Percent(s.Savings, s.Income)

	slices.SortStableFunc(expenses, func(a, b finance.Transaction) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(expenses) > TopExpensesLimit {
		expenses = expenses[:TopExpensesLimit]
	}
	s.TopExpenses = expenses

	return s
}

// Percent returns part as a percentage of whole, or zero when whole is not
// positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.Sign() <= 0 {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// CategoryShare is one row of a category breakdown.
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryBreakdown lists each spending category with its share of total
// expenses, largest first. Equal amounts keep first-seen order.
func CategoryBreakdown(s *Summary) []CategoryShare {
	shares := make([]CategoryShare, 0, len(s.Categories))
	for _, category := range s.Categories {
		amount := s.SpendingByCategory[category]
		shares = append(shares, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: Percent(amount, s.Expenses),
		})
	}

	slices.SortStableFunc(shares, func(a, b CategoryShare) int {
		return b.Amount.Cmp(a.Amount)
	})

	return shares
}
