package analytics

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
)

func TestAggregateMonth(t *testing.T) {
	s := Aggregate(januaryTransactions(), Resolve(Month, januaryNow))

	assert.Equal(t, "1000", s.Income.String())
	assert.Equal(t, "1050", s.Expenses.String())
	assert.Equal(t, "-50", s.Savings.String())
	assert.Equal(t, "-5", s.SavingsRate.String())
	assert.Equal(t, 3, s.TransactionCount)

	assert.Equal(t, 2, len(s.SpendingByCategory))
	assert.Equal(t, "200", s.SpendingByCategory["food_dining"].String())
	assert.Equal(t, "850", s.SpendingByCategory["housing"].String())
	assert.Equal(t, []string{"food_dining", "housing"}, s.Categories)

	assert.Equal(t, 2, len(s.TopExpenses))
	assert.Equal(t, "rent", s.TopExpenses[0].ID)
	assert.Equal(t, "groceries", s.TopExpenses[1].ID)
}

func TestAggregateEmpty(t *testing.T) {
	for _, p := range Periods {
		t.Run(string(p), func(t *testing.T) {
			s := Aggregate(nil, Resolve(p, januaryNow))

			assert.True(t, s.Income.IsZero())
			assert.True(t, s.Expenses.IsZero())
			assert.True(t, s.Savings.IsZero())
			assert.True(t, s.SavingsRate.IsZero())
			assert.Equal(t, 0, len(s.SpendingByCategory))
			assert.Equal(t, 0, len(s.TopExpenses))
			assert.Equal(t, 0, s.TransactionCount)
		})
	}
}

func TestAggregateFiltersRange(t *testing.T) {
	txs := append(januaryTransactions(),
		tx("december", finance.Expense, "housing", "850", date(2023, 12, 15)),
		tx("future", finance.Income, "salary", "999", date(2024, 1, 25)),
	)

	s := Aggregate(txs, Resolve(Month, januaryNow))
	assert.Equal(t, 3, s.TransactionCount)
	assert.Equal(t, "1000", s.Income.String())
	assert.Equal(t, "850", s.SpendingByCategory["housing"].String())
}

func TestAggregateTransfersOnlyCount(t *testing.T) {
	txs := []finance.Transaction{
		tx("move", finance.Transfer, "savings", "500", date(2024, 1, 2)),
	}

	s := Aggregate(txs, Resolve(Month, januaryNow))
	assert.Equal(t, 1, s.TransactionCount)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expenses.IsZero())
	assert.Equal(t, 0, len(s.SpendingByCategory))
}

func TestAggregateMissingCategory(t *testing.T) {
	txs := []finance.Transaction{
		tx("mystery", finance.Expense, "", "12.34", date(2024, 1, 3)),
	}

	s := Aggregate(txs, Resolve(Month, januaryNow))
	assert.Equal(t, "12.34", s.SpendingByCategory[finance.DefaultCategory].String())
}

func TestAggregateCategorySumConservation(t *testing.T) {
	var txs []finance.Transaction
	categories := []string{"food", "rent", "travel", "fun"}
	for i := 0; i < 57; i++ {
		amount := fmt.Sprintf("%d.%02d", i*7%113, i*13%100)
		txs = append(txs, tx(fmt.Sprint(i), finance.Expense, categories[i%len(categories)], amount, date(2024, 1, 1+i%19)))
	}

	s := Aggregate(txs, Resolve(Month, januaryNow))

	sum := decimal.Zero
	for _, v := range s.SpendingByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.Expenses), "sum %s != expenses %s", sum, s.Expenses)
}

func TestAggregateTopExpensesStableAndTruncated(t *testing.T) {
	var txs []finance.Transaction
	for i := 0; i < 12; i++ {
		txs = append(txs, tx(fmt.Sprintf("tie-%02d", i), finance.Expense, "misc", "10", date(2024, 1, 2)))
	}
	txs = append(txs, tx("big", finance.Expense, "misc", "99", date(2024, 1, 3)))

	s := Aggregate(txs, Resolve(Month, januaryNow))
	assert.Equal(t, TopExpensesLimit, len(s.TopExpenses))
	assert.Equal(t, "big", s.TopExpenses[0].ID)
	for i := 1; i < TopExpensesLimit; i++ {
		assert.Equal(t, fmt.Sprintf("tie-%02d", i-1), s.TopExpenses[i].ID)
	}
}

func TestPercentGuardsZero(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.Zero).IsZero())
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.NewFromInt(-2)).IsZero())
	assert.Equal(t, "50", Percent(decimal.NewFromInt(5), decimal.NewFromInt(10)).String())
}

func TestCategoryBreakdown(t *testing.T) {
	s := Aggregate(januaryTransactions(), Resolve(Month, januaryNow))
	shares := CategoryBreakdown(s)

	assert.Equal(t, 2, len(shares))
	assert.Equal(t, "housing", shares[0].Category)
	assert.Equal(t, "80.95", shares[0].Percentage.StringFixed(2))
	assert.Equal(t, "food_dining", shares[1].Category)
	assert.Equal(t, "19.05", shares[1].Percentage.StringFixed(2))
}
