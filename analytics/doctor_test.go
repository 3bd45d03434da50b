package analytics

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/finreport/finance"
)

func TestUnmatchedBudgets(t *testing.T) {
	s := Aggregate(append(januaryTransactions(),
		tx("bus", "expense", "Transport", "40", date(2024, 1, 12)),
	), Resolve(Month, januaryNow))

	budgets := []finance.Budget{
		{Category: "housing", Limit: dec("1000")},
		{Category: "food_dinning", Limit: dec("150")},
		{Category: "transportation", Limit: dec("100")},
		{Category: "entertainment", Limit: dec("50")},
	}

	assert.Equal(t, []BudgetHint{
		{Category: "food_dinning", Suggestion: "food_dining", Distance: 1},
		{Category: "transportation", Suggestion: ""},
		{Category: "entertainment"},
	}, UnmatchedBudgets(budgets, s))
}

func TestUnmatchedBudgetsIgnoresCase(t *testing.T) {
	s := Aggregate([]finance.Transaction{
		tx("a", finance.Expense, "Groceries", "10", date(2024, 1, 2)),
	}, Resolve(Month, januaryNow))

	hints := UnmatchedBudgets([]finance.Budget{{Category: "groceries"}}, s)
	assert.Equal(t, []BudgetHint{{Category: "groceries", Suggestion: "Groceries", Distance: 0}}, hints)
}

func TestUnmatchedBudgetsSkipsBudgetedCategories(t *testing.T) {
	s := Aggregate(januaryTransactions(), Resolve(Month, januaryNow))

	hints := UnmatchedBudgets([]finance.Budget{
		{Category: "housing"},
		{Category: "housin"},
	}, s)
	assert.Equal(t, []BudgetHint{{Category: "housin"}}, hints)
}

func TestUnmatchedBudgetsAllMatched(t *testing.T) {
	s := Aggregate(januaryTransactions(), Resolve(Month, januaryNow))
	assert.Equal(t, []BudgetHint{}, UnmatchedBudgets([]finance.Budget{{Category: "housing"}}, s))
}
