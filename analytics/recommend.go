package analytics

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	savingsRateTarget   = decimal.NewFromInt(20)
	expenseRatioCeiling = decimal.RequireFromString("0.9")
	categoryShareLimit  = decimal.RequireFromString("0.3")
	debtIncomeMultiple  = decimal.NewFromInt(3)
)

// Recommend applies the general rules to a period summary. Every rule is
// evaluated in order and contributes at most one message.
func Recommend(s *Summary, totalDebt decimal.Decimal) []string {
	recs := []string{}

	if s.SavingsRate.LessThan(savingsRateTarget) {
		recs = append(recs, "Consider increasing your savings rate to at least 20% of income.")
	}

	if s.Expenses.GreaterThan(s.Income.Mul(expenseRatioCeiling)) {
		recs = append(recs, "Your expenses are very high relative to income. Review discretionary spending.")
	}

	if category, amount, ok := topCategory(s); ok && amount.GreaterThan(s.Expenses.Mul(categoryShareLimit)) {
		share := Percent(amount, s.Expenses)
		recs = append(recs, fmt.Sprintf(
			"Your %s spending accounts for %s%% of total expenses. Consider reviewing this category.",
			category, share.StringFixed(1)))
	}

	if totalDebt.Sign() > 0 && totalDebt.GreaterThan(s.Income.Mul(debtIncomeMultiple)) {
		recs = append(recs, "Your total debt is more than three times your period income. Consider creating a debt repayment plan.")
	}

	return recs
}

// topCategory returns the category with the largest spend. On a tie the
// category seen first wins.
func topCategory(s *Summary) (string, decimal.Decimal, bool) {
	var (
		best   string
		amount decimal.Decimal
		found  bool
	)
	for _, category := range s.Categories {
		spent := s.SpendingByCategory[category]
		if !found || spent.GreaterThan(amount) {
			best, amount, found = category, spent, true
		}
	}
	return best, amount, found
}

// RecommendBudgets lists over-budget and near-limit categories, one message each.
func RecommendBudgets(items []BudgetPerformance) []string {
	var over, warning []string
	for _, item := range items {
		switch item.Status {
		case StatusOver:
			over = append(over, item.Category)
		case StatusWarning:
			warning = append(warning, item.Category)
		}
	}

	recs := []string{}
	if len(over) > 0 {
		recs = append(recs, fmt.Sprintf(
			"You are over budget in: %s. Consider adjusting your spending or budget limits.",
			strings.Join(over, ", ")))
	}
	if len(warning) > 0 {
		recs = append(recs, fmt.Sprintf(
			"You are approaching your budget limit in: %s.",
			strings.Join(warning, ", ")))
	}
	return recs
}
