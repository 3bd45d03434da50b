package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
)

// BudgetStatus classifies how much of a budget has been used.
type BudgetStatus string

const (
	StatusOver    BudgetStatus = "over"
	StatusWarning BudgetStatus = "warning"
	StatusGood    BudgetStatus = "good"
)

var (
	overThreshold    = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// BudgetPerformance compares one budget against its period spend.
type BudgetPerformance struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// BudgetSummary rolls up a budget evaluation.
type BudgetSummary struct {
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	OverCount     int             `json:"overBudgetCount"`
	WarningCount  int             `json:"warningCount"`
	GoodCount     int             `json:"onTrackCount"`
}

// BudgetEvaluation is the result of EvaluateBudgets.
type BudgetEvaluation struct {
	Items   []BudgetPerformance
	Summary BudgetSummary
}

// BudgetLimit returns the effective limit of b. Records written before the
// "limit" field existed carry the cap as "amount"; a budget with neither has
// a zero limit.
func BudgetLimit(b finance.Budget) decimal.Decimal {
	switch {
	case b.Limit != nil:
		return *b.Limit
	case b.Amount != nil:
		return *b.Amount
	default:
		return decimal.Zero
	}
}

// BudgetCategory returns the category of b, or finance.DefaultCategory when
// it is empty, matching how uncategorised transactions are counted.
func BudgetCategory(b finance.Budget) string {
	if b.Category == "" {
		return finance.DefaultCategory
	}
	return b.Category
}

// Classify maps a usage percentage to a status. The first matching
// threshold wins: above 100 is over, above 80 is warning.
func Classify(percentage decimal.Decimal) BudgetStatus {
	switch {
	case percentage.GreaterThan(overThreshold):
		return StatusOver
	case percentage.GreaterThan(warningThreshold):
		return StatusWarning
	default:
		return StatusGood
	}
}

// EvaluateBudgets measures every budget against the expenses in s. Spend is
// recomputed per budget by exact category match; output order follows input.
func EvaluateBudgets(budgets []finance.Budget, s *Summary) BudgetEvaluation {
	eval := BudgetEvaluation{
		Items: make([]BudgetPerformance, 0, len(budgets)),
		Summary: BudgetSummary{
			TotalBudgeted: decimal.Zero,
			TotalSpent:    decimal.Zero,
		},
	}

	for _, b := range budgets {
		limit := BudgetLimit(b)
		category := BudgetCategory(b)
		spent := categorySpend(s.Transactions, category)
		percentage := Percent(spent, limit)

		item := BudgetPerformance{
			Category:   category,
			Limit:      limit,
			Spent:      spent,
			Remaining:  limit.Sub(spent),
			Percentage: percentage,
			Status:     Classify(percentage),
		}
		eval.Items = append(eval.Items, item)

		eval.Summary.TotalBudgeted = eval.Summary.TotalBudgeted.Add(limit)
		eval.Summary.TotalSpent = eval.Summary.TotalSpent.Add(spent)
		switch item.Status {
		case StatusOver:
			eval.Summary.OverCount++
		case StatusWarning:
			eval.Summary.WarningCount++
		case StatusGood:
			eval.Summary.GoodCount++
		}
	}

	return eval
}

func categorySpend(txs []finance.Transaction, category string) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type == finance.Expense && tx.CategoryOrDefault() == category {
			spent = spent.Add(tx.Amount)
		}
	}
	return spent
}
