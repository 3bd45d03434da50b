package analytics

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/robinvdvleuten/finreport/finance"
)

// MaxSuggestionDistance is the largest edit distance at which a spending
// category is suggested for an unmatched budget.
const MaxSuggestionDistance = 3

// BudgetHint describes a budget whose category saw no spending in a period.
type BudgetHint struct {
	Category string `json:"category"`
	// Suggestion is the closest spending category, empty when none is close.
	Suggestion string `json:"suggestion,omitempty"`
	Distance   int    `json:"distance,omitempty"`
}

// UnmatchedBudgets lists budgets whose category has no expenses in s, with
// the nearest spending category as a likely misspelling. Comparison ignores
// case; on equal distance the category seen first wins.
func UnmatchedBudgets(budgets []finance.Budget, s *Summary) []BudgetHint {
	budgeted := make(map[string]bool, len(budgets))
	for _, b := range budgets {
		budgeted[BudgetCategory(b)] = true
	}

	hints := []BudgetHint{}
	for _, b := range budgets {
		name := BudgetCategory(b)
		if _, spent := s.SpendingByCategory[name]; spent {
			continue
		}

		hint := BudgetHint{Category: name}
		best := MaxSuggestionDistance + 1
		for _, category := range s.Categories {
			if budgeted[category] {
				continue
			}
			d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(category))
			if d < best {
				best = d
				hint.Suggestion = category
				hint.Distance = d
			}
		}
		hints = append(hints, hint)
	}
	return hints
}
