// Package analytics computes period-scoped figures from financial records.
//
// The pipeline is leaf-to-root and every stage is a pure function of its
// inputs:
//   - Resolve maps a Period to a concrete date Range anchored at "now"
//   - Aggregate filters transactions into the range and totals them
//   - EvaluateBudgets joins budgets against the filtered expenses
//   - Trends groups the filtered transactions by calendar month
//   - Recommend and RecommendBudgets apply fixed rules over the results
//
// Example usage:
//
//	rng := analytics.Resolve(analytics.Month, time.Now())
//	summary := analytics.Aggregate(ds.Transactions, rng)
//	budgets := analytics.EvaluateBudgets(ds.Budgets, summary)
//	recs := analytics.Recommend(summary, ds.TotalDebt())
package analytics

import (
	"strings"
	"time"
)

// Period selects the reporting window.
type Period string

const (
	// Week is a rolling window covering the seven days before now.
	Week Period = "week"
	// Month starts on the first day of the current calendar month.
	Month Period = "month"
	// Quarter starts on the first day of the current calendar quarter.
	Quarter Period = "quarter"
	// Year starts on January 1 of the current year.
	Year Period = "year"
)

// Periods lists every supported period in display order.
var Periods = []Period{Week, Month, Quarter, Year}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Week, Month, Quarter, Year:
		return true
	}
	return false
}

func (p Period) String() string {
	return string(p)
}

// ParsePeriod converts s to a Period. Unknown selectors fall back to Month,
// the same window an unrecognized selector has always produced.
func ParsePeriod(s string) Period {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return Month
	}
	return p
}

// Range is an inclusive date range.
type Range struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve maps a period to a range ending at now. Calendar boundaries are
// computed in now's location. Unknown periods resolve as Month.
func Resolve(p Period, now time.Time) Range {
	loc := now.Location()
	year, month, _ := now.Date()

	var start time.Time
	switch p {
	case Week:
		start = now.AddDate(0, 0, -7)
	case Quarter:
		quarterIndex := (int(month) - 1) / 3
		start = time.Date(year, time.Month(quarterIndex*3+1), 1, 0, 0, 0, 0, loc)
	case Year:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	}

	return Range{Start: start, End: now}
}
