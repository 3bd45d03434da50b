package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/finreport/finance"
)

// MonthKeyLayout formats the month key of a trend record.
const MonthKeyLayout = "2006-01"

// MonthlyTrend holds the totals of one calendar month.
type MonthlyTrend struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

// Trends groups transactions by calendar month in loc, oldest first. Pass
// the filtered subset of a Summary and the location of its range to keep
// the series period-scoped. A nil loc keeps each transaction's own zone.
// Months without transactions are not synthesized.
func Trends(txs []finance.Transaction, loc *time.Location) []MonthlyTrend {
	byMonth := make(map[string]*MonthlyTrend)
	keys := make([]string, 0)

	for _, tx := range txs {
		date := tx.Date
		if loc != nil {
			date = date.In(loc)
		}
		key := date.Format(MonthKeyLayout)
		trend, ok := byMonth[key]
		if !ok {
			trend = &MonthlyTrend{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = trend
			keys = append(keys, key)
		}

		switch tx.Type {
		case finance.Income:
			trend.Income = trend.Income.Add(tx.Amount)
		case finance.Expense:
			trend.Expenses = trend.Expenses.Add(tx.Amount)
		}
	}

	// YYYY-MM sorts lexicographically in chronological order.
	slices.Sort(keys)

	trends := make([]MonthlyTrend, 0, len(keys))
	for _, key := range keys {
		trend := byMonth[key]
		trend.Savings = trend.Income.Sub(trend.Expenses)
		trends = append(trends, *trend)
	}
	return trends
}
