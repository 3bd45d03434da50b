package report

import (
	"context"
	"fmt"
	"time"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/finance"
	"github.com/robinvdvleuten/finreport/telemetry"
)

// Generator assembles reports. The zero value is not usable; create one with New.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock that anchors period ranges and stamps GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator. Without options it uses time.Now.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate assembles a report of the given type over ds for period. A nil
// dataset is treated as empty. Failures during assembly are returned as
// *GenerationError.
func (g *Generator) Generate(ctx context.Context, typ Type, period analytics.Period, ds *finance.Dataset) (report *GeneratedReport, err error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("report.generate %s/%s", typ, period))
	defer timer.End()

	switch typ {
	case TypeSummary, TypeDetailed, TypeBudget:
	default:
		return nil, &UnknownTypeError{Value: string(typ)}
	}

	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = &GenerationError{Type: typ, Cause: fmt.Errorf("%v", r)}
		}
	}()

	if ds == nil {
		ds = &finance.Dataset{}
	}
	if !period.Valid() {
		period = analytics.Month
	}

	now := g.now()
	rng := analytics.Resolve(period, now)
	data := assemble(timer, typ, rng, ds)

	return &GeneratedReport{
		Type:        typ,
		Period:      period,
		Range:       rng,
		GeneratedAt: now,
		Data:        data,
	}, nil
}

func assemble(timer telemetry.Timer, typ Type, rng analytics.Range, ds *finance.Dataset) Data {
	aggTimer := timer.Child("report.aggregate")
	summary := analytics.Aggregate(ds.Transactions, rng)
	aggTimer.End()

	totals := Totals{
		TotalBalance:     ds.TotalBalance,
		TotalIncome:      summary.Income,
		TotalExpenses:    summary.Expenses,
		NetSavings:       summary.Savings,
		SavingsRate:      summary.SavingsRate,
		TransactionCount: summary.TransactionCount,
	}

	switch typ {
	case TypeBudget:
		budgetTimer := timer.Child("report.budgets")
		eval := analytics.EvaluateBudgets(ds.Budgets, summary)
		budgetTimer.End()

		return &BudgetData{
			Totals:          totals,
			Budgets:         eval.Items,
			BudgetSummary:   eval.Summary,
			Recommendations: analytics.RecommendBudgets(eval.Items),
		}

	case TypeDetailed:
		base := summaryData(timer, totals, summary, ds)

		trendTimer := timer.Child("report.trends")
		trends := analytics.Trends(summary.Transactions, rng.Start.Location())
		trendTimer.End()

		return &DetailedData{
			SummaryData:       *base,
			Transactions:      summary.Transactions,
			TopExpenses:       summary.TopExpenses,
			CategoryBreakdown: analytics.CategoryBreakdown(summary),
			Trends:            trends,
		}

	default:
		return summaryData(timer, totals, summary, ds)
	}
}

func summaryData(timer telemetry.Timer, totals Totals, summary *analytics.Summary, ds *finance.Dataset) *SummaryData {
	recTimer := timer.Child("report.recommendations")
	defer recTimer.End()

	investments := ds.TotalInvestments()
	debt := ds.TotalDebt()

	return &SummaryData{
		Totals:           totals,
		TotalInvestments: investments,
		TotalDebt:        debt,
		NetWorth:         ds.TotalBalance.Add(investments).Sub(debt),
		Recommendations:  analytics.Recommend(summary, debt),
	}
}
