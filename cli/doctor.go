package cli

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/output"
)

// DoctorCmd provides doctor utilities for checking datasets.
type DoctorCmd struct {
	Budgets DoctorBudgetsCmd `cmd:"" help:"Find budgets whose category saw no spending and suggest likely matches."`
}

// DoctorBudgetsCmd reports budgets that match no expense category. It is
// advisory and never changes the dataset.
type DoctorBudgetsCmd struct {
	Period string `help:"Reporting period (${enum})." enum:"week,month,quarter,year" default:"month" short:"p"`
}

// Run executes the budgets check.
func (cmd *DoctorBudgetsCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "doctor budgets")
	defer s.finish()

	result, err := s.loadDataset(globals)
	if err != nil {
		return err
	}

	rng := analytics.Resolve(analytics.ParsePeriod(cmd.Period), time.Now())
	summary := analytics.Aggregate(result.Dataset.Transactions, rng)
	hints := analytics.UnmatchedBudgets(result.Dataset.Budgets, summary)

	if len(hints) == 0 {
		printSuccess(ctx.Stdout, fmt.Sprintf("All %d budgets match spending categories", len(result.Dataset.Budgets)))
		return nil
	}

	styles := output.NewStyles(ctx.Stdout)
	t := output.NewTable("Budget", "Suggestion", "Distance").AlignRight(2)
	t.Style = func(col int, cell string) string {
		if col == 1 {
			return styles.Category(cell)
		}
		return cell
	}
	for _, h := range hints {
		distance := ""
		if h.Suggestion != "" {
			distance = fmt.Sprintf("%d", h.Distance)
		}
		t.Append(h.Category, h.Suggestion, distance)
	}
	if err := t.Render(ctx.Stdout); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(ctx.Stdout)
	printError(ctx.Stdout, fmt.Sprintf("%d budget(s) matched no spending in the %s", len(hints), cmd.Period))
	return nil
}
