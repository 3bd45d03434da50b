package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/output"
	"github.com/robinvdvleuten/finreport/report"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// renderReport prints r as a sequence of headed tables.
func renderReport(w io.Writer, r *report.GeneratedReport, styles *output.Styles) error {
	_, _ = fmt.Fprintf(w, "%s\n", headingStyle.Render(fmt.Sprintf("%s Financial Report", r.Type.Title())))
	_, _ = fmt.Fprintf(w, "%s\n", styles.Dim(fmt.Sprintf("%s: %s to %s, generated %s",
		r.Period,
		r.Range.Start.Format("2006-01-02"),
		r.Range.End.Format("2006-01-02"),
		r.GeneratedAt.Format("2006-01-02 15:04"))))

	totals := r.Data.Overview()
	summary := output.NewTable("Metric", "Value").AlignRight(1)
	summary.Style = func(col int, cell string) string {
		if col == 1 {
			return styles.Amount(cell)
		}
		return cell
	}
	summary.Append("Total Balance", money(totals.TotalBalance))
	summary.Append("Income", money(totals.TotalIncome))
	summary.Append("Expenses", money(totals.TotalExpenses))
	summary.Append("Savings", money(totals.NetSavings))
	summary.Append("Savings Rate", percent(totals.SavingsRate))
	summary.Append("Transactions", strconv.Itoa(totals.TransactionCount))

	var recommendations []string
	switch d := r.Data.(type) {
	case *report.SummaryData:
		appendNetWorth(summary, d)
		recommendations = d.Recommendations
	case *report.DetailedData:
		appendNetWorth(summary, &d.SummaryData)
		recommendations = d.Recommendations
	case *report.BudgetData:
		recommendations = d.Recommendations
	}

	if err := section(w, "Summary", summary); err != nil {
		return err
	}

	switch d := r.Data.(type) {
	case *report.DetailedData:
		if err := renderDetailed(w, d, styles); err != nil {
			return err
		}
	case *report.BudgetData:
		if err := renderBudgets(w, d, styles); err != nil {
			return err
		}
	}

	if len(recommendations) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", headingStyle.Render("Recommendations"))
		for _, rec := range recommendations {
			printInfof(w, "%s", rec)
		}
	}
	return nil
}

func appendNetWorth(t *output.Table, d *report.SummaryData) {
	t.Append("Investments", money(d.TotalInvestments))
	t.Append("Debt", money(d.TotalDebt))
	t.Append("Net Worth", money(d.NetWorth))
}

func renderDetailed(w io.Writer, d *report.DetailedData, styles *output.Styles) error {
	if len(d.TopExpenses) > 0 {
		top := output.NewTable("#", "Date", "Description", "Category", "Amount").AlignRight(0, 4)
		top.Style = categoryStyle(styles, 3, 4)
		for i, tx := range d.TopExpenses {
			top.Append(strconv.Itoa(i+1), tx.Date.Format("2006-01-02"), tx.Description, tx.CategoryOrDefault(), money(tx.Amount))
		}
		if err := section(w, "Top Expenses", top); err != nil {
			return err
		}
	}

	if len(d.CategoryBreakdown) > 0 {
		categories := output.NewTable("Category", "Amount", "Share").AlignRight(1, 2)
		categories.Style = categoryStyle(styles, 0, 1)
		for _, share := range d.CategoryBreakdown {
			categories.Append(share.Category, money(share.Amount), percent(share.Percentage))
		}
		if err := section(w, "Category Breakdown", categories); err != nil {
			return err
		}
	}

	if len(d.Trends) > 0 {
		trends := output.NewTable("Month", "Income", "Expenses", "Savings").AlignRight(1, 2, 3)
		for _, m := range d.Trends {
			trends.Append(m.Month, money(m.Income), money(m.Expenses), money(m.Savings))
		}
		if err := section(w, "Monthly Trends", trends); err != nil {
			return err
		}
	}
	return nil
}

func renderBudgets(w io.Writer, d *report.BudgetData, styles *output.Styles) error {
	budgets := output.NewTable("Category", "Limit", "Spent", "Remaining", "Used", "Status").AlignRight(1, 2, 3, 4)
	budgets.Style = func(col int, cell string) string {
		switch col {
		case 0:
			return styles.Category(cell)
		case 5:
			return styles.Status(cell)
		}
		return cell
	}
	for _, b := range d.Budgets {
		budgets.Append(b.Category, money(b.Limit), money(b.Spent), money(b.Remaining), percent(b.Percentage), string(b.Status))
	}
	if err := section(w, "Budget Performance", budgets); err != nil {
		return err
	}

	s := d.BudgetSummary
	_, _ = fmt.Fprintf(w, "\n%s budgeted, %s spent: %d over, %d warning, %d on track\n",
		money(s.TotalBudgeted), money(s.TotalSpent), s.OverCount, s.WarningCount, s.GoodCount)
	return nil
}

func categoryStyle(styles *output.Styles, categoryCol, amountCol int) func(int, string) string {
	return func(col int, cell string) string {
		switch col {
		case categoryCol:
			return styles.Category(cell)
		case amountCol:
			return styles.Amount(cell)
		}
		return cell
	}
}

func section(w io.Writer, title string, t *output.Table) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", headingStyle.Render(title)); err != nil {
		return err
	}
	return t.Render(w)
}
