package export

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/report"
)

// Section and column headers shared by the CSV and XLSX exporters.
var (
	summaryHeader     = []string{"Metric", "Value"}
	categoryHeader    = []string{"Category", "Amount", "Percentage"}
	transactionHeader = []string{"Date", "Description", "Category", "Type", "Amount"}
	budgetHeader      = []string{"Category", "Budget Limit", "Spent", "Remaining", "Percentage", "Status"}
)

const dateLayout = "2006-01-02"

// metric is one row of the summary block.
type metric struct {
	Label   string
	Value   decimal.Decimal
	Percent bool
}

// summaryMetrics returns the summary block rows for a report payload. Net
// worth is only part of summary and detailed reports.
func summaryMetrics(data report.Data) []metric {
	totals := data.Overview()
	metrics := []metric{
		{Label: "Total Balance", Value: totals.TotalBalance},
		{Label: "Income", Value: totals.TotalIncome},
		{Label: "Expenses", Value: totals.TotalExpenses},
		{Label: "Savings", Value: totals.NetSavings},
		{Label: "Savings Rate", Value: totals.SavingsRate, Percent: true},
	}

	switch d := data.(type) {
	case *report.SummaryData:
		metrics = append(metrics, metric{Label: "Net Worth", Value: d.NetWorth})
	case *report.DetailedData:
		metrics = append(metrics, metric{Label: "Net Worth", Value: d.NetWorth})
	}
	return metrics
}

func (m metric) text() string {
	if m.Percent {
		return percent1(m.Value)
	}
	return money(m.Value)
}

// money formats an amount with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// dollars formats an amount with a currency sign, keeping the sign in front.
func dollars(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func percent1(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func percent2(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
