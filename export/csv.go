package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/robinvdvleuten/finreport/report"
)

// CSVExporter writes a single CSV stream with labeled sections in fixed
// order: header, Summary, Category Breakdown, Transactions (detailed only)
// and Budget Performance (budget only). Category Breakdown always carries its
// header; only detailed reports have rows under it. Sections are separated
// by an empty line.
type CSVExporter struct{}

func (CSVExporter) Format() Format { return FormatCSV }

func (CSVExporter) Export(w io.Writer, r *report.GeneratedReport) error {
	if r == nil || r.Data == nil {
		return ErrNoReport
	}

	cw := csv.NewWriter(w)
	records := [][]string{
		{"Financial Report"},
		{"Report Type", string(r.Type)},
		{"Period", string(r.Period)},
		{"Generated", r.GeneratedAt.Format(time.RFC3339)},
	}

	records = appendSection(records, "Summary", summaryHeader, summaryRecords(r.Data))

	var categories [][]string
	if d, ok := r.Data.(*report.DetailedData); ok {
		for _, share := range d.CategoryBreakdown {
			categories = append(categories, []string{share.Category, money(share.Amount), percent2(share.Percentage)})
		}
	}
	records = appendSection(records, "Category Breakdown", categoryHeader, categories)

	if d, ok := r.Data.(*report.DetailedData); ok {
		rows := make([][]string, 0, len(d.Transactions))
		for _, tx := range d.Transactions {
			rows = append(rows, []string{
				tx.Date.Format(dateLayout),
				tx.Description,
				tx.CategoryOrDefault(),
				string(tx.Type),
				money(tx.Amount),
			})
		}
		records = appendSection(records, "Transactions", transactionHeader, rows)
	}

	if d, ok := r.Data.(*report.BudgetData); ok {
		rows := make([][]string, 0, len(d.Budgets))
		for _, b := range d.Budgets {
			rows = append(rows, []string{
				b.Category,
				money(b.Limit),
				money(b.Spent),
				money(b.Remaining),
				percent2(b.Percentage),
				string(b.Status),
			})
		}
		records = appendSection(records, "Budget Performance", budgetHeader, rows)
	}

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func summaryRecords(data report.Data) [][]string {
	metrics := summaryMetrics(data)
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Label, m.text()})
	}
	return rows
}

func appendSection(records [][]string, title string, header []string, rows [][]string) [][]string {
	records = append(records, []string{}, []string{title}, header)
	return append(records, rows...)
}
