package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/robinvdvleuten/finreport/report"
)

// Sheet names written by XLSXExporter.
const (
	SheetSummary      = "Summary"
	SheetCategories   = "Categories"
	SheetTransactions = "Transactions"
	SheetBudgets      = "Budgets"
)

// XLSXExporter writes a workbook. The Summary sheet is always present;
// Categories appears when the report carries a category breakdown,
// Transactions only for detailed reports and Budgets only for budget reports.
type XLSXExporter struct{}

func (XLSXExporter) Format() Format { return FormatXLSX }

func (XLSXExporter) Export(w io.Writer, r *report.GeneratedReport) error {
	if r == nil || r.Data == nil {
		return ErrNoReport
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Pin document properties so that identical reports produce identical workbooks.
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    fmt.Sprintf("%s Financial Report", r.Type.Title()),
		Created:  r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Modified: r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Creator:  "finreport",
	}); err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	summaryRows := make([][]any, 0)
	for _, m := range summaryMetrics(r.Data) {
		summaryRows = append(summaryRows, []any{m.Label, number(m.Value)})
	}
	if err := writeSheet(f, SheetSummary, summaryHeader, summaryRows); err != nil {
		return err
	}

	switch d := r.Data.(type) {
	case *report.DetailedData:
		if len(d.CategoryBreakdown) > 0 {
			rows := make([][]any, 0, len(d.CategoryBreakdown))
			for _, share := range d.CategoryBreakdown {
				rows = append(rows, []any{share.Category, number(share.Amount), number(share.Percentage)})
			}
			if err := writeSheet(f, SheetCategories, categoryHeader, rows); err != nil {
				return err
			}
		}

		rows := make([][]any, 0, len(d.Transactions))
		for _, tx := range d.Transactions {
			rows = append(rows, []any{
				tx.Date.Format(dateLayout),
				tx.Description,
				tx.CategoryOrDefault(),
				string(tx.Type),
				number(tx.Amount),
			})
		}
		if err := writeSheet(f, SheetTransactions, transactionHeader, rows); err != nil {
			return err
		}

	case *report.BudgetData:
		rows := make([][]any, 0, len(d.Budgets))
		for _, b := range d.Budgets {
			rows = append(rows, []any{
				b.Category,
				number(b.Limit),
				number(b.Spent),
				number(b.Remaining),
				number(b.Percentage),
				string(b.Status),
			})
		}
		if err := writeSheet(f, SheetBudgets, budgetHeader, rows); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any) error {
	if idx, err := f.GetSheetIndex(name); err != nil {
		return err
	} else if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}

// number converts an amount to a spreadsheet number rounded to cents.
func number(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
