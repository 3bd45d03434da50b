package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/report"
)

func exportCSV(t *testing.T, typ report.Type) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, CSVExporter{}.Export(&buf, generate(t, typ)))
	return buf.String()
}

func TestCSVSummary(t *testing.T) {
	want := `Financial Report
Report Type,summary
Period,month
Generated,2024-01-20T12:00:00Z

Summary
Metric,Value
Total Balance,5000.00
Income,1000.00
Expenses,1050.00
Savings,-50.00
Savings Rate,-5.0%
Net Worth,0.00

Category Breakdown
Category,Amount,Percentage
`
	assert.Equal(t, want, exportCSV(t, report.TypeSummary))
}

func TestCSVDetailedSections(t *testing.T) {
	out := exportCSV(t, report.TypeDetailed)

	assert.Contains(t, out, "\nCategory Breakdown\nCategory,Amount,Percentage\nhousing,850.00,80.95%\nfood_dining,200.00,19.05%\n")
	assert.Contains(t, out, "\nTransactions\nDate,Description,Category,Type,Amount\n2024-01-05,Salary,salary,income,1000.00\n")
	assert.Contains(t, out, "2024-01-10,\"Groceries, weekly\",food_dining,expense,200.00\n")
	assert.NotContains(t, out, "Budget Performance")

	assert.True(t, strings.Index(out, "Summary") < strings.Index(out, "Category Breakdown"))
	assert.True(t, strings.Index(out, "Category Breakdown") < strings.Index(out, "Transactions"))
}

func TestCSVBudgetSections(t *testing.T) {
	out := exportCSV(t, report.TypeBudget)

	assert.Contains(t, out, "\nBudget Performance\nCategory,Budget Limit,Spent,Remaining,Percentage,Status\n"+
		"food_dining,150.00,200.00,-50.00,133.33%,over\n"+
		"housing,1000.00,850.00,150.00,85.00%,warning\n")
	assert.NotContains(t, out, "Transactions")
	assert.Contains(t, out, "\nCategory Breakdown\nCategory,Amount,Percentage\n\nBudget Performance\n")
	assert.NotContains(t, out, "Net Worth")
}

func TestCSVDetailedWithoutExpenses(t *testing.T) {
	g := report.New(report.WithClock(func() time.Time { return generatedAt }))
	ds := fixtureDataset()
	ds.Transactions = ds.Transactions[:1]
	r, err := g.Generate(context.Background(), report.TypeDetailed, analytics.Month, ds)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, CSVExporter{}.Export(&buf, r))
	assert.Contains(t, buf.String(), "\nCategory Breakdown\nCategory,Amount,Percentage\n\nTransactions\n")
}

var csvSectionTitles = map[string]bool{
	"Summary":            true,
	"Category Breakdown": true,
	"Transactions":       true,
	"Budget Performance": true,
}

func TestCSVColumnIntegrity(t *testing.T) {
	for _, typ := range report.Types {
		t.Run(string(typ), func(t *testing.T) {
			reader := csv.NewReader(strings.NewReader(exportCSV(t, typ)))
			reader.FieldsPerRecord = -1
			records, err := reader.ReadAll()
			assert.NoError(t, err)

			var header []string
			expectHeader := false
			sections := 0
			for _, record := range records {
				switch {
				case len(record) == 1 && csvSectionTitles[record[0]]:
					expectHeader = true
					sections++
				case expectHeader:
					header = record
					expectHeader = false
				case header != nil:
					assert.Equal(t, len(header), len(record), "row %v under header %v", record, header)
				}
			}
			assert.True(t, sections > 0)
		})
	}
}
