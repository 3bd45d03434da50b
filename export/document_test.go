package export

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/finreport/report"
)

func sectionTitles(doc *Document) []string {
	titles := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func TestBuildDocumentSummary(t *testing.T) {
	doc, err := BuildDocument(generate(t, report.TypeSummary))
	assert.NoError(t, err)

	assert.Equal(t, "Summary Financial Report", doc.Title)
	assert.Equal(t, []string{
		"Period: month (2024-01-01 to 2024-01-20)",
		"Generated: 2024-01-20 12:00",
	}, doc.Subtitle)
	assert.Equal(t, []string{"Summary", "Recommendations"}, sectionTitles(doc))
	assert.Equal(t, []string{
		"Total Balance: $5000.00",
		"Income: $1000.00",
		"Expenses: $1050.00",
		"Savings: -$50.00",
		"Savings Rate: -5.0%",
		"Net Worth: $0.00",
	}, doc.Sections[0].Lines)
	assert.True(t, doc.Sections[1].Bulleted)
	assert.Equal(t, 4, len(doc.Sections[1].Lines))
}

func TestBuildDocumentDetailed(t *testing.T) {
	doc, err := BuildDocument(generate(t, report.TypeDetailed))
	assert.NoError(t, err)

	assert.Equal(t, "Detailed Financial Report", doc.Title)
	assert.Equal(t, []string{"Summary", "Top Expenses", "Recommendations"}, sectionTitles(doc))
	assert.Equal(t, []string{
		"1. Rent: $850.00",
		"2. Groceries, weekly: $200.00",
	}, doc.Sections[1].Lines)
}

func TestBuildDocumentBudget(t *testing.T) {
	doc, err := BuildDocument(generate(t, report.TypeBudget))
	assert.NoError(t, err)

	assert.Equal(t, []string{"Summary", "Budget Performance", "Recommendations"}, sectionTitles(doc))
	assert.Equal(t, []string{
		"food_dining: $200.00 / $150.00 (133.3%)",
		"housing: $850.00 / $1000.00 (85.0%)",
	}, doc.Sections[1].Lines)
	assert.Equal(t, 5, len(doc.Sections[0].Lines), "budget reports carry no net worth")
}

func TestPDFExport(t *testing.T) {
	for _, typ := range report.Types {
		t.Run(string(typ), func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, PDFExporter{}.Export(&buf, generate(t, typ)))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}
