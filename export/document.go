package export

import (
	"fmt"

	"github.com/robinvdvleuten/finreport/report"
)

// Document is the ordered, format-neutral content of a document export.
type Document struct {
	Title    string
	Subtitle []string
	Sections []Section
}

// Section is a titled block of lines.
type Section struct {
	Title    string
	Lines    []string
	Bulleted bool
}

// BuildDocument lays out r as: title, period and generation date, a
// Summary block, then Top Expenses (detailed) or Budget Performance
// (budget), and finally Recommendations when there are any.
func BuildDocument(r *report.GeneratedReport) (*Document, error) {
	if r == nil || r.Data == nil {
		return nil, ErrNoReport
	}

	doc := &Document{
		Title: fmt.Sprintf("%s Financial Report", r.Type.Title()),
		Subtitle: []string{
			fmt.Sprintf("Period: %s (%s to %s)", r.Period, r.Range.Start.Format(dateLayout), r.Range.End.Format(dateLayout)),
			fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04")),
		},
	}

	summary := Section{Title: "Summary"}
	for _, m := range summaryMetrics(r.Data) {
		value := dollars(m.Value)
		if m.Percent {
			value = percent1(m.Value)
		}
		summary.Lines = append(summary.Lines, fmt.Sprintf("%s: %s", m.Label, value))
	}
	doc.Sections = append(doc.Sections, summary)

	var recommendations []string
	switch d := r.Data.(type) {
	case *report.SummaryData:
		recommendations = d.Recommendations

	case *report.DetailedData:
		recommendations = d.Recommendations
		if len(d.TopExpenses) > 0 {
			top := Section{Title: "Top Expenses"}
			for i, tx := range d.TopExpenses {
				description := tx.Description
				if description == "" {
					description = tx.CategoryOrDefault()
				}
				top.Lines = append(top.Lines, fmt.Sprintf("%d. %s: %s", i+1, description, dollars(tx.Amount)))
			}
			doc.Sections = append(doc.Sections, top)
		}

	case *report.BudgetData:
		recommendations = d.Recommendations
		if len(d.Budgets) > 0 {
			perf := Section{Title: "Budget Performance"}
			for _, b := range d.Budgets {
				perf.Lines = append(perf.Lines, fmt.Sprintf("%s: %s / %s (%s)",
					b.Category, dollars(b.Spent), dollars(b.Limit), percent1(b.Percentage)))
			}
			doc.Sections = append(doc.Sections, perf)
		}
	}

	if len(recommendations) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title:    "Recommendations",
			Lines:    recommendations,
			Bulleted: true,
		})
	}

	return doc, nil
}
