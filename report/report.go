// Package report assembles period reports from a financial dataset.
//
// Three report shapes are supported, each carried by its own Data variant:
//   - TypeSummary: period totals, net worth and general recommendations
//   - TypeDetailed: the summary plus transactions, category breakdown and monthly trends
//   - TypeBudget: period totals plus per-budget performance and budget recommendations
//
// Assembly is deterministic: for identical inputs, period and anchor instant
// the encoded Data payload is byte-identical. Only GeneratedAt differs
// between calls made at different instants.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/finance"
)

// Type selects the shape of a report.
type Type string

const (
	TypeSummary  Type = "summary"
	TypeDetailed Type = "detailed"
	TypeBudget   Type = "budget"
)

// Types lists every report type in display order.
var Types = []Type{TypeSummary, TypeDetailed, TypeBudget}

// ParseType converts s to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeSummary, TypeDetailed, TypeBudget:
		return t, nil
	}
	return "", &UnknownTypeError{Value: s}
}

func (t Type) String() string {
	return string(t)
}

// Title returns the capitalized type name used in document headings.
func (t Type) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Data is the payload of a generated report. It is implemented only by
// *SummaryData, *DetailedData and *BudgetData.
type Data interface {
	// Kind returns the report type the payload belongs to.
	Kind() Type

	// Overview returns the period totals shared by every report type.
	Overview() *Totals

	isData()
}

// Totals are the period figures every report carries.
type Totals struct {
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetSavings       decimal.Decimal `json:"netSavings"`
	SavingsRate      decimal.Decimal `json:"savingsRate"`
	TransactionCount int             `json:"transactionCount"`
}

// SummaryData is the payload of a summary report.
type SummaryData struct {
	Totals
	TotalInvestments decimal.Decimal `json:"totalInvestments"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Recommendations  []string        `json:"recommendations"`
}

// DetailedData is the payload of a detailed report.
type DetailedData struct {
	SummaryData
	Transactions      []finance.Transaction     `json:"transactions"`
	TopExpenses       []finance.Transaction     `json:"topExpenses"`
	CategoryBreakdown []analytics.CategoryShare `json:"categoryBreakdown"`
	Trends            []analytics.MonthlyTrend  `json:"trends"`
}

// BudgetData is the payload of a budget report.
type BudgetData struct {
	Totals
	Budgets         []analytics.BudgetPerformance `json:"budgets"`
	BudgetSummary   analytics.BudgetSummary       `json:"budgetSummary"`
	Recommendations []string                      `json:"recommendations"`
}

var (
	_ Data = &SummaryData{}
	_ Data = &DetailedData{}
	_ Data = &BudgetData{}
)

func (d *SummaryData) Kind() Type        { return TypeSummary }
func (d *SummaryData) Overview() *Totals { return &d.Totals }
func (d *SummaryData) isData()           {}

func (d *DetailedData) Kind() Type        { return TypeDetailed }
func (d *DetailedData) Overview() *Totals { return &d.Totals }
func (d *DetailedData) isData()           {}

func (d *BudgetData) Kind() Type        { return TypeBudget }
func (d *BudgetData) Overview() *Totals { return &d.Totals }
func (d *BudgetData) isData()           {}

// GeneratedReport is an assembled report. It is not modified after assembly.
type GeneratedReport struct {
	Type        Type             `json:"type"`
	Period      analytics.Period `json:"period"`
	Range       analytics.Range  `json:"range"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Data        Data             `json:"data"`
}

// UnmarshalJSON decodes the data payload into the variant named by "type".
func (r *GeneratedReport) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type        Type             `json:"type"`
		Period      analytics.Period `json:"period"`
		Range       analytics.Range  `json:"range"`
		GeneratedAt time.Time        `json:"generatedAt"`
		Data        json.RawMessage  `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data Data
	switch raw.Type {
	case TypeSummary:
		data = &SummaryData{}
	case TypeDetailed:
		data = &DetailedData{}
	case TypeBudget:
		data = &BudgetData{}
	default:
		return &UnknownTypeError{Value: string(raw.Type)}
	}
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return fmt.Errorf("decode %s report data: %w", raw.Type, err)
		}
	}

	*r = GeneratedReport{
		Type:        raw.Type,
		Period:      raw.Period,
		Range:       raw.Range,
		GeneratedAt: raw.GeneratedAt,
		Data:        data,
	}
	return nil
}
