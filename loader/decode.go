package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
)

// dateLayouts are tried in order when parsing a transaction date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseError reports a record that could not be decoded.
type ParseError struct {
	File string
	// Line is the 1-based CSV line, or zero for JSON records.
	Line int
	// Record is the 0-based index of the JSON record, or -1 when unknown.
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	case e.Record >= 0:
		return fmt.Sprintf("%s: record %d: %v", e.File, e.Record, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// transactionRecord is the on-disk shape of a transaction. Dates are kept
// as strings so plain dates can be accepted.
type transactionRecord struct {
	ID          json.RawMessage `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

type datasetDocument struct {
	Transactions []transactionRecord  `json:"transactions"`
	Budgets      []finance.Budget     `json:"budgets"`
	Investments  []finance.Investment `json:"investments"`
	Debts        []finance.Debt       `json:"debts"`
	TotalBalance decimal.Decimal      `json:"total_balance"`
}

type balanceDocument struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{File: path, Record: -1, Err: err}
	}
	return nil
}

func (l *Loader) readDataset(path string) (*finance.Dataset, error) {
	var doc datasetDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}

	txs, err := l.convertTransactions(path, doc.Transactions)
	if err != nil {
		return nil, err
	}

	return &finance.Dataset{
		Transactions: txs,
		Budgets:      doc.Budgets,
		Investments:  doc.Investments,
		Debts:        doc.Debts,
		TotalBalance: doc.TotalBalance,
	}, nil
}

func (l *Loader) readTransactionsJSON(path string) ([]finance.Transaction, error) {
	var records []transactionRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return l.convertTransactions(path, records)
}

func (l *Loader) convertTransactions(path string, records []transactionRecord) ([]finance.Transaction, error) {
	txs := make([]finance.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := l.transaction(idString(rec.ID), rec.Type, rec.Category, rec.Amount, rec.Date, rec.Description)
		if err != nil {
			return nil, &ParseError{File: path, Record: i, Err: err}
		}
		if tx.ID == "" {
			tx.ID = fmt.Sprintf("%d", i+1)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (l *Loader) transaction(id, typ, category string, amount decimal.Decimal, date, description string) (finance.Transaction, error) {
	t := finance.TransactionType(strings.ToLower(strings.TrimSpace(typ)))
	if !t.Valid() {
		return finance.Transaction{}, fmt.Errorf("unknown transaction type %q (expected income, expense or transfer)", typ)
	}

	when, err := l.parseDate(date)
	if err != nil {
		return finance.Transaction{}, err
	}

	return finance.Transaction{
		ID:          id,
		Type:        t,
		Category:    strings.TrimSpace(category),
		Amount:      amount,
		Date:        when,
		Description: description,
	}, nil
}

func (l *Loader) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, l.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// idString accepts numeric and string ids.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
