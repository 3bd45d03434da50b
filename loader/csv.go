package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
)

// transactionColumns are the recognized CSV header names. Matching ignores
// case and surrounding space; unknown columns are skipped.
var transactionColumns = []string{"id", "type", "category", "amount", "date", "description"}

var requiredColumns = []string{"type", "amount", "date"}

func (l *Loader) readTransactionsCSV(path string) ([]finance.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	txs, err := l.decodeTransactionsCSV(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
			return nil, pe
		}
		return nil, &ParseError{File: path, Record: -1, Err: err}
	}
	return txs, nil
}

func (l *Loader) decodeTransactionsCSV(r io.Reader) ([]finance.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []finance.Transaction{}, nil
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for _, known := range transactionColumns {
			if name == known {
				index[name] = i
			}
		}
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, &ParseError{Line: 1, Record: -1, Err: fmt.Errorf("missing %q column", name)}
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var txs []finance.Transaction
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		amount, err := decimal.NewFromString(strings.ReplaceAll(field(record, "amount"), ",", ""))
		if err != nil {
			return nil, &ParseError{Line: line, Record: -1, Err: fmt.Errorf("invalid amount %q", field(record, "amount"))}
		}

		tx, err := l.transaction(
			field(record, "id"),
			field(record, "type"),
			field(record, "category"),
			amount,
			field(record, "date"),
			field(record, "description"),
		)
		if err != nil {
			return nil, &ParseError{Line: line, Record: -1, Err: err}
		}
		if tx.ID == "" {
			tx.ID = fmt.Sprintf("%d", len(txs)+1)
		}
		txs = append(txs, tx)
	}

	if txs == nil {
		txs = []finance.Transaction{}
	}
	return txs, nil
}
