package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/finreport/finance"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func utcLoader() *Loader {
	return New(WithLocation(time.UTC))
}

func TestLoadDatasetJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dataset.json", `{
  "transactions": [
    {"id": 1, "type": "income", "category": "salary", "amount": 1000, "date": "2024-01-05", "description": "Salary"},
    {"id": "b", "type": "Expense", "amount": "12.50", "date": "2024-01-06T10:30:00Z"}
  ],
  "budgets": [{"category": "food_dining", "limit": 150}, {"amount": "80"}],
  "investments": [{"purchase_price": 100, "current_value": 120, "quantity": 2}],
  "debts": [{"name": "card", "current_balance": "450.25"}],
  "total_balance": 5000
}`)

	result, err := utcLoader().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, path, result.Root)
	assert.Equal(t, []string{path}, result.Files)

	ds := result.Dataset
	assert.Equal(t, 2, len(ds.Transactions))
	assert.Equal(t, "1", ds.Transactions[0].ID)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ds.Transactions[0].Date)
	assert.Equal(t, "b", ds.Transactions[1].ID)
	assert.Equal(t, finance.Expense, ds.Transactions[1].Type)
	assert.Equal(t, finance.DefaultCategory, ds.Transactions[1].Category)
	assert.Equal(t, "12.5", ds.Transactions[1].Amount.String())

	assert.Equal(t, "150", ds.Budgets[0].Limit.String())
	assert.Equal(t, finance.DefaultCategory, ds.Budgets[1].Category)
	assert.Equal(t, "240", ds.TotalInvestments().String())
	assert.Equal(t, "450.25", ds.TotalDebt().String())
	assert.Equal(t, "5000", ds.TotalBalance.String())
}

func TestLoadDatasetJSONInvalidRecord(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dataset.json", `{"transactions": [
  {"type": "income", "amount": 1, "date": "2024-01-05"},
  {"type": "refund", "amount": 1, "date": "2024-01-05"}
]}`)

	_, err := utcLoader().Load(context.Background(), path)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Record)
	assert.Contains(t, err.Error(), `record 1: unknown transaction type "refund"`)
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dataset.json", `{"transactions": [`)

	_, err := utcLoader().Load(context.Background(), path)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.File)
}

func TestLoadTransactionsCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "transactions.csv", strings.Join([]string{
		"Date,Type,Amount,Category,Description,Notes",
		"2024-01-05,income,\"1,000.00\",salary,Salary,monthly",
		"2024-01-10,expense,200,food_dining,\"Groceries, weekly\",",
		"2024-01-12,transfer,50,,Savings move,",
	}, "\n")+"\n")

	result, err := utcLoader().Load(context.Background(), path)
	assert.NoError(t, err)

	txs := result.Dataset.Transactions
	assert.Equal(t, 3, len(txs))
	assert.Equal(t, finance.Transaction{
		ID:          "1",
		Type:        finance.Income,
		Category:    "salary",
		Amount:      txs[0].Amount,
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "Salary",
	}, txs[0])
	assert.Equal(t, "1000", txs[0].Amount.String())
	assert.Equal(t, "Groceries, weekly", txs[1].Description)
	assert.Equal(t, finance.Transfer, txs[2].Type)
	assert.Equal(t, finance.DefaultCategory, txs[2].Category)
	assert.Equal(t, "3", txs[2].ID)
}

func TestLoadTransactionsCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing column", "date,type\n2024-01-05,income\n", `transactions.csv:1: missing "amount" column`},
		{"bad amount", "date,type,amount\n2024-01-05,income,abc\n", `transactions.csv:2: invalid amount "abc"`},
		{"bad date", "date,type,amount\n2024-01-05,income,1\n05/01/2024,expense,2\n", `transactions.csv:3: invalid date "05/01/2024"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "transactions.csv", tt.content)
			_, err := utcLoader().Load(context.Background(), path)
			assert.Error(t, err)
			assert.True(t, strings.HasSuffix(err.Error(), tt.want), "got %q", err.Error())
		})
	}
}

func TestLoadEmptyCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "transactions.csv", "")
	result, err := utcLoader().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(result.Dataset.Transactions))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TransactionsJSON, `[{"id": "1", "type": "expense", "category": "housing", "amount": 850, "date": "2024-01-15"}]`)
	writeFile(t, dir, BudgetsFile, `[{"category": "housing", "limit": 1000}]`)
	writeFile(t, dir, DebtsFile, `[{"current_balance": 6000}]`)
	writeFile(t, dir, BalanceFile, `{"total_balance": "5000.00"}`)
	writeFile(t, dir, "notes.txt", "ignored")

	result, err := utcLoader().Load(context.Background(), dir)
	assert.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, BalanceFile),
		filepath.Join(dir, BudgetsFile),
		filepath.Join(dir, DebtsFile),
		filepath.Join(dir, TransactionsJSON),
	}, result.Files)

	ds := result.Dataset
	assert.Equal(t, 1, len(ds.Transactions))
	assert.Equal(t, 1, len(ds.Budgets))
	assert.Equal(t, 0, len(ds.Investments))
	assert.Equal(t, "6000", ds.TotalDebt().String())
	assert.Equal(t, "5000", ds.TotalBalance.String())
}

func TestLoadDirectoryPrefersJSONTransactions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TransactionsCSV, "date,type,amount\n2024-01-05,income,1\n2024-01-06,income,2\n")

	result, err := utcLoader().Load(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result.Dataset.Transactions))

	writeFile(t, dir, TransactionsJSON, `[]`)
	result, err = utcLoader().Load(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(result.Dataset.Transactions))
}

func TestLoadDirectoryReportsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, BudgetsFile, `{not json`)

	_, err := utcLoader().Load(context.Background(), dir)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, filepath.Join(dir, BudgetsFile), pe.File)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := utcLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, BudgetsFile, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := utcLoader().Load(ctx, dir)
	assert.IsError(t, err, context.Canceled)
}

func TestPlainDatesUseLocation(t *testing.T) {
	zone := time.FixedZone("EST", -5*3600)
	path := writeFile(t, t.TempDir(), "transactions.csv", "date,type,amount\n2024-01-05,income,1\n")

	result, err := New(WithLocation(zone)).Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 5, 0, 0, 0, time.UTC), result.Dataset.Transactions[0].Date.UTC())
}
