// Package loader reads financial datasets from disk.
//
// Three sources are supported:
//   - a JSON dataset document with transactions, budgets, investments, debts
//     and total_balance
//   - a CSV file of transactions with a header row
//   - a directory holding one file per collection (transactions.json or
//     transactions.csv, budgets.json, investments.json, debts.json and
//     balance.json), each optional and read concurrently
//
// Dates may be RFC 3339 timestamps or plain YYYY-MM-DD dates; plain dates
// are interpreted in the loader's location. Amounts may be JSON numbers or
// strings.
//
// Example usage:
//
//	ldr := loader.New(loader.WithLocation(time.UTC))
//	result, err := ldr.Load(ctx, "data/")
//	fmt.Println(len(result.Dataset.Transactions), result.Files)
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/finreport/finance"
	"github.com/robinvdvleuten/finreport/telemetry"
)

// Collection file names looked up in a dataset directory.
const (
	TransactionsJSON = "transactions.json"
	TransactionsCSV  = "transactions.csv"
	BudgetsFile      = "budgets.json"
	InvestmentsFile  = "investments.json"
	DebtsFile        = "debts.json"
	BalanceFile      = "balance.json"
)

// Loader reads datasets. Configure it with functional options passed to New.
type Loader struct {
	location *time.Location
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocation sets the location plain dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		l.location = loc
	}
}

// New creates a Loader. Plain dates default to the local time zone.
func New(opts ...Option) *Loader {
	l := &Loader{location: time.Local}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result holds a loaded dataset and the files it was read from.
type Result struct {
	Dataset *finance.Dataset

	// Root is the absolute path that was loaded.
	Root string

	// Files lists the absolute paths of every file read, sorted.
	Files []string
}

// Load reads the dataset at path, which may be a JSON file, a CSV file or a
// directory. The returned dataset is normalized.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load %s", filepath.Base(path)))
	defer timer.End()

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var result *Result
	switch {
	case info.IsDir():
		result, err = l.loadDir(ctx, timer, root)
	case strings.EqualFold(filepath.Ext(root), ".csv"):
		var txs []finance.Transaction
		txs, err = l.readTransactionsCSV(root)
		result = &Result{Dataset: &finance.Dataset{Transactions: txs}, Files: []string{root}}
	default:
		var ds *finance.Dataset
		ds, err = l.readDataset(root)
		result = &Result{Dataset: ds, Files: []string{root}}
	}
	if err != nil {
		return nil, err
	}

	result.Root = root
	result.Dataset.Normalize()
	slices.Sort(result.Files)
	return result, nil
}

// loadDir reads every collection present in dir concurrently.
func (l *Loader) loadDir(ctx context.Context, timer telemetry.Timer, dir string) (*Result, error) {
	var (
		ds    = &finance.Dataset{}
		mu    sync.Mutex
		files []string
	)

	g, ctx := errgroup.WithContext(ctx)

	read := func(name string, fn func(path string) error) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return nil
			}

			t := timer.Child("loader.read " + name)
			defer t.End()

			if err := fn(path); err != nil {
				return err
			}
			mu.Lock()
			files = append(files, path)
			mu.Unlock()
			return nil
		}
	}

	transactionsFile := TransactionsJSON
	if _, err := os.Stat(filepath.Join(dir, TransactionsJSON)); errors.Is(err, os.ErrNotExist) {
		transactionsFile = TransactionsCSV
	}
	g.Go(read(transactionsFile, func(path string) (err error) {
		if transactionsFile == TransactionsCSV {
			ds.Transactions, err = l.readTransactionsCSV(path)
		} else {
			ds.Transactions, err = l.readTransactionsJSON(path)
		}
		return err
	}))
	g.Go(read(BudgetsFile, func(path string) error {
		return readJSON(path, &ds.Budgets)
	}))
	g.Go(read(InvestmentsFile, func(path string) error {
		return readJSON(path, &ds.Investments)
	}))
	g.Go(read(DebtsFile, func(path string) error {
		return readJSON(path, &ds.Debts)
	}))
	g.Go(read(BalanceFile, func(path string) error {
		var balance balanceDocument
		if err := readJSON(path, &balance); err != nil {
			return err
		}
		ds.TotalBalance = balance.TotalBalance
		return nil
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Dataset: ds, Files: files}, nil
}
