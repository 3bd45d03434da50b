// Dataset Generator
//
// This tool generates a large dataset directory for performance testing and
// profiling of report generation and exports.
//
// Usage:
//
//	go run main.go ./large
//	go run main.go ./large 500000  # Specify the number of transactions
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finreport/finance"
	"github.com/robinvdvleuten/finreport/loader"
)

const (
	defaultTransactions = 100_000
)

var (
	expenseCategories = []string{
		"food_dining", "housing", "transportation", "utilities",
		"healthcare", "entertainment", "shopping", "education",
		"insurance", "personal_care", "travel", "gifts",
	}

	incomeCategories = []string{"salary", "freelance", "dividends", "interest"}

	descriptions = map[string][]string{
		"food_dining":    {"Grocery shopping", "Restaurant dinner", "Coffee"},
		"housing":        {"Rent payment", "Home repair"},
		"transportation": {"Fuel purchase", "Transit pass", "Taxi"},
		"utilities":      {"Electricity bill", "Internet", "Water bill"},
		"salary":         {"Salary deposit"},
		"freelance":      {"Invoice payment"},
		"dividends":      {"Dividend payment"},
		"interest":       {"Savings interest"},
	}

	stocks = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "VTI", "VXUS"}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: generate_dataset <dir> [transactions]")
		os.Exit(2)
	}
	dir := os.Args[1]

	count := defaultTransactions
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			count = n
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dir, err)
		os.Exit(1)
	}

	files := map[string]any{
		loader.TransactionsJSON: generateTransactions(count),
		loader.BudgetsFile:      generateBudgets(),
		loader.InvestmentsFile:  generateInvestments(),
		loader.DebtsFile: []finance.Debt{
			{Name: "Mortgage", CurrentBalance: randAmount(100000, 300000)},
			{Name: "Credit card", CurrentBalance: randAmount(500, 5000)},
		},
		loader.BalanceFile: map[string]decimal.Decimal{"total_balance": randAmount(1000, 50000)},
	}

	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d transactions in %s\n", count, dir)
}

func generateTransactions(count int) []finance.Transaction {
	// Spread transactions over the last two years, ending today
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-2, 0, 0)
	span := int(end.Sub(start).Hours() / 24)

	txs := make([]finance.Transaction, 0, count)
	for i := 0; i < count; i++ {
		date := start.AddDate(0, 0, rand.Intn(span+1))

		var tx finance.Transaction
		switch rand.Intn(10) {
		case 0, 1: // 20% - Income
			category := incomeCategories[rand.Intn(len(incomeCategories))]
			tx = finance.Transaction{Type: finance.Income, Category: category, Amount: randAmount(100, 5000)}
		case 2: // 10% - Transfer
			tx = finance.Transaction{Type: finance.Transfer, Category: "savings", Amount: randAmount(50, 1000)}
		default: // 70% - Expense
			category := expenseCategories[rand.Intn(len(expenseCategories))]
			tx = finance.Transaction{Type: finance.Expense, Category: category, Amount: randAmount(5, 800)}
		}

		tx.ID = strconv.Itoa(i + 1)
		tx.Date = date
		tx.Description = describe(tx.Category)
		txs = append(txs, tx)
	}
	return txs
}

func generateBudgets() []finance.Budget {
	budgets := make([]finance.Budget, 0, len(expenseCategories))
	for i, category := range expenseCategories {
		limit := randAmount(100, 2000)
		b := finance.Budget{Category: category, Period: "monthly"}
		// Every third budget uses the legacy amount field
		if i%3 == 0 {
			b.Amount = &limit
		} else {
			b.Limit = &limit
		}
		budgets = append(budgets, b)
	}
	return budgets
}

func generateInvestments() []finance.Investment {
	investments := make([]finance.Investment, 0, len(stocks))
	for _, stock := range stocks {
		inv := finance.Investment{
			Name:          stock,
			PurchasePrice: randAmount(50, 500),
			Quantity:      decimal.NewFromInt(int64(rand.Intn(50) + 1)),
		}
		if rand.Intn(4) > 0 {
			current := inv.PurchasePrice.Mul(randAmount(0.5, 2))
			current = current.Round(2)
			inv.CurrentValue = &current
		}
		investments = append(investments, inv)
	}
	return investments
}

func describe(category string) string {
	options, ok := descriptions[category]
	if !ok {
		return ""
	}
	return options[rand.Intn(len(options))]
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Helper functions

func randAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + rand.Float64()*(max-min)).Round(2)
}
