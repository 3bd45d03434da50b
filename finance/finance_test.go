package finance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestInvestmentValue(t *testing.T) {
	current := decimal.NewFromInt(12)

	tests := []struct {
		name string
		inv  Investment
		want string
	}{
		{
			name: "current value wins",
			inv:  Investment{PurchasePrice: decimal.NewFromInt(10), CurrentValue: &current, Quantity: decimal.NewFromInt(3)},
			want: "36",
		},
		{
			name: "falls back to purchase price",
			inv:  Investment{PurchasePrice: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)},
			want: "30",
		},
		{
			name: "missing quantity is zero",
			inv:  Investment{PurchasePrice: decimal.NewFromInt(10)},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.Value().String())
		})
	}
}

func TestDatasetTotals(t *testing.T) {
	ds := Dataset{
		Investments: []Investment{
			{PurchasePrice: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(2)},
			{PurchasePrice: decimal.RequireFromString("0.5"), Quantity: decimal.NewFromInt(10)},
		},
		Debts: []Debt{
			{CurrentBalance: decimal.NewFromInt(1500)},
			{CurrentBalance: decimal.RequireFromString("99.99")},
		},
	}

	assert.Equal(t, "205", ds.TotalInvestments().String())
	assert.Equal(t, "1599.99", ds.TotalDebt().String())
}

func TestDatasetEmptyTotals(t *testing.T) {
	var ds Dataset
	assert.True(t, ds.TotalInvestments().IsZero())
	assert.True(t, ds.TotalDebt().IsZero())
}

func TestDatasetUnmarshal(t *testing.T) {
	raw := `{
		"transactions": [
			{"id": "t1", "type": "expense", "category": "", "amount": "12.50", "date": "2024-01-10T00:00:00Z", "description": "Lunch"},
			{"id": "t2", "type": "income", "category": "salary", "amount": 1000, "date": "2024-01-05T00:00:00Z"}
		],
		"budgets": [
			{"category": "food_dining", "limit": 150},
			{"category": "housing", "amount": "900"}
		],
		"total_balance": 5000
	}`

	var ds Dataset
	assert.NoError(t, json.Unmarshal([]byte(raw), &ds))
	ds.Normalize()

	assert.Equal(t, 2, len(ds.Transactions))
	assert.Equal(t, DefaultCategory, ds.Transactions[0].Category)
	assert.Equal(t, "12.5", ds.Transactions[0].Amount.String())
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ds.Transactions[1].Date)

	assert.NotZero(t, ds.Budgets[0].Limit)
	assert.Zero(t, ds.Budgets[0].Amount)
	assert.Zero(t, ds.Budgets[1].Limit)
	assert.Equal(t, "900", ds.Budgets[1].Amount.String())
	assert.Equal(t, "5000", ds.TotalBalance.String())
}

func TestTransactionType(t *testing.T) {
	assert.True(t, Income.Valid())
	assert.True(t, Transfer.Valid())
	assert.False(t, TransactionType("refund").Valid())
}
