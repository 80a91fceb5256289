package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
)

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 12, 0, 0, 0, time.UTC)
}

func TestSortByDateDesc(t *testing.T) {
	txns := []*models.Transaction{
		{ID: "old", Date: day(2024, 1, 1)},
		{ID: "new", Date: day(2024, 3, 1)},
		{ID: "tie-1", Date: day(2024, 2, 1)},
		{ID: "tie-2", Date: day(2024, 2, 1)},
	}
	SortByDateDesc(txns)

	var ids []string
	for _, tx := range txns {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"new", "tie-1", "tie-2", "old"}, ids)
}

func TestMonthlyReport(t *testing.T) {
	txns := []*models.Transaction{
		{Date: day(2025, 1, 31), Kind: models.KindIncome, Amount: d("100"), Owner: models.OwnerA},
		{Date: day(2025, 2, 1), Kind: models.KindIncome, Amount: d("5000"), Owner: models.OwnerA},
		{Date: day(2025, 2, 10), Kind: models.KindExpense, Amount: d("1200"), Owner: models.OwnerA},
		{Date: day(2025, 2, 14), Kind: models.KindIncome, Amount: d("3000"), Owner: models.OwnerB},
		{Date: day(2025, 2, 20), Kind: models.KindTransfer, Amount: d("700"), Owner: models.OwnerB},
		{Date: time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), Kind: models.KindExpense, Amount: d("300"), Owner: models.OwnerB},
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Kind: models.KindExpense, Amount: d("1"), Owner: models.OwnerB},
	}

	r := MonthlyReport(txns, time.February, 2025, time.UTC, "Asha", "Ravi")

	assert.Equal(t, "February 2025", r.Month)
	assert.Equal(t, "Asha", r.UserA.Name)
	assert.Equal(t, "Ravi", r.UserB.Name)

	assert.True(t, d("5000").Equal(r.UserA.Income))
	assert.True(t, d("1200").Equal(r.UserA.Expense))
	assert.True(t, d("3800").Equal(r.UserA.Savings))
	assert.Len(t, r.UserA.Transactions, 2)

	assert.True(t, d("3000").Equal(r.UserB.Income))
	assert.True(t, d("300").Equal(r.UserB.Expense))
	assert.Len(t, r.UserB.Transactions, 3)

	assert.True(t, d("8000").Equal(r.Combined.Income))
	assert.True(t, d("1500").Equal(r.Combined.Expense))
	assert.True(t, d("6500").Equal(r.Combined.Savings))
	assert.Len(t, r.Combined.Transactions, 5)
}

func TestMonthlyReportTimeZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 2025-03-31 20:00 UTC is already April 1st in IST.
	txns := []*models.Transaction{
		{Date: time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC), Kind: models.KindIncome, Amount: d("10"), Owner: models.OwnerA},
	}

	assert.Empty(t, MonthlyReport(txns, time.March, 2025, ist, "", "").Combined.Transactions)
	assert.Len(t, MonthlyReport(txns, time.April, 2025, ist, "", "").Combined.Transactions, 1)
}

func TestDashboard(t *testing.T) {
	accounts := []*models.Account{
		{ID: "a", CurrentBalance: d("1000"), Owner: models.OwnerA, IsActive: true},
		{ID: "b", CurrentBalance: d("2000"), Owner: models.OwnerB, IsActive: true},
		{ID: "s", CurrentBalance: d("500"), Owner: models.OwnerShared, IsActive: true},
		{ID: "closed", CurrentBalance: d("9999"), Owner: models.OwnerA, IsActive: false},
	}
	assets := []*models.Asset{
		{Owner: models.OwnerA, MetalType: models.MetalGold, InvestedValue: d("1500")},
		{Owner: models.OwnerB, MetalType: models.MetalSilver, InvestedValue: d("100")},
	}
	txns := []*models.Transaction{
		{Date: day(2025, 5, 1), Kind: models.KindIncome, Amount: d("1000"), Owner: models.OwnerA, Category: "Salary"},
		{Date: day(2025, 5, 2), Kind: models.KindExpense, Amount: d("300"), Owner: models.OwnerA, Category: "Food"},
		{Date: day(2025, 5, 3), Kind: models.KindExpense, Amount: d("100"), Owner: models.OwnerA, Category: "Travel"},
		{Date: day(2025, 5, 4), Kind: models.KindExpense, Amount: d("100"), Owner: models.OwnerA, Category: "Food"},
		{Date: day(2025, 5, 4), Kind: models.KindExpense, Amount: d("50"), Owner: models.OwnerB, Category: "Food"},
		{Date: day(2025, 4, 1), Kind: models.KindExpense, Amount: d("800"), Owner: models.OwnerA, Category: "Rent"},
	}

	t.Run("user view includes shared accounts", func(t *testing.T) {
		s := Dashboard(models.ViewA, day(2025, 5, 1).Add(-time.Hour), accounts, assets, txns)
		assert.True(t, d("1500").Equal(s.TotalCash), "cash %s", s.TotalCash)
		assert.True(t, d("1500").Equal(s.TotalInvested))
		assert.True(t, d("3000").Equal(s.NetWorth))
		assert.Equal(t, 50, s.LiquidPercent)
		assert.Equal(t, 50, s.InvestedPercent)
		assert.True(t, d("1000").Equal(s.Income))
		assert.True(t, d("500").Equal(s.Expense))
		assert.Equal(t, 50, s.SavingsRate)

		require.Len(t, s.TopCategories, 2)
		assert.Equal(t, "Food", s.TopCategories[0].Category)
		assert.True(t, d("400").Equal(s.TopCategories[0].Amount))
		assert.Equal(t, 80, s.TopCategories[0].Percent)
		assert.Equal(t, "Travel", s.TopCategories[1].Category)
	})

	t.Run("combined all time", func(t *testing.T) {
		s := Dashboard(models.ViewCombined, time.Time{}, accounts, assets, txns)
		assert.True(t, d("3500").Equal(s.TotalCash))
		assert.True(t, d("1600").Equal(s.TotalInvested))
		assert.True(t, d("1350").Equal(s.Expense))
		assert.Equal(t, "Rent", s.TopCategories[0].Category)
	})

	t.Run("empty", func(t *testing.T) {
		s := Dashboard(models.ViewB, time.Time{}, nil, nil, nil)
		assert.True(t, s.NetWorth.IsZero())
		assert.Equal(t, 0, s.LiquidPercent)
		assert.Equal(t, 100, s.InvestedPercent)
		assert.Equal(t, 0, s.SavingsRate)
		assert.Empty(t, s.TopCategories)
	})
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole string
		want        int
	}{
		{"1", "2", 50},
		{"1", "3", 33},
		{"2", "3", 67},
		{"5", "200", 3},
		{"-5", "200", -2},
		{"-7", "200", -3},
		{"10", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.part+"/"+tt.whole, func(t *testing.T) {
			assert.Equal(t, tt.want, percent(d(tt.part), d(tt.whole)))
		})
	}
}
