package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
)

func TestListDebts(t *testing.T) {
	txns := []*models.Transaction{
		{ID: "loan", Kind: models.KindIncome, Amount: d("1000"), Category: models.CategoryBorrowed, Owner: models.OwnerA},
		{ID: "r1", Kind: models.KindExpense, Amount: d("400"), Category: models.CategoryDebtRepayment, DebtID: "loan"},
		{ID: "r2", Kind: models.KindExpense, Amount: d("600"), Category: models.CategoryDebtRepayment, DebtID: "loan"},
		{ID: "flagged", Kind: models.KindIncome, Amount: d("250"), Category: "Family", IsDebt: true, Owner: models.OwnerB, Description: "From mom"},
		{ID: "r3", Kind: models.KindExpense, Amount: d("50"), Category: models.CategoryDebtRepayment, DebtID: "flagged"},
		{ID: "dangling", Kind: models.KindExpense, Amount: d("99"), Category: models.CategoryDebtRepayment, DebtID: "missing"},
		{ID: "salary", Kind: models.KindIncome, Amount: d("5000"), Category: "Salary"},
		{ID: "not-a-debt", Kind: models.KindExpense, Amount: d("10"), Category: models.CategoryBorrowed},
	}

	debts := ListDebts(txns)
	require.Len(t, debts, 2)

	loan := debts[0]
	assert.Equal(t, "loan", loan.ID)
	assert.Equal(t, "Borrowed money", loan.Description)
	assert.True(t, d("1000").Equal(loan.PaidAmount))
	assert.True(t, loan.RemainingAmount.IsZero())
	assert.True(t, loan.IsCleared)

	flagged := debts[1]
	assert.Equal(t, "From mom", flagged.Description)
	assert.Equal(t, models.OwnerB, flagged.Owner)
	assert.True(t, d("200").Equal(flagged.RemainingAmount))
	assert.False(t, flagged.IsCleared)

	pending := PendingDebts(debts)
	require.Len(t, pending, 1)
	assert.Equal(t, "flagged", pending[0].ID)
	assert.True(t, d("200").Equal(TotalRemaining(pending)))
}

func TestListDebtsOverpayment(t *testing.T) {
	txns := []*models.Transaction{
		{ID: "loan", Kind: models.KindIncome, Amount: d("100"), IsDebt: true},
		{ID: "r1", Kind: models.KindExpense, Amount: d("150"), Category: models.CategoryDebtRepayment, DebtID: "loan"},
	}

	debts := ListDebts(txns)
	require.Len(t, debts, 1)
	assert.True(t, d("-50").Equal(debts[0].RemainingAmount))
	assert.True(t, debts[0].IsCleared)
	assert.Empty(t, PendingDebts(debts))
}

func TestListDebtsEmpty(t *testing.T) {
	assert.Empty(t, ListDebts(nil))
}
