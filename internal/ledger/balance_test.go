package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBalanceChanges(t *testing.T) {
	tests := []struct {
		name string
		txn  models.Transaction
		want map[string]string
	}{
		{
			name: "income credits the account",
			txn:  models.Transaction{Kind: models.KindIncome, Amount: d("500"), AccountID: "wallet"},
			want: map[string]string{"wallet": "500"},
		},
		{
			name: "expense debits the account",
			txn:  models.Transaction{Kind: models.KindExpense, Amount: d("200"), AccountID: "wallet"},
			want: map[string]string{"wallet": "-200"},
		},
		{
			name: "transfer moves between two accounts",
			txn:  models.Transaction{Kind: models.KindTransfer, Amount: d("75.5"), AccountID: "bank", ToAccountID: "wallet"},
			want: map[string]string{"bank": "-75.5", "wallet": "75.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := BalanceChanges(&tt.txn)
			require.NoError(t, err)
			require.Len(t, changes, len(tt.want))

			sum := decimal.Zero
			for _, c := range changes {
				assert.False(t, c.Set)
				assert.True(t, d(tt.want[c.AccountID]).Equal(c.Amount), "account %s: got %s", c.AccountID, c.Amount)
				sum = sum.Add(c.Amount)
			}
			if tt.txn.Kind == models.KindTransfer {
				assert.True(t, sum.IsZero(), "transfer must conserve the total")
			}
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := BalanceChanges(&models.Transaction{Kind: "refund", Amount: d("1")})
		assert.Error(t, err)
	})
}

func TestIncomeThenExpenseIsNetZero(t *testing.T) {
	for _, amount := range []string{"0.01", "1", "999.99", "123456.789"} {
		balance := d("42")
		for _, kind := range []models.TransactionKind{models.KindIncome, models.KindExpense} {
			changes, err := BalanceChanges(&models.Transaction{Kind: kind, Amount: d(amount), AccountID: "x"})
			require.NoError(t, err)
			balance = changes[0].Apply(balance)
		}
		assert.True(t, d("42").Equal(balance), "amount %s left balance at %s", amount, balance)
	}
}

func TestCorrection(t *testing.T) {
	t.Run("increase is income", func(t *testing.T) {
		acc := &models.Account{ID: "acc", CurrentBalance: d("100"), Owner: models.OwnerB}
		txn, change := Correction(acc, d("150"), models.OwnerA)
		require.NotNil(t, txn)
		assert.Equal(t, models.KindIncome, txn.Kind)
		assert.True(t, d("50").Equal(txn.Amount))
		assert.Equal(t, models.CategoryAdjustment, txn.Category)
		assert.Equal(t, "Balance Correction", txn.Description)
		assert.Equal(t, models.OwnerB, txn.Owner)
		assert.True(t, change.Set)
		assert.True(t, d("150").Equal(change.Apply(acc.CurrentBalance)))
	})

	t.Run("decrease is expense", func(t *testing.T) {
		acc := &models.Account{ID: "acc", CurrentBalance: d("100"), Owner: models.OwnerA}
		txn, _ := Correction(acc, d("40"), models.OwnerA)
		require.NotNil(t, txn)
		assert.Equal(t, models.KindExpense, txn.Kind)
		assert.True(t, d("60").Equal(txn.Amount))
	})

	t.Run("shared account uses the configured owner", func(t *testing.T) {
		acc := &models.Account{ID: "acc", CurrentBalance: d("0"), Owner: models.OwnerShared}
		txn, _ := Correction(acc, d("10"), models.OwnerB)
		require.NotNil(t, txn)
		assert.Equal(t, models.OwnerB, txn.Owner)
	})

	t.Run("no change", func(t *testing.T) {
		acc := &models.Account{ID: "acc", CurrentBalance: d("10.50"), Owner: models.OwnerA}
		txn, change := Correction(acc, d("10.5"), models.OwnerA)
		assert.Nil(t, txn)
		assert.Nil(t, change)
	})
}
