package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// interleavedStore runs between once, either right after the first account read or right
// before the first balance correction, to land a write in the middle of an operation.
type interleavedStore struct {
	storage.Store
	between func()
	once    sync.Once
}

func (s *interleavedStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	acc, err := s.Store.GetAccount(ctx, id)
	s.once.Do(s.between)
	return acc, err
}

func (s *interleavedStore) CorrectBalance(ctx context.Context, id string, adjust storage.Adjuster) (*models.Transaction, error) {
	s.once.Do(s.between)
	return s.Store.CorrectBalance(ctx, id, adjust)
}

func income(accountID string, amount string) TransactionInput {
	return TransactionInput{Kind: models.KindIncome, Amount: d(amount), Category: "Salary", AccountID: accountID, Owner: models.OwnerA}
}

// replayedBalance is the opening balance plus every recorded entry on the account.
func replayedBalance(t *testing.T, s *testServices, id string, opening decimal.Decimal) decimal.Decimal {
	t.Helper()
	txns, err := s.store.ListTransactions(context.Background())
	require.NoError(t, err)

	balance := opening
	for _, txn := range txns {
		switch {
		case txn.Kind == models.KindIncome && txn.AccountID == id:
			balance = balance.Add(txn.Amount)
		case txn.Kind == models.KindExpense && txn.AccountID == id:
			balance = balance.Sub(txn.Amount)
		case txn.Kind == models.KindTransfer && txn.AccountID == id:
			balance = balance.Sub(txn.Amount)
		case txn.Kind == models.KindTransfer && txn.ToAccountID == id:
			balance = balance.Add(txn.Amount)
		}
	}
	return balance
}

func TestInterleavedAccountWrites(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			inner := open(t)
			base := newTestServices(inner)

			t.Run("SetActive keeps a concurrent income", func(t *testing.T) {
				acc := mustAccount(t, base, "Wallet", models.OwnerA, "100")
				store := &interleavedStore{Store: inner, between: func() {
					_, err := base.transactions.AddTransaction(ctx, income(acc.ID, "500"))
					require.NoError(t, err)
				}}

				got, err := NewAccountService(store, models.OwnerA).SetActive(ctx, acc.ID, false)
				require.NoError(t, err)
				assert.False(t, got.IsActive)
				assert.Equal(t, "600", balanceOf(t, base, acc.ID).String())
			})

			t.Run("CorrectBalance reconciles against a concurrent income", func(t *testing.T) {
				acc := mustAccount(t, base, "Savings", models.OwnerA, "100")
				store := &interleavedStore{Store: inner, between: func() {
					_, err := base.transactions.AddTransaction(ctx, income(acc.ID, "500"))
					require.NoError(t, err)
				}}

				adj, err := NewAccountService(store, models.OwnerA).CorrectBalance(ctx, acc.ID, d("1000"))
				require.NoError(t, err)
				require.NotNil(t, adj)
				assert.Equal(t, models.KindIncome, adj.Kind)
				assert.Equal(t, "400", adj.Amount.String())
				assert.Equal(t, "1000", balanceOf(t, base, acc.ID).String())
				assert.Equal(t, "1000", replayedBalance(t, base, acc.ID, d("100")).String())
			})
		})
	}
}

func TestConcurrentAccountWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *testServices) {
		ctx := context.Background()
		acc := mustAccount(t, s, "Wallet", models.OwnerA, "100")

		var wg sync.WaitGroup
		for i := 0; i < 30; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var err error
				switch i % 3 {
				case 0:
					_, err = s.transactions.AddTransaction(ctx, income(acc.ID, "1"))
				case 1:
					_, err = s.accounts.SetActive(ctx, acc.ID, i%2 == 0)
				case 2:
					_, err = s.accounts.CorrectBalance(ctx, acc.ID, decimal.NewFromInt(int64(1000+i)))
				}
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.True(t, balanceOf(t, s, acc.ID).Equal(replayedBalance(t, s, acc.ID, d("100"))),
			"stored balance must equal the replayed ledger")
	})
}

func TestConcurrentAddAsset(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *testServices) {
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.assets.AddAsset(ctx, models.OwnerA, models.MetalGold, d("100"), d("0.1"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assets, err := s.assets.ListAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 1, "one card per owner and metal")
		assert.True(t, assets[0].Grams.Equal(d("1")))
		assert.True(t, assets[0].TotalCashPaid.Equal(d("1000")))
		assert.True(t, assets[0].TaxDeducted.Equal(d("30")))
		assert.True(t, assets[0].InvestedValue.Equal(d("970")))
	})
}
