package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
	"github.com/mmynk/ourfinance/internal/storage"
	"github.com/mmynk/ourfinance/internal/storage/sheetstore"
	"github.com/mmynk/ourfinance/internal/storage/sqlite"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// backends returns a fresh store of every kind, keyed by name.
func backends(t *testing.T) map[string]func(t *testing.T) storage.Store {
	t.Helper()
	return map[string]func(t *testing.T) storage.Store{
		"sqlite": func(t *testing.T) storage.Store {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
		"sheet": func(t *testing.T) storage.Store {
			store := sheetstore.New(sheet.NewMemory(sheetstore.Accounts, sheetstore.Transactions, sheetstore.Assets, sheetstore.Settings))
			require.NoError(t, store.Init(context.Background()))
			return store
		},
	}
}

type testServices struct {
	store storage.Store
	*Ledger
	accounts     *AccountService
	transactions *TransactionService
	assets       *AssetService
	settings     *SettingsService
	analytics    *AnalyticsService
}

func newTestServices(store storage.Store) *testServices {
	l := NewLedger(store, models.OwnerA, time.UTC)
	return &testServices{
		store:        store,
		Ledger:       l,
		accounts:     l.Accounts,
		transactions: l.Transactions,
		assets:       l.Assets,
		settings:     l.Settings,
		analytics:    l.Analytics,
	}
}

// forEachBackend runs fn once per storage backend with fresh services.
func forEachBackend(t *testing.T, fn func(t *testing.T, s *testServices)) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestServices(open(t)))
		})
	}
}

func mustAccount(t *testing.T, s *testServices, name string, owner models.Owner, balance string) *models.Account {
	t.Helper()
	acc, err := s.accounts.CreateAccount(context.Background(), name, "Bank", owner, d(balance))
	require.NoError(t, err)
	return acc
}

func balanceOf(t *testing.T, s *testServices, id string) decimal.Decimal {
	t.Helper()
	acc, err := s.accounts.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc.CurrentBalance
}
