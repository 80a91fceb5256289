package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/config"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet/gsheets"
	"github.com/mmynk/ourfinance/internal/storage/sheetstore"
	"github.com/mmynk/ourfinance/internal/storage/sqlite"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		StoreBackend:          backend,
		SharedAdjustmentOwner: "A",
		LedgerTimezone:        "UTC",
		TokenTTL:              time.Hour,
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(config.BackendSQLite)
		cfg.DBPath = filepath.Join(t.TempDir(), "nested", "ledger.db")
		a, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer a.Close()
		assert.IsType(t, &sqlite.SQLiteStore{}, a.Store)

		acc, err := a.Ledger.Accounts.CreateAccount(ctx, "Wallet", "Cash", models.OwnerA, decimal.NewFromInt(5))
		require.NoError(t, err)
		got, err := a.Ledger.Accounts.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(5)))
	})

	t.Run("memory", func(t *testing.T) {
		a, err := Open(ctx, testConfig(config.BackendMemory))
		require.NoError(t, err)
		defer a.Close()
		assert.IsType(t, &sheetstore.Store{}, a.Store)

		nameA, nameB, err := a.Ledger.Settings.DisplayNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultUserAName, nameA)
		assert.Equal(t, models.DefaultUserBName, nameB)
	})

	t.Run("sheets without credentials", func(t *testing.T) {
		_, err := Open(ctx, testConfig(config.BackendSheets))
		assert.ErrorIs(t, err, gsheets.ErrMissingCredentials)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(ctx, testConfig("csv"))
		assert.Error(t, err)
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := testConfig(config.BackendMemory)
		cfg.LedgerTimezone = "Mars/Olympus"
		_, err := Open(ctx, cfg)
		assert.Error(t, err)
	})
}

func TestAuth(t *testing.T) {
	a := &App{Config: testConfig(config.BackendMemory)}
	authenticator, jwtManager := a.Auth()
	assert.Nil(t, authenticator)
	assert.Nil(t, jwtManager)

	a.Config.JWTSecret = "secret"
	authenticator, jwtManager = a.Auth()
	assert.NotNil(t, authenticator)
	require.NotNil(t, jwtManager)

	token, _, err := jwtManager.Generate(models.OwnerB)
	require.NoError(t, err)
	claims, err := jwtManager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.OwnerB, claims.Owner)
}
