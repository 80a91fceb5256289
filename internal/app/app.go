// Package app opens the configured store and builds the services on it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/ourfinance/internal/auth"
	"github.com/mmynk/ourfinance/internal/config"
	"github.com/mmynk/ourfinance/internal/service"
	"github.com/mmynk/ourfinance/internal/sheet"
	"github.com/mmynk/ourfinance/internal/sheet/gsheets"
	"github.com/mmynk/ourfinance/internal/storage"
	"github.com/mmynk/ourfinance/internal/storage/sheetstore"
	"github.com/mmynk/ourfinance/internal/storage/sqlite"
)

// App is an opened store with the ledger services over it.
type App struct {
	Config *config.Config
	Store  storage.Store
	Ledger *service.Ledger
}

// Open opens the store selected by cfg.StoreBackend and creates the services.
// Sheet-backed stores get their headers written on first use.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		Config: cfg,
		Store:  store,
		Ledger: service.NewLedger(store, cfg.SharedOwner(), loc),
	}, nil
}

// OpenStore opens the configured storage backend.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		slog.Info("Using SQLite store", "path", cfg.DBPath)
		return store, nil

	case config.BackendSheets:
		client, err := gsheets.New(ctx, gsheets.Config{
			SpreadsheetID:     cfg.GoogleSheetID,
			Email:             cfg.GoogleServiceAccountEmail,
			PrivateKey:        cfg.GooglePrivateKey,
			RequestsPerSecond: cfg.SheetsRequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		slog.Info("Using Google Sheets store", "spreadsheet_id", cfg.GoogleSheetID)
		return initSheetStore(ctx, client)

	case config.BackendMemory:
		slog.Warn("Using in-memory store; data is lost on exit")
		return initSheetStore(ctx, sheet.NewMemory(sheetstore.Accounts, sheetstore.Transactions, sheetstore.Assets, sheetstore.Settings))
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func initSheetStore(ctx context.Context, table sheet.Table) (*sheetstore.Store, error) {
	store := sheetstore.New(table)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize sheet store: %w", err)
	}
	return store, nil
}

// Auth returns the password authenticator and token manager, or nils when
// authentication is disabled.
func (a *App) Auth() (auth.Authenticator, *auth.JWTManager) {
	if !a.Config.AuthEnabled() {
		return nil, nil
	}
	return auth.NewPasswordAuthenticator(a.Config.PasswordHashes()), auth.NewJWTManager(a.Config.JWTSecret, a.Config.TokenTTL)
}

// Close closes the store.
func (a *App) Close() error {
	return a.Store.Close()
}
