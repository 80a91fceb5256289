// Package sheetstore implements storage.Store on a sheet.Table laid out like the original
// spreadsheet: one collection per record type, header on row 1.
//
// Every read-compute-write runs under one mutex and resolves the target row by ID right
// before writing, so writers in this process cannot clobber each other. Writers in other
// processes can still race.
package sheetstore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
	"github.com/mmynk/ourfinance/internal/storage"
)

// Collection names.
const (
	Accounts     = "Accounts"
	Transactions = "Transactions"
	Assets       = "Assets"
	Settings     = "Settings"
)

// Column orders, which must match the sheet.
var (
	AccountColumns     = []string{"id", "name", "type", "current_balance", "user_id", "is_active"}
	TransactionColumns = []string{"id", "date", "type", "amount", "category", "account_id", "to_account_id", "user_id", "description", "tax_amount", "is_debt", "debt_id"}
	AssetColumns       = []string{"id", "date", "metal_type", "grams", "total_cash_paid", "tax_deducted", "invested_value", "user_id"}
	SettingColumns     = []string{"key", "value"}
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store is a storage.Store over a sheet.Table.
type Store struct {
	table sheet.Table
	mu    sync.Mutex
}

// New creates a Store. Call Init to create missing headers.
func New(table sheet.Table) *Store {
	return &Store{table: table}
}

// Init writes the header row of every empty collection. A fresh Settings collection also
// gets the two display-name keys with their defaults.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := []struct {
		name    string
		columns []string
	}{
		{Accounts, AccountColumns},
		{Transactions, TransactionColumns},
		{Assets, AssetColumns},
		{Settings, SettingColumns},
	}
	for _, c := range layout {
		header, err := s.table.Header(ctx, c.name)
		if err != nil {
			return fmt.Errorf("failed to read %s header: %w", c.name, err)
		}
		if len(header) > 0 {
			if !slices.Equal(header[:min(len(header), len(c.columns))], c.columns) {
				slog.Warn("Sheet header differs from expected columns", "collection", c.name, "header", header, "expected", c.columns)
			}
			continue
		}

		if err := s.table.Append(ctx, c.name, c.columns); err != nil {
			return fmt.Errorf("failed to write %s header: %w", c.name, err)
		}
		slog.Info("Sheet header written", "collection", c.name)

		if c.name == Settings {
			for _, st := range []models.Setting{
				{Key: models.SettingUserAName, Value: models.DefaultUserAName},
				{Key: models.SettingUserBName, Value: models.DefaultUserBName},
			} {
				if err := s.table.Append(ctx, Settings, []string{st.Key, st.Value}); err != nil {
					return fmt.Errorf("failed to seed setting %s: %w", st.Key, err)
				}
			}
		}
	}
	return nil
}

// Close is a no-op; the table owns no resources.
func (s *Store) Close() error {
	return nil
}

// indexOf returns the 0-based record index whose key column equals id, or -1.
func indexOf(records []sheet.Record, column, id string) int {
	for i, rec := range records {
		if rec.Get(column).String() == id {
			return i
		}
	}
	return -1
}

// updateRow overwrites a whole record row.
func (s *Store) updateRow(ctx context.Context, collection string, index int, row []string) error {
	addr := sheet.RowRange(sheet.RecordRow(index), 0, len(row)-1).String()
	return s.table.UpdateRange(ctx, collection, addr, row)
}

// writeCell overwrites one cell of a record row.
func (s *Store) writeCell(ctx context.Context, collection string, index, column int, value string) error {
	addr := sheet.RowRange(sheet.RecordRow(index), column, column).String()
	return s.table.UpdateRange(ctx, collection, addr, []string{value})
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
}
