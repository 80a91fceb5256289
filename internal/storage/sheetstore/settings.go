package sheetstore

import (
	"context"
	"fmt"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
)

// valueColumn is the 0-based index of value in SettingColumns.
const valueColumn = 1

// ListSettings returns all settings in sheet order.
func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	records, err := s.table.ReadAll(ctx, Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	settings := make([]models.Setting, 0, len(records))
	for _, rec := range records {
		settings = append(settings, models.Setting{Key: rec.Get("key").String(), Value: rec.Get("value").String()})
	}
	return settings, nil
}

// UpdateSetting rewrites the value cell of an existing key.
func (s *Store) UpdateSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Settings)
	if err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	i := indexOf(records, "key", key)
	if i < 0 {
		return notFound("setting", key)
	}
	addr := sheet.RowRange(sheet.RecordRow(i), valueColumn, valueColumn).String()
	if err := s.table.UpdateRange(ctx, Settings, addr, []string{value}); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	return nil
}
