package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/ourfinance/internal/models"
)

// ListSettings returns all settings in insertion order.
func (s *SQLiteStore) ListSettings(ctx context.Context) ([]models.Setting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var st models.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return settings, nil
}

// UpdateSetting changes the value of an existing key.
func (s *SQLiteStore) UpdateSetting(ctx context.Context, key, value string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE settings SET value = ? WHERE key = ?", value, key)
	if err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	return requireOneRow(res, "setting", key)
}
