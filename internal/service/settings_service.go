package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// SettingsService reads and updates the key/value settings.
type SettingsService struct {
	store storage.Store
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// ListSettings returns all settings.
func (s *SettingsService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return s.store.ListSettings(ctx)
}

// UpdateDisplayName renames user A or B. The setting must already exist.
func (s *SettingsService) UpdateDisplayName(ctx context.Context, key, name string) error {
	if !models.IsDisplayNameKey(key) {
		return invalidf("unknown display name key %q", key)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidf("display name is required")
	}
	if err := s.store.UpdateSetting(ctx, key, name); err != nil {
		slog.Error("UpdateDisplayName failed", "key", key, "error", err)
		return err
	}
	slog.Info("Display name updated", "key", key, "name", name)
	return nil
}

// DisplayNames returns the names of A and B, with defaults for missing settings.
func (s *SettingsService) DisplayNames(ctx context.Context) (nameA, nameB string, err error) {
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return "", "", err
	}
	nameA, nameB = models.DefaultUserAName, models.DefaultUserBName
	for _, st := range settings {
		if st.Value == "" {
			continue
		}
		switch st.Key {
		case models.SettingUserAName:
			nameA = st.Value
		case models.SettingUserBName:
			nameB = st.Value
		}
	}
	return nameA, nameB, nil
}
