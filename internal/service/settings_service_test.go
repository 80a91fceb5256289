package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
	"github.com/mmynk/ourfinance/internal/storage"
	"github.com/mmynk/ourfinance/internal/storage/sheetstore"
)

func TestUpdateDisplayName(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *testServices) {
		ctx := context.Background()

		nameA, nameB, err := s.settings.DisplayNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, "User A", nameA)
		assert.Equal(t, "User B", nameB)

		require.NoError(t, s.settings.UpdateDisplayName(ctx, models.SettingUserAName, " Asha "))
		nameA, _, err = s.settings.DisplayNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Asha", nameA)

		assert.ErrorIs(t, s.settings.UpdateDisplayName(ctx, "currency", "EUR"), ErrInvalidArgument)
		assert.ErrorIs(t, s.settings.UpdateDisplayName(ctx, models.SettingUserBName, ""), ErrInvalidArgument)
	})
}

func TestUpdateDisplayNameMissingKey(t *testing.T) {
	ctx := context.Background()
	mem := sheet.NewMemory(sheetstore.Settings)
	require.NoError(t, mem.Append(ctx, sheetstore.Settings, sheetstore.SettingColumns))
	s := NewSettingsService(sheetstore.New(mem))

	err := s.UpdateDisplayName(ctx, models.SettingUserBName, "Ravi")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Len(t, mem.Rows(sheetstore.Settings), 1, "the key is not created")

	nameA, nameB, err := s.DisplayNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserAName, nameA)
	assert.Equal(t, models.DefaultUserBName, nameB)
}
