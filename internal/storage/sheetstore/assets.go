package sheetstore

import (
	"context"
	"fmt"

	"github.com/mmynk/ourfinance/internal/models"
)

// ListAssets returns all asset cards in sheet order.
func (s *Store) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	records, err := s.table.ReadAll(ctx, Assets)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	assets := make([]*models.Asset, 0, len(records))
	for _, rec := range records {
		a, err := decodeAsset(rec)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// CreateAsset appends a card. It refuses a second card for the same owner and metal.
func (s *Store) CreateAsset(ctx context.Context, a *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Assets)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	for _, rec := range records {
		if rec.Get("user_id").String() == string(a.Owner) && rec.Get("metal_type").String() == string(a.MetalType) {
			return fmt.Errorf("failed to insert asset: %s card of %s already exists", a.MetalType, a.Owner)
		}
	}
	if err := s.table.Append(ctx, Assets, assetRow(a)); err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset rewrites the row of the card with the same ID.
func (s *Store) UpdateAsset(ctx context.Context, a *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Assets)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	i := indexOf(records, "id", a.ID)
	if i < 0 {
		return notFound("asset", a.ID)
	}
	if err := s.updateRow(ctx, Assets, i, assetRow(a)); err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return nil
}
