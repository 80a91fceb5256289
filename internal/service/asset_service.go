package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/metrics"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// AssetService maintains the one cumulative card per (owner, metal).
type AssetService struct {
	store storage.Store
	now   func() time.Time

	// mu serializes card read-modify-write.
	mu sync.Mutex
}

// NewAssetService creates a new AssetService.
func NewAssetService(store storage.Store) *AssetService {
	return &AssetService{store: store, now: time.Now}
}

// ListAssets returns all cards in storage order.
func (s *AssetService) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		slog.Error("ListAssets failed", "error", err)
		return nil, err
	}
	return assets, nil
}

// FindCard returns the card of (owner, metal), or nil if there is none yet.
func (s *AssetService) FindCard(ctx context.Context, owner models.Owner, metal models.MetalType) (*models.Asset, error) {
	assets, err := s.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FindCard(assets, owner, metal), nil
}

// AddAsset records a purchase: 3% of totalCashPaid is tax, the rest is invested.
func (s *AssetService) AddAsset(ctx context.Context, owner models.Owner, metal models.MetalType, totalCashPaid, grams decimal.Decimal) (*models.Asset, error) {
	if err := validateHolding(owner, metal, totalCashPaid, grams); err != nil {
		return nil, err
	}
	return s.accumulate(ctx, owner, metal, ledger.NewPurchase(totalCashPaid, grams))
}

// AddExistingAsset records metal held before tracking began. No tax applies.
func (s *AssetService) AddExistingAsset(ctx context.Context, owner models.Owner, metal models.MetalType, investedValue, grams decimal.Decimal) (*models.Asset, error) {
	if err := validateHolding(owner, metal, investedValue, grams); err != nil {
		return nil, err
	}
	return s.accumulate(ctx, owner, metal, ledger.ExistingHolding(investedValue, grams))
}

func (s *AssetService) accumulate(ctx context.Context, owner models.Owner, metal models.MetalType, h ledger.Holding) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.FindCard(ctx, owner, metal)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if card != nil {
		h.AddTo(card, now)
		if err := s.store.UpdateAsset(ctx, card); err != nil {
			slog.Error("Update asset card failed", "asset_id", card.ID, "error", err)
			return nil, fmt.Errorf("failed to update %s card: %w", metal, err)
		}
		metrics.RecordAssetPurchase(string(metal), true)
		slog.Info("Asset card updated", "asset_id", card.ID, "owner", owner, "metal", metal, "grams", card.Grams)
		return card, nil
	}

	card = h.NewCard(owner, metal, now)
	card.ID = uuid.New().String()
	if err := s.store.CreateAsset(ctx, card); err != nil {
		slog.Error("Create asset card failed", "owner", owner, "metal", metal, "error", err)
		return nil, fmt.Errorf("failed to create %s card: %w", metal, err)
	}
	metrics.RecordAssetPurchase(string(metal), false)
	slog.Info("Asset card created", "asset_id", card.ID, "owner", owner, "metal", metal, "grams", card.Grams)
	return card, nil
}

func validateHolding(owner models.Owner, metal models.MetalType, amount, grams decimal.Decimal) error {
	if !owner.IsUser() {
		return invalidf("invalid owner %q: must be A or B", owner)
	}
	if _, err := models.ParseMetalType(string(metal)); err != nil {
		return invalidf("%v", err)
	}
	if amount.IsNegative() || grams.IsNegative() {
		return invalidf("amount and grams must not be negative")
	}
	if amount.IsZero() && grams.IsZero() {
		return invalidf("amount or grams is required")
	}
	return nil
}
