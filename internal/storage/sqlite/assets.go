package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/ourfinance/internal/models"
)

// ListAssets returns all asset cards in insertion order.
func (s *SQLiteStore) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, metal_type, grams, total_cash_paid, tax_deducted, invested_value, user_id
		 FROM assets ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		a := &models.Asset{}
		var date, metal, owner string
		if err := rows.Scan(&a.ID, &date, &metal, &a.Grams, &a.TotalCashPaid, &a.TaxDeducted, &a.InvestedValue, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		if a.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		a.MetalType = models.MetalType(metal)
		a.Owner = models.Owner(owner)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// CreateAsset persists a new card. A second card for the same owner and metal is rejected
// by the unique constraint.
func (s *SQLiteStore) CreateAsset(ctx context.Context, a *models.Asset) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (id, date, metal_type, grams, total_cash_paid, tax_deducted, invested_value, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, formatTime(a.Date), string(a.MetalType), a.Grams, a.TotalCashPaid, a.TaxDeducted, a.InvestedValue, string(a.Owner),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites the card with the same ID.
func (s *SQLiteStore) UpdateAsset(ctx context.Context, a *models.Asset) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE assets SET date = ?, metal_type = ?, grams = ?, total_cash_paid = ?, tax_deducted = ?,
		                   invested_value = ?, user_id = ?
		 WHERE id = ?`,
		formatTime(a.Date), string(a.MetalType), a.Grams, a.TotalCashPaid, a.TaxDeducted, a.InvestedValue, string(a.Owner), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return requireOneRow(res, "asset", a.ID)
}
