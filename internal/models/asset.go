package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MetalType is the precious metal an asset card tracks.
type MetalType string

const (
	MetalGold   MetalType = "Gold"
	MetalSilver MetalType = "Silver"
)

// ParseMetalType parses "Gold" or "Silver".
func ParseMetalType(s string) (MetalType, error) {
	switch MetalType(s) {
	case MetalGold, MetalSilver:
		return MetalType(s), nil
	}
	return "", fmt.Errorf("invalid metal type %q: must be Gold or Silver", s)
}

// Asset is the single cumulative card of one metal for one owner.
// There is at most one card per (Owner, MetalType).
type Asset struct {
	// ID is the unique identifier for the card (UUID format).
	ID string

	// Date is when the card was last modified.
	Date time.Time

	MetalType MetalType

	// Grams is the cumulative quantity held.
	Grams decimal.Decimal

	// TotalCashPaid is the cumulative cash spent, tax included.
	TotalCashPaid decimal.Decimal

	// TaxDeducted is the cumulative purchase tax.
	TaxDeducted decimal.Decimal

	// InvestedValue is the cumulative value net of tax.
	InvestedValue decimal.Decimal

	// Owner is A or B.
	Owner Owner
}
