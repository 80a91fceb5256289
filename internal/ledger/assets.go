package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

// PurchaseTaxRate is the tax withheld on a new metal purchase.
var PurchaseTaxRate = decimal.RequireFromString("0.03")

// Holding is an amount of metal to accumulate onto an asset card.
type Holding struct {
	Grams         decimal.Decimal
	TotalCashPaid decimal.Decimal
	TaxDeducted   decimal.Decimal
	InvestedValue decimal.Decimal
}

// NewPurchase is a metal bought now: 3% of the cash paid is tax and the rest is invested.
func NewPurchase(totalCashPaid, grams decimal.Decimal) Holding {
	tax := totalCashPaid.Mul(PurchaseTaxRate)
	return Holding{
		Grams:         grams,
		TotalCashPaid: totalCashPaid,
		TaxDeducted:   tax,
		InvestedValue: totalCashPaid.Sub(tax),
	}
}

// ExistingHolding is metal already owned before tracking started. No tax applies and
// the cash paid is recorded as the invested value.
func ExistingHolding(investedValue, grams decimal.Decimal) Holding {
	return Holding{
		Grams:         grams,
		TotalCashPaid: investedValue,
		TaxDeducted:   decimal.Zero,
		InvestedValue: investedValue,
	}
}

// AddTo accumulates h onto card and refreshes its date.
func (h Holding) AddTo(card *models.Asset, at time.Time) {
	card.Grams = card.Grams.Add(h.Grams)
	card.TotalCashPaid = card.TotalCashPaid.Add(h.TotalCashPaid)
	card.TaxDeducted = card.TaxDeducted.Add(h.TaxDeducted)
	card.InvestedValue = card.InvestedValue.Add(h.InvestedValue)
	card.Date = at
}

// NewCard returns the first card of (owner, metal) holding h. The ID is left empty.
func (h Holding) NewCard(owner models.Owner, metal models.MetalType, at time.Time) *models.Asset {
	return &models.Asset{
		Date:          at,
		MetalType:     metal,
		Grams:         h.Grams,
		TotalCashPaid: h.TotalCashPaid,
		TaxDeducted:   h.TaxDeducted,
		InvestedValue: h.InvestedValue,
		Owner:         owner,
	}
}

// FindCard returns the card of (owner, metal), or nil.
func FindCard(cards []*models.Asset, owner models.Owner, metal models.MetalType) *models.Asset {
	for _, c := range cards {
		if c.Owner == owner && c.MetalType == metal {
			return c
		}
	}
	return nil
}
