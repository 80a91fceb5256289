package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/models"
)

func TestNewPurchaseTax(t *testing.T) {
	for _, paid := range []string{"0", "1", "1000", "333.33", "98765.4321"} {
		h := NewPurchase(d(paid), d("1"))
		assert.True(t, d(paid).Mul(d("0.03")).Equal(h.TaxDeducted), "tax for %s", paid)
		assert.True(t, d(paid).Mul(d("0.97")).Equal(h.InvestedValue), "invested for %s", paid)
		assert.True(t, h.TaxDeducted.Add(h.InvestedValue).Equal(d(paid)))
	}
}

func TestExistingHoldingHasNoTax(t *testing.T) {
	h := ExistingHolding(d("2500"), d("3"))
	assert.True(t, h.TaxDeducted.IsZero())
	assert.True(t, d("2500").Equal(h.TotalCashPaid))
	assert.True(t, d("2500").Equal(h.InvestedValue))
}

func TestHoldingAccumulates(t *testing.T) {
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	card := NewPurchase(d("1000"), d("1")).NewCard(models.OwnerA, models.MetalGold, first)
	assert.True(t, d("1").Equal(card.Grams))
	assert.True(t, d("1000").Equal(card.TotalCashPaid))
	assert.True(t, d("30").Equal(card.TaxDeducted))
	assert.True(t, d("970").Equal(card.InvestedValue))

	NewPurchase(d("500"), d("0.5")).AddTo(card, second)
	assert.True(t, d("1.5").Equal(card.Grams))
	assert.True(t, d("1500").Equal(card.TotalCashPaid))
	assert.True(t, d("45").Equal(card.TaxDeducted))
	assert.True(t, d("1455").Equal(card.InvestedValue))
	assert.Equal(t, second, card.Date)
}

func TestFindCard(t *testing.T) {
	cards := []*models.Asset{
		{ID: "1", Owner: models.OwnerA, MetalType: models.MetalGold},
		{ID: "2", Owner: models.OwnerA, MetalType: models.MetalSilver},
		{ID: "3", Owner: models.OwnerB, MetalType: models.MetalGold},
	}

	got := FindCard(cards, models.OwnerB, models.MetalGold)
	require.NotNil(t, got)
	assert.Equal(t, "3", got.ID)
	assert.Nil(t, FindCard(cards, models.OwnerB, models.MetalSilver))
}
