package sheetstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
)

// dateLayout is the JavaScript toISOString format the original spreadsheet uses.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseDate accepts full timestamps and bare dates.
func parseDate(c sheet.Cell) (time.Time, error) {
	s := c.String()
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

func accountRow(a *models.Account) []string {
	return []string{a.ID, a.Name, a.Type, formatDecimal(a.CurrentBalance), string(a.Owner), sheet.FormatBool(a.IsActive)}
}

func decodeAccount(rec sheet.Record) *models.Account {
	return &models.Account{
		ID:             rec.Get("id").String(),
		Name:           rec.Get("name").String(),
		Type:           rec.Get("type").String(),
		CurrentBalance: rec.Get("current_balance").Decimal(),
		Owner:          models.Owner(rec.Get("user_id").String()),
		IsActive:       rec.Get("is_active").Bool(),
	}
}

func transactionRow(t *models.Transaction) []string {
	return []string{
		t.ID,
		formatDate(t.Date),
		string(t.Kind),
		formatDecimal(t.Amount),
		t.Category,
		t.AccountID,
		t.ToAccountID,
		string(t.Owner),
		t.Description,
		formatDecimal(t.TaxAmount),
		sheet.FormatBool(t.IsDebt),
		t.DebtID,
	}
}

func decodeTransaction(rec sheet.Record) (*models.Transaction, error) {
	date, err := parseDate(rec.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", rec.Get("id").String(), err)
	}
	return &models.Transaction{
		ID:          rec.Get("id").String(),
		Date:        date,
		Kind:        models.TransactionKind(rec.Get("type").String()),
		Amount:      rec.Get("amount").Decimal(),
		Category:    rec.Get("category").String(),
		AccountID:   rec.Get("account_id").String(),
		ToAccountID: rec.Get("to_account_id").String(),
		Owner:       models.Owner(rec.Get("user_id").String()),
		Description: rec.Get("description").String(),
		TaxAmount:   rec.Get("tax_amount").Decimal(),
		IsDebt:      rec.Get("is_debt").Bool(),
		DebtID:      rec.Get("debt_id").String(),
	}, nil
}

func assetRow(a *models.Asset) []string {
	return []string{
		a.ID,
		formatDate(a.Date),
		string(a.MetalType),
		formatDecimal(a.Grams),
		formatDecimal(a.TotalCashPaid),
		formatDecimal(a.TaxDeducted),
		formatDecimal(a.InvestedValue),
		string(a.Owner),
	}
}

func decodeAsset(rec sheet.Record) (*models.Asset, error) {
	date, err := parseDate(rec.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", rec.Get("id").String(), err)
	}
	return &models.Asset{
		ID:            rec.Get("id").String(),
		Date:          date,
		MetalType:     models.MetalType(rec.Get("metal_type").String()),
		Grams:         rec.Get("grams").Decimal(),
		TotalCashPaid: rec.Get("total_cash_paid").Decimal(),
		TaxDeducted:   rec.Get("tax_deducted").Decimal(),
		InvestedValue: rec.Get("invested_value").Decimal(),
		Owner:         models.Owner(rec.Get("user_id").String()),
	}, nil
}
