package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

const defaultDebtDescription = "Borrowed money"

// ListDebts derives one DebtSummary per debt transaction, in input order.
//
// A debt is income flagged IsDebt or categorized "Borrowed". Its paid amount is the sum
// of expenses categorized "Debt Repayment" whose DebtID is the debt's ID. Repayments
// pointing at unknown IDs count towards nothing. Cleared debts are included.
func ListDebts(transactions []*models.Transaction) []models.DebtSummary {
	paid := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.IsRepayment() {
			paid[t.DebtID] = paid[t.DebtID].Add(t.Amount)
		}
	}

	var debts []models.DebtSummary
	for _, t := range transactions {
		if !t.IsDebtOrigin() {
			continue
		}
		description := t.Description
		if description == "" {
			description = defaultDebtDescription
		}
		p := paid[t.ID]
		debts = append(debts, models.DebtSummary{
			ID:              t.ID,
			Date:            t.Date,
			Description:     description,
			OriginalAmount:  t.Amount,
			PaidAmount:      p,
			RemainingAmount: t.Amount.Sub(p),
			Owner:           t.Owner,
			IsCleared:       p.GreaterThanOrEqual(t.Amount),
		})
	}
	return debts
}

// PendingDebts keeps the debts that are not cleared.
func PendingDebts(debts []models.DebtSummary) []models.DebtSummary {
	var pending []models.DebtSummary
	for _, d := range debts {
		if !d.IsCleared {
			pending = append(pending, d)
		}
	}
	return pending
}

// TotalRemaining sums the remaining amount of the given debts.
func TotalRemaining(debts []models.DebtSummary) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.RemainingAmount)
	}
	return total
}
