package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

// Amounts travel as decimal strings ("12.50").

type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Owner          string          `json:"owner"`
	IsActive       bool            `json:"is_active"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	Owner       string          `json:"owner"`
	Description string          `json:"description,omitempty"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	IsDebt      bool            `json:"is_debt,omitempty"`
	DebtID      string          `json:"debt_id,omitempty"`
}

type Asset struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	MetalType     string          `json:"metal_type"`
	Grams         decimal.Decimal `json:"grams"`
	TotalCashPaid decimal.Decimal `json:"total_cash_paid"`
	TaxDeducted   decimal.Decimal `json:"tax_deducted"`
	InvestedValue decimal.Decimal `json:"invested_value"`
	Owner         string          `json:"owner"`
}

type Debt struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description,omitempty"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Owner           string          `json:"owner"`
	IsCleared       bool            `json:"is_cleared"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type PeriodSummary struct {
	Name         string          `json:"name,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Savings      decimal.Decimal `json:"savings"`
	Transactions []Transaction   `json:"transactions"`
}

type MonthlyReport struct {
	Month    string        `json:"month"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	UserA    PeriodSummary `json:"user_a"`
	UserB    PeriodSummary `json:"user_b"`
	Combined PeriodSummary `json:"combined"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  int             `json:"percent"`
}

type Dashboard struct {
	View            string          `json:"view"`
	Since           *time.Time      `json:"since,omitempty"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	TotalCash       decimal.Decimal `json:"total_cash"`
	TotalInvested   decimal.Decimal `json:"total_invested"`
	LiquidPercent   int             `json:"liquid_percent"`
	InvestedPercent int             `json:"invested_percent"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Savings         decimal.Decimal `json:"savings"`
	SavingsRate     int             `json:"savings_rate"`
	TopCategories   []CategoryTotal `json:"top_categories"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Owner          string          `json:"owner"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type AccountResponse struct {
	Account Account `json:"account"`
}

type SetAccountActiveRequest struct {
	AccountID string `json:"account_id"`
	Active    bool   `json:"active"`
}

type CorrectBalanceRequest struct {
	AccountID  string          `json:"account_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

type CorrectBalanceResponse struct {
	// Adjustment is nil when the balance already matched.
	Adjustment *Transaction `json:"adjustment,omitempty"`
}

type ListTransactionsRequest struct {
	View  string     `json:"view,omitempty"`
	Since *time.Time `json:"since,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type AddTransactionRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	AccountID   string          `json:"account_id"`
	Owner       string          `json:"owner,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	IsDebt      bool            `json:"is_debt,omitempty"`
	DebtID      string          `json:"debt_id,omitempty"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type TransferFundsRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Owner         string          `json:"owner,omitempty"`
	Description   string          `json:"description,omitempty"`
}

type RepayDebtRequest struct {
	DebtID      string          `json:"debt_id"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"account_id"`
	Owner       string          `json:"owner,omitempty"`
	Description string          `json:"description,omitempty"`
}

type ListAssetsRequest struct {
	View string `json:"view,omitempty"`
}

type ListAssetsResponse struct {
	Assets []Asset `json:"assets"`
}

// AddAssetRequest records a purchase. Amount is the cash paid for AddAsset and
// the net invested value for AddExistingAsset.
type AddAssetRequest struct {
	Owner     string          `json:"owner,omitempty"`
	MetalType string          `json:"metal_type"`
	Amount    decimal.Decimal `json:"amount"`
	Grams     decimal.Decimal `json:"grams"`
}

type AssetResponse struct {
	Asset Asset `json:"asset"`
}

type ListDebtsRequest struct {
	View        string `json:"view,omitempty"`
	PendingOnly bool   `json:"pending_only,omitempty"`
}

type ListDebtsResponse struct {
	Debts          []Debt          `json:"debts"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
}

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type MonthlyReportResponse struct {
	Report MonthlyReport `json:"report"`
}

type DashboardRequest struct {
	View  string     `json:"view,omitempty"`
	Since *time.Time `json:"since,omitempty"`
}

type DashboardResponse struct {
	Dashboard Dashboard `json:"dashboard"`
}

type ListSettingsRequest struct{}

type SettingsResponse struct {
	Settings []Setting `json:"settings"`
}

type UpdateDisplayNameRequest struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toAccount(a *models.Account) Account {
	return Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		CurrentBalance: a.CurrentBalance,
		Owner:          string(a.Owner),
		IsActive:       a.IsActive,
	}
}

func toTransaction(t *models.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Kind:        string(t.Kind),
		Amount:      t.Amount,
		Category:    t.Category,
		AccountID:   t.AccountID,
		ToAccountID: t.ToAccountID,
		Owner:       string(t.Owner),
		Description: t.Description,
		TaxAmount:   t.TaxAmount,
		IsDebt:      t.IsDebt,
		DebtID:      t.DebtID,
	}
}

func toTransactions(txns []*models.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransaction(t))
	}
	return out
}

func toAsset(a *models.Asset) Asset {
	return Asset{
		ID:            a.ID,
		Date:          a.Date,
		MetalType:     string(a.MetalType),
		Grams:         a.Grams,
		TotalCashPaid: a.TotalCashPaid,
		TaxDeducted:   a.TaxDeducted,
		InvestedValue: a.InvestedValue,
		Owner:         string(a.Owner),
	}
}

func toDebt(d models.DebtSummary) Debt {
	return Debt{
		ID:              d.ID,
		Date:            d.Date,
		Description:     d.Description,
		OriginalAmount:  d.OriginalAmount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		Owner:           string(d.Owner),
		IsCleared:       d.IsCleared,
	}
}

func toSettings(settings []models.Setting) []Setting {
	out := make([]Setting, 0, len(settings))
	for _, s := range settings {
		out = append(out, Setting{Key: s.Key, Value: s.Value})
	}
	return out
}

func toPeriodSummary(name string, p models.PeriodSummary) PeriodSummary {
	return PeriodSummary{
		Name:         name,
		Income:       p.Income,
		Expense:      p.Expense,
		Savings:      p.Savings,
		Transactions: toTransactions(p.Transactions),
	}
}

func toMonthlyReport(r models.MonthlyReport) MonthlyReport {
	return MonthlyReport{
		Month:    r.Month,
		Start:    r.Start,
		End:      r.End,
		UserA:    toPeriodSummary(r.UserA.Name, r.UserA.PeriodSummary),
		UserB:    toPeriodSummary(r.UserB.Name, r.UserB.PeriodSummary),
		Combined: toPeriodSummary("", r.Combined),
	}
}

func toDashboard(d models.DashboardSummary) Dashboard {
	out := Dashboard{
		View:            string(d.View),
		NetWorth:        d.NetWorth,
		TotalCash:       d.TotalCash,
		TotalInvested:   d.TotalInvested,
		LiquidPercent:   d.LiquidPercent,
		InvestedPercent: d.InvestedPercent,
		Income:          d.Income,
		Expense:         d.Expense,
		Savings:         d.Savings,
		SavingsRate:     d.SavingsRate,
		TopCategories:   make([]CategoryTotal, 0, len(d.TopCategories)),
	}
	if !d.Since.IsZero() {
		since := d.Since
		out.Since = &since
	}
	for _, c := range d.TopCategories {
		out.TopCategories = append(out.TopCategories, CategoryTotal{
			Category: c.Category,
			Amount:   c.Amount,
			Percent:  c.Percent,
		})
	}
	return out
}
