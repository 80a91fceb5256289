package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

// topCategoryCount is how many expense categories the dashboard lists.
const topCategoryCount = 5

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// SortByDateDesc sorts transactions newest first. Ties keep their order.
func SortByDateDesc(txns []*models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}

// FilterView keeps the transactions visible in view.
func FilterView(txns []*models.Transaction, view models.ViewMode) []*models.Transaction {
	if view == models.ViewCombined {
		return txns
	}
	var out []*models.Transaction
	for _, t := range txns {
		if view.Includes(t.Owner) {
			out = append(out, t)
		}
	}
	return out
}

// FilterRange keeps the transactions dated in [start, end). A zero bound is open.
func FilterRange(txns []*models.Transaction, start, end time.Time) []*models.Transaction {
	var out []*models.Transaction
	for _, t := range txns {
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && !t.Date.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MonthRange returns the first instant of the month and the first instant of the next.
func MonthRange(month time.Month, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Summarize sums income and expense. Transfers count towards neither.
func Summarize(txns []*models.Transaction) models.PeriodSummary {
	s := models.PeriodSummary{
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		Transactions: txns,
	}
	for _, t := range txns {
		switch t.Kind {
		case models.KindIncome:
			s.Income = s.Income.Add(t.Amount)
		case models.KindExpense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Savings = s.Income.Sub(s.Expense)
	return s
}

// MonthlyReport summarizes one calendar month per user and combined.
// Transactions should already be sanitized so that every owner is A or B.
func MonthlyReport(txns []*models.Transaction, month time.Month, year int, loc *time.Location, nameA, nameB string) models.MonthlyReport {
	start, end := MonthRange(month, year, loc)
	inMonth := FilterRange(txns, start, end)

	var a, b []*models.Transaction
	for _, t := range inMonth {
		switch t.Owner {
		case models.OwnerA:
			a = append(a, t)
		case models.OwnerB:
			b = append(b, t)
		}
	}

	return models.MonthlyReport{
		Month:    start.Format("January 2006"),
		Start:    start,
		End:      end,
		UserA:    models.UserSummary{Name: nameA, PeriodSummary: Summarize(a)},
		UserB:    models.UserSummary{Name: nameB, PeriodSummary: Summarize(b)},
		Combined: Summarize(inMonth),
	}
}

// TopExpenseCategories returns the n largest expense categories, largest first.
func TopExpenseCategories(txns []*models.Transaction, n int) []models.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	expense := decimal.Zero
	for _, t := range txns {
		if t.Kind != models.KindExpense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		expense = expense.Add(t.Amount)
	}

	out := make([]models.CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, models.CategoryTotal{
			Category: category,
			Amount:   amount,
			Percent:  percent(amount, expense),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Dashboard builds the wealth overview of a view.
//
// Cash counts active accounts visible in the view (Shared accounts are visible to both
// users). Invested value counts the view's asset cards. Flows count the view's
// transactions dated at or after since.
func Dashboard(view models.ViewMode, since time.Time, accounts []*models.Account, assets []*models.Asset, txns []*models.Transaction) models.DashboardSummary {
	cash := decimal.Zero
	for _, a := range accounts {
		if a.IsActive && view.Includes(a.Owner) {
			cash = cash.Add(a.CurrentBalance)
		}
	}

	invested := decimal.Zero
	for _, a := range assets {
		if view.Includes(a.Owner) {
			invested = invested.Add(a.InvestedValue)
		}
	}

	total := cash.Add(invested)
	if total.IsZero() {
		total = decimal.NewFromInt(1)
	}
	liquid := percent(cash, total)

	flows := Summarize(FilterRange(FilterView(txns, view), since, time.Time{}))
	savingsRate := 0
	if flows.Income.IsPositive() {
		savingsRate = percent(flows.Savings, flows.Income)
	}

	return models.DashboardSummary{
		View:            view,
		Since:           since,
		NetWorth:        cash.Add(invested),
		TotalCash:       cash,
		TotalInvested:   invested,
		LiquidPercent:   liquid,
		InvestedPercent: 100 - liquid,
		Income:          flows.Income,
		Expense:         flows.Expense,
		Savings:         flows.Savings,
		SavingsRate:     savingsRate,
		TopCategories:   TopExpenseCategories(flows.Transactions, topCategoryCount),
	}
}

// percent is part/whole as a whole percentage. Halves round up, so -2.5 becomes -2.
func percent(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Div(whole).Mul(hundred).Add(half).Floor().IntPart())
}
