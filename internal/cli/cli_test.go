package cli

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ourfinance/internal/app"
	"github.com/mmynk/ourfinance/internal/auth"
	"github.com/mmynk/ourfinance/internal/config"
	"github.com/mmynk/ourfinance/internal/models"
)

type harness struct {
	app    *app.App
	runner *Runner
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{
		StoreBackend:          config.BackendMemory,
		SharedAdjustmentOwner: "A",
		LedgerTimezone:        "UTC",
		LedgerCurrency:        "USD",
		TokenTTL:              time.Hour,
	}
	a, err := app.Open(context.Background(), cfg)
	require.NoError(t, err)

	h := &harness{app: a, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.runner = &Runner{
		Open:  func(context.Context) (*app.App, error) { return a, nil },
		Out:   h.out,
		Err:   h.errOut,
		Plain: true,
	}
	return h
}

// exec runs one command line and returns its exit status and stdout.
func (h *harness) exec(t *testing.T, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "ledger")
	Register(commander, h.runner)
	require.NoError(t, fs.Parse(args))
	return commander.Execute(context.Background()), h.out.String()
}

func (h *harness) mustExec(t *testing.T, args ...string) string {
	t.Helper()
	status, out := h.exec(t, args...)
	require.Equal(t, subcommands.ExitSuccess, status, "stderr: %s", h.errOut.String())
	return out
}

func TestAccountCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustExec(t, "open-account", "-name", "Wallet", "-type", "Cash", "-owner", "A")
	assert.Contains(t, out, "Opened **Wallet**")
	h.mustExec(t, "open-account", "-name", "Joint", "-owner", "Shared", "-balance", "1000")

	h.mustExec(t, "add", "-kind", "income", "-amount", "500", "-account", "wallet", "-owner", "A", "-category", "Salary")
	h.mustExec(t, "add", "-kind", "expense", "-amount", "200", "-account", "Wallet", "-owner", "A", "-category", "Food", "-date", "2025-01-15")

	out = h.mustExec(t, "accounts", "-view", "A")
	assert.Contains(t, out, "| Wallet | Cash | A | $300.00 | yes |")
	assert.Contains(t, out, "**Total cash:** $1,300.00")

	out = h.mustExec(t, "transfer", "-from", "Joint", "-to", "Wallet", "-amount", "100", "-owner", "B")
	assert.Contains(t, out, "Moved $100.00 from **Joint** to **Wallet**")

	out = h.mustExec(t, "correct", "-account", "Wallet", "-balance", "350")
	assert.Contains(t, out, "expense adjustment of $50.00")
	out = h.mustExec(t, "correct", "-account", "Wallet", "-balance", "350")
	assert.Contains(t, out, "nothing recorded")

	out = h.mustExec(t, "transactions", "-view", "B")
	assert.Contains(t, out, "Joint → Wallet")
	assert.NotContains(t, out, "Salary")

	out = h.mustExec(t, "set-active", "-account", "Joint", "-active=false")
	assert.Contains(t, out, "**Joint** is now deactivated")
	out = h.mustExec(t, "accounts")
	assert.NotContains(t, out, "Joint")
	out = h.mustExec(t, "accounts", "-inactive")
	assert.Contains(t, out, "| Joint |")
}

func TestCommandErrors(t *testing.T) {
	h := newHarness(t)
	h.mustExec(t, "open-account", "-name", "Wallet", "-owner", "A")
	h.mustExec(t, "open-account", "-name", "wallet", "-owner", "B")
	h.mustExec(t, "open-account", "-name", "Cash", "-owner", "A")

	tests := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
		stderr string
	}{
		{"missing amount", []string{"add", "-account", "x", "-owner", "A"}, subcommands.ExitUsageError, "-amount is required"},
		{"bad amount", []string{"add", "-amount", "ten", "-account", "x", "-owner", "A"}, subcommands.ExitUsageError, "invalid -amount"},
		{"shared owner", []string{"add", "-amount", "1", "-account", "x", "-owner", "Shared"}, subcommands.ExitUsageError, "invalid user"},
		{"unknown account", []string{"add", "-amount", "1", "-account", "Bank", "-owner", "A"}, subcommands.ExitFailure, "not found"},
		{"ambiguous account", []string{"add", "-amount", "1", "-account", "WALLET", "-owner", "A"}, subcommands.ExitUsageError, "use the account ID"},
		{"bad kind", []string{"add", "-kind", "gift", "-amount", "1", "-account", "Cash", "-owner", "A"}, subcommands.ExitFailure, "kind must be income or expense"},
		{"bad date", []string{"transactions", "-since", "15/01/2025"}, subcommands.ExitUsageError, "want YYYY-MM-DD"},
		{"bad view", []string{"assets", "-view", "C"}, subcommands.ExitUsageError, "invalid view"},
		{"bad metal", []string{"buy-metal", "-owner", "A", "-metal", "Copper", "-paid", "1", "-grams", "1"}, subcommands.ExitUsageError, "invalid metal"},
		{"bad month", []string{"report", "-month", "13"}, subcommands.ExitFailure, "month must be 1-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := h.exec(t, tt.args...)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, h.errOut.String(), tt.stderr)
		})
	}
}

func TestAssetCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustExec(t, "buy-metal", "-owner", "A", "-metal", "Gold", "-paid", "1000", "-grams", "1")
	assert.Contains(t, out, "A now holds 1.000 g of Gold, $970.00 invested ($30.00 tax)")
	out = h.mustExec(t, "buy-metal", "-owner", "A", "-metal", "Gold", "-paid", "500", "-grams", "0.5")
	assert.Contains(t, out, "1.500 g of Gold, $1,455.00 invested ($45.00 tax)")

	out = h.mustExec(t, "add-holding", "-owner", "B", "-metal", "Silver", "-value", "700", "-grams", "10")
	assert.Contains(t, out, "$700.00 invested ($0.00 tax)")

	out = h.mustExec(t, "assets", "-view", "B")
	assert.Contains(t, out, "| Silver | B | 10.000 g |")
	assert.NotContains(t, out, "Gold")

	out = h.mustExec(t, "assets")
	assert.Contains(t, out, "**Total invested:** $2,155.00")
}

func TestDebtAndReportCommands(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.mustExec(t, "open-account", "-name", "Wallet", "-owner", "B")
	h.mustExec(t, "add", "-kind", "income", "-amount", "1000", "-account", "Wallet", "-owner", "B",
		"-category", models.CategoryBorrowed, "-debt", "-desc", "Loan from Sam", "-date", "2025-01-05")

	debts, err := h.app.Ledger.Analytics.Debts(ctx, models.ViewCombined)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	debtID := debts[0].ID

	h.mustExec(t, "repay", "-debt", debtID, "-amount", "400", "-account", "Wallet", "-owner", "B")
	out := h.mustExec(t, "debts")
	assert.Contains(t, out, "| Loan from Sam | B | $1,000.00 | $400.00 | $600.00 | pending |")
	assert.Contains(t, out, "**Total remaining:** $600.00")

	h.mustExec(t, "repay", "-debt", debtID, "-amount", "600", "-account", "Wallet", "-owner", "B")
	out = h.mustExec(t, "debts")
	assert.Contains(t, out, "No debts.")
	out = h.mustExec(t, "debts", "-all")
	assert.Contains(t, out, "cleared")

	out = h.mustExec(t, "report", "-month", "1", "-year", "2025")
	assert.Contains(t, out, "# Monthly report: January 2025")
	assert.Contains(t, out, "| User B | $1,000.00 | $0.00 | $1,000.00 |")

	out = h.mustExec(t, "dashboard", "-view", "B")
	assert.Contains(t, out, "**Net worth:** $0.00")
	assert.Contains(t, out, "Cash flow, all time")
	assert.Contains(t, out, "| Debt Repayment | $1,000.00 | 100% |")
}

func TestSettingsCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustExec(t, "init")
	assert.Contains(t, out, "Store ready.")
	assert.Contains(t, out, "| user_a_name | User A |")

	out = h.mustExec(t, "rename", "-user", "B", "-name", "Bo")
	assert.Contains(t, out, "| user_b_name | Bo |")

	out = h.mustExec(t, "settings")
	assert.Contains(t, out, "| user_b_name | Bo |")

	status, _ := h.exec(t, "rename", "-user", "B", "-name", "   ")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestHashPassword(t *testing.T) {
	h := newHarness(t)
	cmd := &hashPasswordCmd{Runner: h.runner, In: strings.NewReader("correct horse\n")}
	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

	hash := strings.TrimSpace(h.out.String())
	authenticator := auth.NewPasswordAuthenticator(map[models.Owner]string{models.OwnerA: hash})
	owner, err := authenticator.Authenticate(context.Background(), "A", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, models.OwnerA, owner)

	h.out.Reset()
	cmd = &hashPasswordCmd{Runner: h.runner, In: strings.NewReader("short")}
	assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), nil))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0", "USD", "$0.00"},
		{"0.005", "USD", "$0.01"},
		{"12.5", "XYZ", "12.50 XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestMarkdown(t *testing.T) {
	var md markdown
	md.heading(2, "Title %d", 1)
	md.table([]string{"A", "B"}, [][]string{{cell("x|y"), cell("")}})
	assert.Equal(t, "## Title 1\n\n| A | B |\n| --- | --- |\n| x\\|y | - |\n\n", md.String())

	var buf bytes.Buffer
	require.NoError(t, renderMarkdown(&buf, md.String(), true))
	assert.Equal(t, md.String(), buf.String())

	buf.Reset()
	require.NoError(t, renderMarkdown(&buf, md.String(), false))
	assert.Contains(t, buf.String(), "Title 1")
}
