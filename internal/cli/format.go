package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

// formatMoney formats d in the ledger currency, e.g. "₹1,250.00".
// Unknown currency codes fall back to two decimals and the code.
func formatMoney(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return strings.TrimSpace(d.StringFixed(2) + " " + currency)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func (r *Runner) money(d decimal.Decimal) string {
	return formatMoney(d, r.currency)
}

func formatGrams(d decimal.Decimal) string {
	return d.StringFixed(3) + " g"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// markdown accumulates a Markdown document.
type markdown struct {
	strings.Builder
}

func (m *markdown) heading(level int, format string, args ...any) {
	fmt.Fprintf(m, "%s %s\n\n", strings.Repeat("#", level), fmt.Sprintf(format, args...))
}

func (m *markdown) line(format string, args ...any) {
	fmt.Fprintf(m, format+"\n", args...)
}

func (m *markdown) table(header []string, rows [][]string) {
	m.line("| %s |", strings.Join(header, " | "))
	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	m.line("| %s |", strings.Join(seps, " | "))
	for _, row := range rows {
		m.line("| %s |", strings.Join(row, " | "))
	}
	m.line("")
}

// printMarkdown renders md for the terminal, or writes it as is in plain mode.
func (r *Runner) printMarkdown(md string) error {
	return renderMarkdown(r.stdout(), md, r.Plain)
}

func renderMarkdown(w io.Writer, md string, plain bool) error {
	if !plain {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				md = out
			}
		}
	}
	_, err := io.WriteString(w, md)
	return err
}

func formatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}
