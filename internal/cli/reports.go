package cli

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

// debtsCmd lists borrowed money and what is left to repay.
type debtsCmd struct {
	*Runner
	view string
	all  bool
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list debts and remaining amounts" }
func (*debtsCmd) Usage() string {
	return `debts [-view A|B|Combined] [-all]

  Lists pending debts; -all includes cleared ones.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "Combined", "view: A, B or Combined")
	f.BoolVar(&c.all, "all", false, "include cleared debts")
}

func (c *debtsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := parseView(c.view)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		list := l.Analytics.PendingDebts
		if c.all {
			list = l.Analytics.Debts
		}
		debts, err := list(ctx, view)
		if err != nil {
			return err
		}

		var md markdown
		md.heading(1, "Debts (%s)", view)
		if len(debts) == 0 {
			md.line("No debts.")
			return c.printMarkdown(md.String())
		}
		rows := make([][]string, 0, len(debts))
		for _, d := range debts {
			status := "pending"
			if d.IsCleared {
				status = "cleared"
			}
			rows = append(rows, []string{
				formatDate(d.Date),
				cell(d.Description),
				string(d.Owner),
				c.money(d.OriginalAmount),
				c.money(d.PaidAmount),
				c.money(d.RemainingAmount),
				status,
				d.ID,
			})
		}
		md.table([]string{"Date", "Description", "Owner", "Borrowed", "Paid", "Remaining", "Status", "ID"}, rows)
		md.line("**Total remaining:** %s", c.money(ledger.TotalRemaining(debts)))
		return c.printMarkdown(md.String())
	})
}

// reportCmd prints the monthly report.
type reportCmd struct {
	*Runner
	month int
	year  int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "monthly income, expense and savings per user" }
func (*reportCmd) Usage() string {
	return `report [-month 1-12] [-year YYYY]

  Defaults to the current month.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	now := time.Now()
	f.IntVar(&c.month, "month", int(now.Month()), "month, 1-12")
	f.IntVar(&c.year, "year", now.Year(), "year")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		report, err := l.Analytics.MonthlyReport(ctx, time.Month(c.month), c.year)
		if err != nil {
			return err
		}

		var md markdown
		md.heading(1, "Monthly report: %s", report.Month)
		md.table([]string{"", "Income", "Expense", "Savings"}, [][]string{
			c.summaryRow(cell(report.UserA.Name), report.UserA.PeriodSummary),
			c.summaryRow(cell(report.UserB.Name), report.UserB.PeriodSummary),
			c.summaryRow("**Combined**", report.Combined),
		})
		if len(report.Combined.Transactions) > 0 {
			md.heading(2, "Transactions")
			md.table([]string{"Date", "Kind", "Amount", "Category", "Account", "Owner", "Description"},
				c.transactionRows(report.Combined.Transactions, nil))
		}
		return c.printMarkdown(md.String())
	})
}

func (r *Runner) summaryRow(label string, s models.PeriodSummary) []string {
	return []string{label, r.money(s.Income), r.money(s.Expense), r.money(s.Savings)}
}

// dashboardCmd prints the wealth overview.
type dashboardCmd struct {
	*Runner
	view  string
	since string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "net worth, savings rate and top expenses" }
func (*dashboardCmd) Usage() string {
	return `dashboard [-view A|B|Combined] [-since YYYY-MM-DD]

  Income, expense and categories count from -since (default: all time).
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "Combined", "view: A, B or Combined")
	f.StringVar(&c.since, "since", "", "count flows from this date")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := parseView(c.view)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		since, err := c.parseDate("since", c.since)
		if err != nil {
			return err
		}
		d, err := l.Analytics.Dashboard(ctx, view, since)
		if err != nil {
			return err
		}

		var md markdown
		md.heading(1, "Dashboard (%s)", d.View)
		md.line("- **Net worth:** %s", c.money(d.NetWorth))
		md.line("- **Cash:** %s (%d%%)", c.money(d.TotalCash), d.LiquidPercent)
		md.line("- **Invested:** %s (%d%%)", c.money(d.TotalInvested), d.InvestedPercent)
		md.line("")
		period := "all time"
		if !d.Since.IsZero() {
			period = "since " + formatDate(d.Since)
		}
		md.heading(2, "Cash flow, %s", period)
		md.line("- **Income:** %s", c.money(d.Income))
		md.line("- **Expense:** %s", c.money(d.Expense))
		md.line("- **Savings:** %s (%d%% savings rate)", c.money(d.Savings), d.SavingsRate)
		md.line("")
		if len(d.TopCategories) > 0 {
			md.heading(2, "Top expenses")
			rows := make([][]string, 0, len(d.TopCategories))
			for _, cat := range d.TopCategories {
				rows = append(rows, []string{cell(cat.Category), c.money(cat.Amount), formatPercent(cat.Percent)})
			}
			md.table([]string{"Category", "Amount", "Share"}, rows)
		}
		return c.printMarkdown(md.String())
	})
}
