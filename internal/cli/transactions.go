package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

// transactionsCmd lists the ledger, newest first.
type transactionsCmd struct {
	*Runner
	view  string
	since string
	limit int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions, newest first" }
func (*transactionsCmd) Usage() string {
	return `transactions [-view A|B|Combined] [-since YYYY-MM-DD] [-n <count>]
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "Combined", "view: A, B or Combined")
	f.StringVar(&c.since, "since", "", "only transactions on or after this date")
	f.IntVar(&c.limit, "n", 50, "maximum number of transactions, 0 for all")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := parseView(c.view)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		since, err := c.parseDate("since", c.since)
		if err != nil {
			return err
		}
		txns, err := l.Transactions.ListForView(ctx, view, since)
		if err != nil {
			return err
		}
		accounts, err := l.Accounts.ListAccounts(ctx)
		if err != nil {
			return err
		}
		names := make(map[string]string, len(accounts))
		for _, a := range accounts {
			names[a.ID] = a.Name
		}
		if c.limit > 0 && len(txns) > c.limit {
			txns = txns[:c.limit]
		}

		var md markdown
		md.heading(1, "Transactions (%s)", view)
		if len(txns) == 0 {
			md.line("No transactions.")
			return c.printMarkdown(md.String())
		}
		md.table([]string{"Date", "Kind", "Amount", "Category", "Account", "Owner", "Description"}, c.transactionRows(txns, names))
		return c.printMarkdown(md.String())
	})
}

func (r *Runner) transactionRows(txns []*models.Transaction, names map[string]string) [][]string {
	accountName := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		account := accountName(t.AccountID)
		if t.Kind == models.KindTransfer {
			account += " → " + accountName(t.ToAccountID)
		}
		rows = append(rows, []string{
			formatDate(t.Date),
			string(t.Kind),
			r.money(t.Amount),
			cell(t.Category),
			cell(account),
			string(t.Owner),
			cell(t.Description),
		})
	}
	return rows
}

// addCmd records an income or expense.
type addCmd struct {
	*Runner
	kind        string
	amount      string
	category    string
	account     string
	owner       string
	description string
	date        string
	tax         string
	debt        bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `add -kind income|expense -amount <amount> -account <id|name> -owner A|B
    [-category <category>] [-desc <text>] [-date YYYY-MM-DD] [-tax <amount>] [-debt]

  Use -debt (or category Borrowed) on income to record borrowed money.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "expense", "income or expense")
	f.StringVar(&c.amount, "amount", "", "positive amount")
	f.StringVar(&c.category, "category", "", "category")
	f.StringVar(&c.account, "account", "", "account ID or name")
	f.StringVar(&c.owner, "owner", "", "user: A or B")
	f.StringVar(&c.description, "desc", "", "description")
	f.StringVar(&c.date, "date", "", "date, defaults to now")
	f.StringVar(&c.tax, "tax", "", "tax amount included")
	f.BoolVar(&c.debt, "debt", false, "income is borrowed money")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		return c.fail(err)
	}
	tax, err := parseOptionalAmount("tax", c.tax)
	if err != nil {
		return c.fail(err)
	}
	owner, err := parseUser(c.owner)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		date, err := c.parseDate("date", c.date)
		if err != nil {
			return err
		}
		acc, err := resolveAccount(ctx, l, c.account)
		if err != nil {
			return err
		}
		t, err := l.Transactions.AddTransaction(ctx, service.TransactionInput{
			Kind:        models.TransactionKind(c.kind),
			Amount:      amount,
			Category:    c.category,
			AccountID:   acc.ID,
			Owner:       owner,
			Description: c.description,
			Date:        date,
			TaxAmount:   tax,
			IsDebt:      c.debt,
		})
		if err != nil {
			return err
		}
		var md markdown
		md.line("Recorded %s of %s on **%s** (%s).", t.Kind, c.money(t.Amount), cell(acc.Name), t.ID)
		return c.printMarkdown(md.String())
	})
}

// transferCmd moves money between two accounts.
type transferCmd struct {
	*Runner
	from        string
	to          string
	amount      string
	owner       string
	description string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between accounts" }
func (*transferCmd) Usage() string {
	return `transfer -from <id|name> -to <id|name> -amount <amount> -owner A|B [-desc <text>]
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source account ID or name")
	f.StringVar(&c.to, "to", "", "destination account ID or name")
	f.StringVar(&c.amount, "amount", "", "positive amount")
	f.StringVar(&c.owner, "owner", "", "user: A or B")
	f.StringVar(&c.description, "desc", "", "description")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		return c.fail(err)
	}
	owner, err := parseUser(c.owner)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		from, err := resolveAccount(ctx, l, c.from)
		if err != nil {
			return err
		}
		to, err := resolveAccount(ctx, l, c.to)
		if err != nil {
			return err
		}
		if _, err := l.Transactions.TransferFunds(ctx, from.ID, to.ID, amount, owner, c.description); err != nil {
			return err
		}
		var md markdown
		md.line("Moved %s from **%s** to **%s**.", c.money(amount), cell(from.Name), cell(to.Name))
		return c.printMarkdown(md.String())
	})
}

// repayCmd records a repayment against a debt.
type repayCmd struct {
	*Runner
	debt        string
	amount      string
	account     string
	owner       string
	description string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "repay a debt" }
func (*repayCmd) Usage() string {
	return `repay -debt <debt id> -amount <amount> -account <id|name> -owner A|B [-desc <text>]

  Debt IDs are listed by the debts command.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.debt, "debt", "", "ID of the debt transaction")
	f.StringVar(&c.amount, "amount", "", "positive amount")
	f.StringVar(&c.account, "account", "", "paying account ID or name")
	f.StringVar(&c.owner, "owner", "", "user: A or B")
	f.StringVar(&c.description, "desc", "", "description")
}

func (c *repayCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		return c.fail(err)
	}
	owner, err := parseUser(c.owner)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		acc, err := resolveAccount(ctx, l, c.account)
		if err != nil {
			return err
		}
		if _, err := l.Transactions.RepayDebt(ctx, c.debt, amount, acc.ID, owner, c.description); err != nil {
			return err
		}
		var md markdown
		md.line("Repaid %s from **%s**.", c.money(amount), cell(acc.Name))
		return c.printMarkdown(md.String())
	})
}
