package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

// accountsCmd lists the accounts visible in a view.
type accountsCmd struct {
	*Runner
	view     string
	inactive bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `accounts [-view A|B|Combined] [-inactive]

  Lists the accounts visible in the view with their current balance.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "Combined", "view: A, B or Combined")
	f.BoolVar(&c.inactive, "inactive", false, "include deactivated accounts")
}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := parseView(c.view)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		accounts, err := l.Accounts.ListAccounts(ctx)
		if err != nil {
			return err
		}

		var md markdown
		md.heading(1, "Accounts (%s)", view)
		total := decimal.Zero
		var rows [][]string
		for _, a := range accounts {
			if !view.Includes(a.Owner) || (!a.IsActive && !c.inactive) {
				continue
			}
			if a.IsActive {
				total = total.Add(a.CurrentBalance)
			}
			rows = append(rows, []string{cell(a.Name), cell(a.Type), string(a.Owner), c.money(a.CurrentBalance), yesNo(a.IsActive), a.ID})
		}
		if len(rows) == 0 {
			md.line("No accounts.")
			return c.printMarkdown(md.String())
		}
		md.table([]string{"Name", "Type", "Owner", "Balance", "Active", "ID"}, rows)
		md.line("**Total cash:** %s", c.money(total))
		return c.printMarkdown(md.String())
	})
}

// openAccountCmd creates an account.
type openAccountCmd struct {
	*Runner
	name    string
	typ     string
	owner   string
	balance string
}

func (*openAccountCmd) Name() string     { return "open-account" }
func (*openAccountCmd) Synopsis() string { return "create an account" }
func (*openAccountCmd) Usage() string {
	return `open-account -name <name> -owner A|B|Shared [-type <type>] [-balance <amount>]
`
}

func (c *openAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "account name")
	f.StringVar(&c.typ, "type", "Bank", "account type, free text")
	f.StringVar(&c.owner, "owner", "", "owner: A, B or Shared")
	f.StringVar(&c.balance, "balance", "0", "opening balance")
}

func (c *openAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	owner, err := models.ParseOwner(c.owner)
	if err != nil {
		return c.fail(usagef("%v", err))
	}
	balance, err := parseAmount("balance", c.balance)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		a, err := l.Accounts.CreateAccount(ctx, c.name, c.typ, owner, balance)
		if err != nil {
			return err
		}
		var md markdown
		md.line("Opened **%s** (%s) for %s with %s.", cell(a.Name), a.ID, a.Owner, c.money(a.CurrentBalance))
		return c.printMarkdown(md.String())
	})
}

// setActiveCmd activates or deactivates an account.
type setActiveCmd struct {
	*Runner
	account string
	active  bool
}

func (*setActiveCmd) Name() string     { return "set-active" }
func (*setActiveCmd) Synopsis() string { return "activate or deactivate an account" }
func (*setActiveCmd) Usage() string {
	return `set-active -account <id|name> [-active=false]
`
}

func (c *setActiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account ID or name")
	f.BoolVar(&c.active, "active", true, "whether the account is active")
}

func (c *setActiveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		acc, err := resolveAccount(ctx, l, c.account)
		if err != nil {
			return err
		}
		a, err := l.Accounts.SetActive(ctx, acc.ID, c.active)
		if err != nil {
			return err
		}
		state := "deactivated"
		if a.IsActive {
			state = "active"
		}
		var md markdown
		md.line("**%s** is now %s.", cell(a.Name), state)
		return c.printMarkdown(md.String())
	})
}

// correctCmd sets an account balance and records the difference as an adjustment.
type correctCmd struct {
	*Runner
	account string
	balance string
}

func (*correctCmd) Name() string     { return "correct" }
func (*correctCmd) Synopsis() string { return "correct an account balance" }
func (*correctCmd) Usage() string {
	return `correct -account <id|name> -balance <amount>

  Sets the balance and records the difference as an Adjustment transaction.
`
}

func (c *correctCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account ID or name")
	f.StringVar(&c.balance, "balance", "", "the actual balance")
}

func (c *correctCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := parseAmount("balance", c.balance)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		acc, err := resolveAccount(ctx, l, c.account)
		if err != nil {
			return err
		}
		adj, err := l.Accounts.CorrectBalance(ctx, acc.ID, balance)
		if err != nil {
			return err
		}
		var md markdown
		if adj == nil {
			md.line("**%s** already holds %s; nothing recorded.", cell(acc.Name), c.money(balance))
		} else {
			md.line("**%s** corrected to %s (%s adjustment of %s).", cell(acc.Name), c.money(balance), adj.Kind, c.money(adj.Amount))
		}
		return c.printMarkdown(md.String())
	})
}
