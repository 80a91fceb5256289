// Package cli implements the ledger's operator commands on top of google/subcommands.
// Every command opens the configured store, runs one service operation and prints the
// result as Markdown.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/app"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
	"github.com/mmynk/ourfinance/internal/storage"
)

// errUsage marks a command-line mistake; the command exits with a usage error.
var errUsage = errors.New("usage")

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// Runner holds what every command needs.
type Runner struct {
	// Open opens the ledger. It is called once per command, after flags are parsed.
	Open func(ctx context.Context) (*app.App, error)
	Out  io.Writer
	Err  io.Writer
	// Plain prints raw Markdown instead of rendering it for the terminal.
	Plain bool

	currency string
	loc      *time.Location
}

// Register adds every ledger command to c.
func Register(c *subcommands.Commander, r *Runner) {
	for _, cmd := range []subcommands.Command{
		&accountsCmd{Runner: r},
		&openAccountCmd{Runner: r},
		&setActiveCmd{Runner: r},
		&correctCmd{Runner: r},
	} {
		c.Register(cmd, "accounts")
	}
	for _, cmd := range []subcommands.Command{
		&transactionsCmd{Runner: r},
		&addCmd{Runner: r},
		&transferCmd{Runner: r},
		&repayCmd{Runner: r},
	} {
		c.Register(cmd, "transactions")
	}
	for _, cmd := range []subcommands.Command{
		&assetsCmd{Runner: r},
		&buyMetalCmd{Runner: r},
		&addHoldingCmd{Runner: r},
	} {
		c.Register(cmd, "assets")
	}
	for _, cmd := range []subcommands.Command{
		&debtsCmd{Runner: r},
		&reportCmd{Runner: r},
		&dashboardCmd{Runner: r},
	} {
		c.Register(cmd, "reports")
	}
	for _, cmd := range []subcommands.Command{
		&settingsCmd{Runner: r},
		&renameCmd{Runner: r},
		&initCmd{Runner: r},
		&hashPasswordCmd{Runner: r},
	} {
		c.Register(cmd, "setup")
	}
}

func (r *Runner) stdout() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) stderr() io.Writer {
	if r.Err == nil {
		return os.Stderr
	}
	return r.Err
}

// run opens the ledger, calls fn and maps its error to an exit status.
func (r *Runner) run(ctx context.Context, fn func(ctx context.Context, l *service.Ledger) error) subcommands.ExitStatus {
	a, err := r.Open(ctx)
	if err != nil {
		fmt.Fprintf(r.stderr(), "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	r.currency = a.Config.LedgerCurrency
	r.loc, err = a.Config.Location()
	if err != nil {
		fmt.Fprintf(r.stderr(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return r.fail(fn(ctx, a.Ledger))
}

func (r *Runner) fail(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(r.stderr(), "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, usagef("-%s is required", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, usagef("invalid -%s %q", name, s)
	}
	return d, nil
}

func parseOptionalAmount(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return parseAmount(name, s)
}

// parseDate parses a YYYY-MM-DD date in the ledger time zone; empty means zero.
func (r *Runner) parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, r.loc)
	if err != nil {
		return time.Time{}, usagef("invalid -%s %q: want YYYY-MM-DD", name, s)
	}
	return t, nil
}

func parseView(s string) (models.ViewMode, error) {
	v, err := models.ParseViewMode(s)
	if err != nil {
		return "", usagef("%v", err)
	}
	return v, nil
}

func parseUser(s string) (models.Owner, error) {
	o, err := models.ParseUser(s)
	if err != nil {
		return "", usagef("%v", err)
	}
	return o, nil
}

// resolveAccount accepts an account ID or a unique account name (case-insensitive).
func resolveAccount(ctx context.Context, l *service.Ledger, ref string) (*models.Account, error) {
	if ref == "" {
		return nil, usagef("account is required")
	}
	accounts, err := l.Accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var byName []*models.Account
	for _, a := range accounts {
		if a.ID == ref {
			return a, nil
		}
		if strings.EqualFold(a.Name, ref) {
			byName = append(byName, a)
		}
	}
	switch len(byName) {
	case 0:
		return nil, fmt.Errorf("account %q: %w", ref, storage.ErrNotFound)
	case 1:
		return byName[0], nil
	}
	return nil, usagef("%d accounts are named %q; use the account ID", len(byName), ref)
}
