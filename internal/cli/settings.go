package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/ourfinance/internal/auth"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

// settingsCmd lists the settings.
type settingsCmd struct {
	*Runner
}

func (*settingsCmd) Name() string             { return "settings" }
func (*settingsCmd) Synopsis() string         { return "list settings" }
func (*settingsCmd) Usage() string            { return "settings\n" }
func (*settingsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *settingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		return c.printSettings(ctx, l)
	})
}

func (r *Runner) printSettings(ctx context.Context, l *service.Ledger) error {
	settings, err := l.Settings.ListSettings(ctx)
	if err != nil {
		return err
	}
	var md markdown
	md.heading(1, "Settings")
	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{cell(s.Key), cell(s.Value)})
	}
	md.table([]string{"Key", "Value"}, rows)
	return r.printMarkdown(md.String())
}

// renameCmd changes a user's display name.
type renameCmd struct {
	*Runner
	user string
	name string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "change a user's display name" }
func (*renameCmd) Usage() string {
	return `rename -user A|B -name <display name>
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "user: A or B")
	f.StringVar(&c.name, "name", "", "new display name")
}

func (c *renameCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	owner, err := parseUser(c.user)
	if err != nil {
		return c.fail(err)
	}
	key := models.SettingUserAName
	if owner == models.OwnerB {
		key = models.SettingUserBName
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		if err := l.Settings.UpdateDisplayName(ctx, key, c.name); err != nil {
			return err
		}
		return c.printSettings(ctx, l)
	})
}

// initCmd prepares the store: SQLite migrations or sheet headers and default settings.
type initCmd struct {
	*Runner
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "prepare the configured store" }
func (*initCmd) Usage() string {
	return `init

  Creates the SQLite schema, or the sheet headers and default settings, then lists
  the settings. Running it again is harmless.
`
}
func (*initCmd) SetFlags(_ *flag.FlagSet) {}

func (c *initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		var md markdown
		md.line("Store ready.")
		md.line("")
		if err := c.printMarkdown(md.String()); err != nil {
			return err
		}
		return c.printSettings(ctx, l)
	})
}

// hashPasswordCmd prints the bcrypt hash to configure as USER_A_PASSWORD_HASH or
// USER_B_PASSWORD_HASH. It does not open the store.
type hashPasswordCmd struct {
	*Runner
	// In is read for the password; nil means stdin.
	In io.Reader
}

func (*hashPasswordCmd) Name() string     { return "hash-password" }
func (*hashPasswordCmd) Synopsis() string { return "hash a login password for the server config" }
func (*hashPasswordCmd) Usage() string {
	return `hash-password

  Reads a password from stdin and prints its bcrypt hash.
`
}
func (*hashPasswordCmd) SetFlags(_ *flag.FlagSet) {}

func (c *hashPasswordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	password, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return c.fail(fmt.Errorf("failed to read password: %w", err))
	}
	hash, err := auth.HashPassword(strings.TrimRight(password, "\r\n"))
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.stdout(), hash)
	return subcommands.ExitSuccess
}
