package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/ourfinance/internal/app"
	"github.com/mmynk/ourfinance/internal/cli"
	"github.com/mmynk/ourfinance/internal/config"
	"github.com/mmynk/ourfinance/pkg/logging"
)

var (
	envFile = flag.String("env", ".env", "path to a .env file; missing files are ignored")
	plain   = flag.Bool("plain", false, "print raw Markdown instead of rendering it")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	runner := &cli.Runner{
		Open: func(ctx context.Context) (*app.App, error) {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return nil, err
			}
			// Only warnings and errors by default; command output goes to stdout.
			level := cfg.LogLevel
			if level == "info" {
				level = "warn"
			}
			logging.Setup(level, cfg.LogFormat)
			return app.Open(ctx, cfg)
		},
	}
	cli.Register(commander, runner)

	flag.Parse()
	runner.Plain = *plain
	os.Exit(int(commander.Execute(context.Background())))
}
