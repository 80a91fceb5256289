package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

// assetsCmd lists the metal cards.
type assetsCmd struct {
	*Runner
	view string
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list gold and silver holdings" }
func (*assetsCmd) Usage() string {
	return `assets [-view A|B|Combined]
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "Combined", "view: A, B or Combined")
}

func (c *assetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := parseView(c.view)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		assets, err := l.Assets.ListAssets(ctx)
		if err != nil {
			return err
		}
		var md markdown
		md.heading(1, "Assets (%s)", view)
		invested := decimal.Zero
		var rows [][]string
		for _, a := range assets {
			if !view.Includes(a.Owner) {
				continue
			}
			invested = invested.Add(a.InvestedValue)
			rows = append(rows, []string{
				string(a.MetalType),
				string(a.Owner),
				formatGrams(a.Grams),
				c.money(a.TotalCashPaid),
				c.money(a.TaxDeducted),
				c.money(a.InvestedValue),
				formatDate(a.Date),
			})
		}
		if len(rows) == 0 {
			md.line("No holdings.")
			return c.printMarkdown(md.String())
		}
		md.table([]string{"Metal", "Owner", "Grams", "Cash paid", "Tax", "Invested", "Updated"}, rows)
		md.line("**Total invested:** %s", c.money(invested))
		return c.printMarkdown(md.String())
	})
}

// holdingFlags are shared by buy-metal and add-holding.
type holdingFlags struct {
	owner  string
	metal  string
	amount string
	grams  string
}

func (h *holdingFlags) set(f *flag.FlagSet, amountName, amountUsage string) {
	f.StringVar(&h.owner, "owner", "", "user: A or B")
	f.StringVar(&h.metal, "metal", string(models.MetalGold), "Gold or Silver")
	f.StringVar(&h.amount, amountName, "", amountUsage)
	f.StringVar(&h.grams, "grams", "", "quantity in grams")
}

func (h *holdingFlags) parse(amountName string) (models.Owner, models.MetalType, decimal.Decimal, decimal.Decimal, error) {
	owner, err := parseUser(h.owner)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, err
	}
	metal, err := models.ParseMetalType(h.metal)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, usagef("%v", err)
	}
	amount, err := parseAmount(amountName, h.amount)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, err
	}
	grams, err := parseAmount("grams", h.grams)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, err
	}
	return owner, metal, amount, grams, nil
}

type addHoldingFunc func(ctx context.Context, owner models.Owner, metal models.MetalType, amount, grams decimal.Decimal) (*models.Asset, error)

func (r *Runner) addHolding(ctx context.Context, h *holdingFlags, amountName string, add func(*service.Ledger) addHoldingFunc) subcommands.ExitStatus {
	owner, metal, amount, grams, err := h.parse(amountName)
	if err != nil {
		return r.fail(err)
	}
	return r.run(ctx, func(ctx context.Context, l *service.Ledger) error {
		a, err := add(l)(ctx, owner, metal, amount, grams)
		if err != nil {
			return err
		}
		var md markdown
		md.line("%s now holds %s of %s, %s invested (%s tax).",
			a.Owner, formatGrams(a.Grams), a.MetalType, r.money(a.InvestedValue), r.money(a.TaxDeducted))
		return r.printMarkdown(md.String())
	})
}

// buyMetalCmd records a purchase; 3% of the cash paid is tax.
type buyMetalCmd struct {
	*Runner
	holdingFlags
}

func (*buyMetalCmd) Name() string     { return "buy-metal" }
func (*buyMetalCmd) Synopsis() string { return "record a gold or silver purchase" }
func (*buyMetalCmd) Usage() string {
	return `buy-metal -owner A|B -metal Gold|Silver -paid <amount> -grams <grams>

  3% of the cash paid is recorded as purchase tax.
`
}

func (c *buyMetalCmd) SetFlags(f *flag.FlagSet) {
	c.holdingFlags.set(f, "paid", "total cash paid, tax included")
}

func (c *buyMetalCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.addHolding(ctx, &c.holdingFlags, "paid", func(l *service.Ledger) addHoldingFunc { return l.Assets.AddAsset })
}

// addHoldingCmd records metal bought before tracking began.
type addHoldingCmd struct {
	*Runner
	holdingFlags
}

func (*addHoldingCmd) Name() string     { return "add-holding" }
func (*addHoldingCmd) Synopsis() string { return "record an existing gold or silver holding" }
func (*addHoldingCmd) Usage() string {
	return `add-holding -owner A|B -metal Gold|Silver -value <amount> -grams <grams>

  The value is taken as invested, with no tax.
`
}

func (c *addHoldingCmd) SetFlags(f *flag.FlagSet) {
	c.holdingFlags.set(f, "value", "invested value")
}

func (c *addHoldingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.addHolding(ctx, &c.holdingFlags, "value", func(l *service.Ledger) addHoldingFunc { return l.Assets.AddExistingAsset })
}
