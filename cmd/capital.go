package cmd

import (
	"context"
	"flag"

	"github.com/etnz/capital"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	settings capital.Settings
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or change the exchange rates" }
func (*settingsCmd) Usage() string {
	return `p2pc settings [-buy <rate>] [-sell <rate>] [-mode <AUTO|MANUAL>] [-manual <rate>]

  Without flags, displays the exchange rate settings. Otherwise changes the
  settings given on the command line then displays them.

  -buy values foreign currency orders in local currency, -sell values foreign
  currency balances. The stablecoin rate is the average cost of active buy
  orders in AUTO mode, and -manual in MANUAL mode.

  Saved reports are never recomputed after a change.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.settings.BuyRate, "buy", 0, "Buy rate, LOCAL per FOREIGN")
	f.Float64Var(&c.settings.SellRate, "sell", 0, "Sell rate, LOCAL per FOREIGN")
	f.Var(enumValue[capital.RateMode]{&c.settings.StablecoinMode, capital.ParseRateMode}, "mode", "Stablecoin rate mode: AUTO or MANUAL")
	f.Float64Var(&c.settings.ManualStablecoinRate, "manual", 0, "Stablecoin rate used in MANUAL mode, LOCAL per USDT")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	if len(set) == 0 {
		return show(func(s capital.Snapshot) string { return renderer.SettingsMarkdown(s.Settings) })
	}

	var p capital.SettingsPatch
	if set["buy"] {
		p.BuyRate = &c.settings.BuyRate
	}
	if set["sell"] {
		p.SellRate = &c.settings.SellRate
	}
	if set["mode"] {
		p.StablecoinMode = &c.settings.StablecoinMode
	}
	if set["manual"] {
		p.ManualStablecoinRate = &c.settings.ManualStablecoinRate
	}
	s, status := apply("update settings", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.UpdateSettings(p)
	})
	if status == subcommands.ExitSuccess {
		printMarkdown(renderer.SettingsMarkdown(s.Settings))
	}
	return status
}

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of every account" }
func (*balanceCmd) Usage() string {
	return `p2pc balance

  Displays the balance of every account in its own currency, and its value in
  local currency.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(renderer.BalancesMarkdown)
}

type capitalCmd struct{}

func (*capitalCmd) Name() string     { return "capital" }
func (*capitalCmd) Synopsis() string { return "display the total capital" }
func (*capitalCmd) Usage() string {
	return `p2pc capital

  Displays the total capital in local and foreign currency, the rates used,
  and the detail per currency and per account.
`
}

func (c *capitalCmd) SetFlags(f *flag.FlagSet) {}

func (c *capitalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(renderer.CapitalMarkdown)
}
