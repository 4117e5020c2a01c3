package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capital"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

// accountCmd is a container for account subcommands
type accountCmd struct{}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "add, edit or delete an account" }
func (*accountCmd) Usage() string {
	return `p2pc account <subcommand> [args]

Commands:
  add    - Add an account.
  edit   - Change the definition of an account.
  delete - Delete an account. Its orders, expenses and movements are kept.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {}
func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "account")
	commander.Register(&accountAddCmd{}, "")
	commander.Register(&accountEditCmd{}, "")
	commander.Register(&accountDeleteCmd{}, "")
	return commander.Execute(ctx, args...)
}

type accountAddCmd struct {
	account capital.Account
}

func (*accountAddCmd) Name() string     { return "add" }
func (*accountAddCmd) Synopsis() string { return "add an account" }
func (*accountAddCmd) Usage() string {
	return `p2pc account add -name <name> -venue <venue> -currency <currency> [-initial <amount>] [-id <id>]

  Adds an account. Venues are BANK, CASH and EXCHANGE. Currencies are LOCAL,
  FOREIGN and STABLECOIN. The id is generated when omitted.

Usage Examples:
$ p2pc account add -id bac -name BAC -venue BANK -currency LOCAL -initial 1000
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account.ID, "id", "", "Account id (generated by default)")
	f.StringVar(&c.account.Name, "name", "", "Account name")
	venueVar(f, &c.account.Venue, "venue", "Venue: BANK, CASH or EXCHANGE")
	currencyVar(f, &c.account.Currency, "currency", "Currency: LOCAL, FOREIGN or STABLECOIN")
	f.Float64Var(&c.account.InitialBalance, "initial", 0, "Initial balance")
}

func (c *accountAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account.Name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	_, status := apply("add account", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.AddAccount(c.account)
	})
	return status
}

type accountEditCmd struct {
	name     string
	venue    capital.Venue
	currency capital.Currency
	initial  float64
}

func (*accountEditCmd) Name() string     { return "edit" }
func (*accountEditCmd) Synopsis() string { return "change the definition of an account" }
func (*accountEditCmd) Usage() string {
	return `p2pc account edit [-name <name>] [-venue <venue>] [-currency <currency>] [-initial <amount>] <id>

  Changes the account fields given on the command line. Other fields are left unchanged.
`
}

func (c *accountEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New account name")
	venueVar(f, &c.venue, "venue", "New venue: BANK, CASH or EXCHANGE")
	currencyVar(f, &c.currency, "currency", "New currency: LOCAL, FOREIGN or STABLECOIN")
	f.Float64Var(&c.initial, "initial", 0, "New initial balance")
}

func (c *accountEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, ok := oneArg(f)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: exactly one account id is required.")
		return subcommands.ExitUsageError
	}
	var p capital.AccountPatch
	set := visited(f)
	if set["name"] {
		p.Name = &c.name
	}
	if set["venue"] {
		p.Venue = &c.venue
	}
	if set["currency"] {
		p.Currency = &c.currency
	}
	if set["initial"] {
		p.InitialBalance = &c.initial
	}
	_, status := apply("edit account", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.UpdateAccount(id, p)
	})
	return status
}

type accountDeleteCmd struct{}

func (*accountDeleteCmd) Name() string     { return "delete" }
func (*accountDeleteCmd) Synopsis() string { return "delete an account" }
func (*accountDeleteCmd) Usage() string {
	return `p2pc account delete <id>

  Deletes an account. Orders, expenses and movements referencing it are kept
  but no longer count in any balance.
`
}

func (c *accountDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, ok := oneArg(f)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: exactly one account id is required.")
		return subcommands.ExitUsageError
	}
	_, status := apply("delete account", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.DeleteAccount(id)
	})
	return status
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts" }
func (*accountsCmd) Usage() string {
	return `p2pc accounts

  Lists the accounts with their venue, currency and initial balance.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(renderer.AccountsMarkdown)
}
