package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

// externalPrefix marks an endpoint flag naming an external party instead of an account.
const externalPrefix = "ext:"

// endpointValue is a flag.Value for a movement endpoint: an account id, or
// "ext:<name>" for an external party.
type endpointValue struct{ e **capital.Endpoint }

func (v endpointValue) String() string {
	if v.e == nil || *v.e == nil {
		return ""
	}
	e := *v.e
	if e.Kind == capital.ExternalEndpoint {
		return externalPrefix + e.Name
	}
	return e.AccountID
}

func (v endpointValue) Set(s string) error {
	switch {
	case s == "":
		*v.e = nil
	case strings.HasPrefix(s, externalPrefix):
		*v.e = capital.External(strings.TrimPrefix(s, externalPrefix))
	default:
		*v.e = capital.AccountRef(s)
	}
	return nil
}

type movementCmd struct {
	movement capital.Movement
	tags     tagsValue
	edit     bool
}

func (*movementCmd) Name() string     { return "movement" }
func (*movementCmd) Synopsis() string { return "record or edit a deposit, withdrawal or transfer" }
func (*movementCmd) Usage() string {
	return `p2pc movement -type <type> [-from <endpoint>] [-to <endpoint>] -currency <currency> -amount <amount> [flags]
p2pc movement -edit -id <id> [flags to change]

  Records a fund movement. Types are DEPOSIT (needs -to), WITHDRAWAL (needs
  -from) and TRANSFER (needs both). An endpoint is an account id, or
  "ext:<name>" for an external party.

  A movement crossing currencies gives the received side with -to-currency,
  -to-amount and the -rate used. Balances only use the sent side.

  The balances of the accounts involved are recorded with the movement.

Usage Examples:
$ p2pc movement -type TRANSFER -from bac -to cash -currency LOCAL -amount 200 -concept "pocket money" -tags weekly
$ p2pc movement -type WITHDRAWAL -from bac -to ext:Landlord -currency LOCAL -amount 500 -category rent
`
}

func (c *movementCmd) SetFlags(f *flag.FlagSet) {
	m := &c.movement
	m.Date = date.Today()
	f.StringVar(&m.ID, "id", "", "Movement id (generated for new movements)")
	f.Var(dateValue{&m.Date}, "date", "Movement date (defaults to today)")
	f.Var(enumValue[capital.MovementType]{&m.Type, capital.ParseMovementType}, "type", "Movement type: DEPOSIT, WITHDRAWAL or TRANSFER")
	f.Var(endpointValue{&m.From}, "from", "Source: account id or ext:<name>")
	f.Var(endpointValue{&m.To}, "to", "Destination: account id or ext:<name>")
	currencyVar(f, &m.CurrencyFrom, "currency", "Currency sent")
	f.Float64Var(&m.AmountFrom, "amount", 0, "Amount sent")
	currencyVar(f, &m.CurrencyTo, "to-currency", "Currency received (defaults to -currency)")
	f.Float64Var(&m.AmountTo, "to-amount", 0, "Amount received (defaults to -amount)")
	f.Float64Var(&m.ExchangeRate, "rate", 0, "Exchange rate used by a cross currency movement")
	f.StringVar(&m.Concept, "concept", "", "What the movement is for")
	f.StringVar(&m.Category, "category", "", "Category")
	f.Var(&c.tags, "tags", "Comma separated tags (can be specified multiple times)")
	f.StringVar(&m.Note, "note", "", "Free note")
	f.BoolVar(&c.edit, "edit", false, "Change the movement -id instead of recording a new one")
}

func (c *movementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.movement.Tags = c.tags
	if c.edit {
		if c.movement.ID == "" {
			fmt.Fprintln(os.Stderr, "Error: -id is required to edit a movement.")
			return subcommands.ExitUsageError
		}
		p := c.patch(visited(f))
		_, status := apply("edit movement", func(s capital.Snapshot) (capital.Snapshot, error) {
			return s.UpdateMovement(c.movement.ID, p)
		})
		return status
	}

	s, status := apply("add movement", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.AddMovement(c.movement)
	})
	if status == subcommands.ExitSuccess {
		m := s.Movements[len(s.Movements)-1]
		fmt.Fprintln(out, renderer.Movement(s, m))
	}
	return status
}

// patch returns the changes requested by the flags in set.
func (c *movementCmd) patch(set map[string]bool) capital.MovementPatch {
	var p capital.MovementPatch
	m := c.movement
	if set["date"] {
		p.Date = &m.Date
	}
	if set["type"] {
		p.Type = &m.Type
	}
	if set["from"] {
		p.From = &m.From
	}
	if set["to"] {
		p.To = &m.To
	}
	if set["currency"] {
		p.CurrencyFrom = &m.CurrencyFrom
	}
	if set["amount"] {
		p.AmountFrom = &m.AmountFrom
	}
	if set["to-currency"] {
		p.CurrencyTo = &m.CurrencyTo
	}
	if set["to-amount"] {
		p.AmountTo = &m.AmountTo
	}
	if set["rate"] {
		p.ExchangeRate = &m.ExchangeRate
	}
	if set["concept"] {
		p.Concept = &m.Concept
	}
	if set["category"] {
		p.Category = &m.Category
	}
	if set["tags"] {
		p.Tags = &m.Tags
	}
	if set["note"] {
		p.Note = &m.Note
	}
	return p
}

type voidCmd struct{}

func (*voidCmd) Name() string     { return "void" }
func (*voidCmd) Synopsis() string { return "void a movement" }
func (*voidCmd) Usage() string {
	return `p2pc void <id>

  Voids a movement. It stays in the history but no longer counts in any
  balance. Voiding cannot be undone.
`
}

func (c *voidCmd) SetFlags(f *flag.FlagSet) {}

func (c *voidCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, ok := oneArg(f)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: exactly one movement id is required.")
		return subcommands.ExitUsageError
	}
	_, status := apply("void movement", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.VoidMovement(id)
	})
	return status
}

type movementsCmd struct{}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "display the movement history" }
func (*movementsCmd) Usage() string {
	return `p2pc movements

  Displays the movements, newest first, with the balances recorded when they
  were created. Voided movements are struck through.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {}

func (c *movementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(renderer.MovementsMarkdown)
}
