package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

type orderCmd struct {
	order  capital.Order
	edit   bool
	delete bool
}

func (*orderCmd) Name() string     { return "order" }
func (*orderCmd) Synopsis() string { return "record, edit or delete a P2P order" }
func (*orderCmd) Usage() string {
	return `p2pc order -side <BUY|SELL> -currency <currency> -qty <usdt> -price <price> -account <id> [-commission <usdt>] [-date <date>] [-id <id>]
p2pc order -edit -id <id> [flags to change]
p2pc order -delete -id <id>

  Records a P2P order: the trader buys or sells -qty stablecoins at -price,
  settled in -currency through the account -account. The commission is paid
  in stablecoin to the exchange.

  With -edit, only the flags given on the command line are changed.

Usage Examples:
$ p2pc order -id o1 -date 2025-01-02 -side BUY -currency LOCAL -qty 100 -price 37 -commission 0.1 -account bac
$ p2pc order -edit -id o1 -price 37.2
`
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	c.order.Date = date.Today()
	f.StringVar(&c.order.ID, "id", "", "Order id (generated for new orders)")
	f.Var(dateValue{&c.order.Date}, "date", "Order date (defaults to today)")
	f.Var(enumValue[capital.Side]{&c.order.Side, capital.ParseSide}, "side", "Order side: BUY or SELL")
	currencyVar(f, &c.order.Currency, "currency", "Settlement currency: LOCAL or FOREIGN")
	f.Float64Var(&c.order.Quantity, "qty", 0, "Quantity of stablecoins")
	f.Float64Var(&c.order.UnitPrice, "price", 0, "Price of one stablecoin in the settlement currency")
	f.Float64Var(&c.order.Commission, "commission", 0, "Commission in stablecoins")
	f.StringVar(&c.order.AccountID, "account", "", "Id of the account the order is settled with")
	f.BoolVar(&c.edit, "edit", false, "Change the order -id instead of recording a new one")
	f.BoolVar(&c.delete, "delete", false, "Delete the order -id")
}

func (c *orderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.edit && c.delete:
		fmt.Fprintln(os.Stderr, "Error: -edit and -delete are exclusive.")
		return subcommands.ExitUsageError
	case (c.edit || c.delete) && c.order.ID == "":
		fmt.Fprintln(os.Stderr, "Error: -id is required to edit or delete an order.")
		return subcommands.ExitUsageError
	case c.delete:
		_, status := apply("delete order", func(s capital.Snapshot) (capital.Snapshot, error) {
			return s.DeleteOrder(c.order.ID)
		})
		return status
	case c.edit:
		p := c.patch(visited(f))
		_, status := apply("edit order", func(s capital.Snapshot) (capital.Snapshot, error) {
			return s.UpdateOrder(c.order.ID, p)
		})
		return status
	}
	_, status := apply("add order", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.AddOrder(c.order)
	})
	return status
}

// patch returns the changes requested by the flags in set.
func (c *orderCmd) patch(set map[string]bool) capital.OrderPatch {
	var p capital.OrderPatch
	o := c.order
	if set["date"] {
		p.Date = &o.Date
	}
	if set["side"] {
		p.Side = &o.Side
	}
	if set["currency"] {
		p.Currency = &o.Currency
	}
	if set["qty"] {
		p.Quantity = &o.Quantity
	}
	if set["price"] {
		p.UnitPrice = &o.UnitPrice
	}
	if set["commission"] {
		p.Commission = &o.Commission
	}
	if set["account"] {
		p.AccountID = &o.AccountID
	}
	return p
}

type ordersCmd struct {
	active bool
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list the P2P orders" }
func (*ordersCmd) Usage() string {
	return `p2pc orders [-active]

  Lists the orders, newest first. Canceled orders are listed with their status
  unless -active is set.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.active, "active", false, "List only active orders")
}

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(func(s capital.Snapshot) string { return renderer.OrdersMarkdown(s, c.active) })
}

type cancelCmd struct{}

func (*cancelCmd) Name() string     { return "cancel" }
func (*cancelCmd) Synopsis() string { return "cancel an order" }
func (*cancelCmd) Usage() string {
	return `p2pc cancel <id>

  Cancels an order. It is kept but no longer counts in any balance.
  Use 'p2pc restore <id>' to undo.
`
}

func (c *cancelCmd) SetFlags(f *flag.FlagSet) {}

func (c *cancelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, ok := oneArg(f)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: exactly one order id is required.")
		return subcommands.ExitUsageError
	}
	_, status := apply("cancel order", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.CancelOrder(id)
	})
	return status
}

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a canceled order" }
func (*restoreCmd) Usage() string {
	return `p2pc restore <id>

  Makes a canceled order active again.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, ok := oneArg(f)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: exactly one order id is required.")
		return subcommands.ExitUsageError
	}
	_, status := apply("restore order", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.RestoreOrder(id)
	})
	return status
}
