package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/google/subcommands"
)

type expenseCmd struct {
	expense capital.Expense
	edit    bool
	delete  bool
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record, edit or delete an expense" }
func (*expenseCmd) Usage() string {
	return `p2pc expense -amount <amount> -currency <LOCAL|FOREIGN> -account <id> [-concept <text>] [-date <date>] [-id <id>]
p2pc expense -edit -id <id> [flags to change]
p2pc expense -delete -id <id>

  Records money spent from a fiat account.

Usage Examples:
$ p2pc expense -date 2025-03-04 -concept groceries -amount 50 -currency LOCAL -account cash
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	e := &c.expense
	e.Date = date.Today()
	f.StringVar(&e.ID, "id", "", "Expense id (generated for new expenses)")
	f.Var(dateValue{&e.Date}, "date", "Expense date (defaults to today)")
	f.StringVar(&e.Concept, "concept", "", "What the money was spent on")
	f.Float64Var(&e.Amount, "amount", 0, "Amount spent")
	currencyVar(f, &e.Currency, "currency", "Currency: LOCAL or FOREIGN")
	f.StringVar(&e.AccountID, "account", "", "Id of the account the money is taken from")
	f.BoolVar(&c.edit, "edit", false, "Change the expense -id instead of recording a new one")
	f.BoolVar(&c.delete, "delete", false, "Delete the expense -id")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.edit && c.delete:
		fmt.Fprintln(os.Stderr, "Error: -edit and -delete are exclusive.")
		return subcommands.ExitUsageError
	case (c.edit || c.delete) && c.expense.ID == "":
		fmt.Fprintln(os.Stderr, "Error: -id is required to edit or delete an expense.")
		return subcommands.ExitUsageError
	case c.delete:
		_, status := apply("delete expense", func(s capital.Snapshot) (capital.Snapshot, error) {
			return s.DeleteExpense(c.expense.ID)
		})
		return status
	case c.edit:
		p := c.patch(visited(f))
		_, status := apply("edit expense", func(s capital.Snapshot) (capital.Snapshot, error) {
			return s.UpdateExpense(c.expense.ID, p)
		})
		return status
	}
	_, status := apply("add expense", func(s capital.Snapshot) (capital.Snapshot, error) {
		return s.AddExpense(c.expense)
	})
	return status
}

// patch returns the changes requested by the flags in set.
func (c *expenseCmd) patch(set map[string]bool) capital.ExpensePatch {
	var p capital.ExpensePatch
	e := c.expense
	if set["date"] {
		p.Date = &e.Date
	}
	if set["concept"] {
		p.Concept = &e.Concept
	}
	if set["amount"] {
		p.Amount = &e.Amount
	}
	if set["currency"] {
		p.Currency = &e.Currency
	}
	if set["account"] {
		p.AccountID = &e.AccountID
	}
	return p
}
