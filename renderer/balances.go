package renderer

import (
	"bytes"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// BalancesMarkdown renders one line per account with its native balance and
// its value in LOCAL.
func BalancesMarkdown(s capital.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Balances")

	if len(s.Accounts) == 0 {
		doc.PlainText("No account yet.")
		return doc.String()
	}
	doc.Table(balanceTable(s.Balances(), s.TotalCapitalLocal()))
	return doc.String()
}

func balanceTable(lines []capital.BalanceLine, total float64) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Venue", "Balance", "Value"},
	}
	for _, l := range lines {
		table.Rows = append(table.Rows, []string{
			accountLabel(l.Account),
			string(l.Account.Venue),
			capital.M(l.Balance, l.Account.Currency).String(),
			capital.M(l.Local, capital.Local).String(),
		})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", md.Bold(capital.M(total, capital.Local).String())})
	return table
}

// accountLabel returns the account name, or its id when it has none.
func accountLabel(a capital.Account) string {
	if a.Name == "" {
		return a.ID
	}
	return a.Name
}

// AccountsMarkdown renders the list of accounts with their definition.
func AccountsMarkdown(s capital.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Accounts")

	if len(s.Accounts) == 0 {
		doc.PlainText("No account yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"ID", "Name", "Venue", "Currency", "Initial Balance"},
	}
	for _, a := range s.Accounts {
		table.Rows = append(table.Rows, []string{
			a.ID,
			a.Name,
			string(a.Venue),
			string(a.Currency),
			capital.M(a.InitialBalance, a.Currency).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
