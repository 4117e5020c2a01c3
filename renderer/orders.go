package renderer

import (
	"bytes"
	"slices"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// OrdersMarkdown renders the orders, newest first. Canceled orders are listed
// with their status unless activeOnly is set.
func OrdersMarkdown(s capital.Snapshot, activeOnly bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Orders")

	orders := slices.Clone(s.Orders)
	slices.SortStableFunc(orders, func(a, b capital.Order) int { return b.Date.Compare(a.Date) })

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Date", "ID", "Side", "Quantity", "Price", "Total", "Account", "Status"},
	}
	for _, o := range orders {
		if activeOnly && !o.IsActive() {
			continue
		}
		table.Rows = append(table.Rows, []string{
			o.Date.String(),
			o.ID,
			string(o.Side),
			capital.M(o.Received(), capital.Stablecoin).String(),
			capital.M(o.UnitPrice, o.Currency).String(),
			capital.M(o.Total(), o.Currency).String(),
			s.AccountName(o.AccountID),
			string(o.Status),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No order.")
		return doc.String()
	}
	doc.Table(table)
	return doc.String()
}
