package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// CapitalMarkdown renders the capital summary: totals in both reporting
// currencies, the rates in use and the detail per currency and account.
func CapitalMarkdown(s capital.Snapshot) string {
	v := s.Valuation()
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Capital")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header: []string{
			md.Bold("Total Capital"),
			md.Bold(capital.M(v.TotalLocal, capital.Local).String()),
		},
		Rows: [][]string{
			{"In " + capital.Foreign.Code(), capital.M(v.TotalForeign, capital.Foreign).String()},
		},
	})

	doc.H2("Rates")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Rate", "Value"},
		Rows: [][]string{
			{"Buy " + capital.Foreign.Code(), rate(s.Settings.BuyRate)},
			{"Sell " + capital.Foreign.Code(), rate(s.Settings.SellRate)},
			{fmt.Sprintf("%s (%s)", capital.Stablecoin.Code(), v.Mode), rate(v.StablecoinRate)},
		},
	})

	doc.H2("By Currency")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", "Balance"},
	}
	for _, c := range []capital.Currency{capital.Local, capital.Foreign, capital.Stablecoin} {
		if b, ok := v.ByCurrency[c]; ok {
			table.Rows = append(table.Rows, []string{c.Code(), capital.M(b, c).String()})
		}
	}
	doc.Table(table)

	if len(v.Lines) > 0 {
		doc.H2("Accounts")
		doc.Table(balanceTable(v.Lines, v.TotalLocal))
	}
	return doc.String()
}

// rate formats an exchange rate, in LOCAL per unit.
func rate(r float64) string { return fmt.Sprintf("%.4f", r) }

// SettingsMarkdown renders the exchange rate settings.
func SettingsMarkdown(s capital.Settings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Settings")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Setting", "Value"},
		Rows: [][]string{
			{"Buy rate", rate(s.BuyRate)},
			{"Sell rate", rate(s.SellRate)},
			{"Stablecoin mode", string(s.StablecoinMode)},
			{"Manual stablecoin rate", rate(s.ManualStablecoinRate)},
		},
	})
	return doc.String()
}
