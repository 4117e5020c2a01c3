package renderer

import (
	"bytes"
	"cmp"
	"slices"
	"strconv"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// ReportsMarkdown renders the list of daily reports, newest first.
func ReportsMarkdown(s capital.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Daily Reports")

	reports := s.SortedReports()
	if len(reports) == 0 {
		doc.PlainText("No report saved.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Opening", "Closing", "Change", "Change " + capital.Foreign.Code()},
	}
	for _, r := range reports {
		table.Rows = append(table.Rows, []string{
			r.Date.String(),
			capital.M(r.OpeningLocal, capital.Local).String(),
			capital.M(r.ClosingLocal, capital.Local).String(),
			capital.M(r.ChangeLocal(), capital.Local).SignedString(),
			capital.M(r.ChangeForeign(), capital.Foreign).SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// DailyReportMarkdown renders a single daily report with its account detail.
func DailyReportMarkdown(s capital.Snapshot, r capital.DailyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Daily Report " + r.Date.String())

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", capital.Local.Code(), capital.Foreign.Code()},
		Rows: [][]string{
			{"Opening", capital.M(r.OpeningLocal, capital.Local).String(), capital.M(r.OpeningForeign, capital.Foreign).String()},
			{"Closing", capital.M(r.ClosingLocal, capital.Local).String(), capital.M(r.ClosingForeign, capital.Foreign).String()},
			{md.Bold("Change"), md.Bold(capital.M(r.ChangeLocal(), capital.Local).SignedString()), md.Bold(capital.M(r.ChangeForeign(), capital.Foreign).SignedString())},
		},
	})

	if len(r.Accounts) > 0 {
		doc.H2("Accounts")
		type line struct {
			name  string
			value float64
		}
		var lines []line
		for id, v := range r.Accounts {
			name := s.AccountName(id)
			if name == "" {
				name = id
			}
			lines = append(lines, line{name, v})
		}
		slices.SortFunc(lines, func(a, b line) int { return cmp.Compare(a.name, b.name) })

		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Account", "Value"},
		}
		for _, l := range lines {
			table.Rows = append(table.Rows, []string{l.name, capital.M(l.value, capital.Local).String()})
		}
		doc.Table(table)
	}
	return doc.String()
}

// MonthlyMarkdown renders the summary of a month.
func MonthlyMarkdown(m capital.MonthlySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Monthly Summary " + m.Range.Identifier())

	if m.Days == 0 && m.Expenses == 0 {
		doc.PlainText("No report nor expense this month.")
		return doc.String()
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", capital.Local.Code(), capital.Foreign.Code()},
		Rows: [][]string{
			{"Opening", capital.M(m.OpeningLocal, capital.Local).String(), capital.M(m.OpeningForeign, capital.Foreign).String()},
			{"Closing", capital.M(m.ClosingLocal, capital.Local).String(), capital.M(m.ClosingForeign, capital.Foreign).String()},
			{md.Bold("Gain"), md.Bold(capital.M(m.GainLocal(), capital.Local).SignedString()), md.Bold(capital.M(m.GainForeign(), capital.Foreign).SignedString())},
		},
	})
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Activity", ""},
		Rows: [][]string{
			{"Reported days", strconv.Itoa(m.Days)},
			{"Mean daily change", capital.M(m.MeanDailyChange, capital.Local).SignedString()},
			{"Expenses", strconv.Itoa(m.Expenses)},
			{"Total expenses", capital.M(m.ExpensesLocal, capital.Local).String()},
		},
	})
	return doc.String()
}
