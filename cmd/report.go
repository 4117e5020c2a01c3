package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

type saveReportCmd struct {
	date date.Date
}

func (*saveReportCmd) Name() string     { return "save-report" }
func (*saveReportCmd) Synopsis() string { return "save the daily report" }
func (*saveReportCmd) Usage() string {
	return `p2pc save-report [-date <date>]

  Saves the capital of the day as a daily report. The opening capital is the
  closing of the previous report, or the current capital when there is none.

  Saving again on the same day keeps the opening capital and refreshes the
  closing one.
`
}

func (c *saveReportCmd) SetFlags(f *flag.FlagSet) {
	c.date = date.Today()
	f.Var(dateValue{&c.date}, "date", "Report date (defaults to today)")
}

func (c *saveReportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r capital.DailyReport
	s, status := apply("save report", func(s capital.Snapshot) (capital.Snapshot, error) {
		var next capital.Snapshot
		r, next = s.UpsertDailyReport(c.date)
		return next, nil
	})
	if status == subcommands.ExitSuccess {
		printMarkdown(renderer.DailyReportMarkdown(s, r))
	}
	return status
}

type reportsCmd struct {
	date string
}

func (*reportsCmd) Name() string     { return "reports" }
func (*reportsCmd) Synopsis() string { return "list the saved daily reports" }
func (*reportsCmd) Usage() string {
	return `p2pc reports [-date <date>]

  Lists the saved daily reports, newest first. With -date, displays the
  report of that day in detail.
`
}

func (c *reportsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Display the report of this day")
}

func (c *reportsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.date == "" {
		return show(renderer.ReportsMarkdown)
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, r := range s.Reports {
		if r.Date.Equal(day) {
			printMarkdown(renderer.DailyReportMarkdown(s, r))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no report saved on %s.\n", day)
	return subcommands.ExitFailure
}

type monthlyCmd struct {
	month string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display a monthly summary" }
func (*monthlyCmd) Usage() string {
	return `p2pc monthly [-month <YYYY-MM>]

  Summarizes a month: the capital at the opening of its first report and at
  the closing of its last one, the mean daily change and the expenses.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to summarize, as YYYY-MM (defaults to the current month)")
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, month, err := parseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return show(func(s capital.Snapshot) string {
		return renderer.MonthlyMarkdown(s.MonthlySummary(year, month))
	})
}

// parseMonth parses a YYYY-MM month. The empty string is the current month.
func parseMonth(s string) (int, time.Month, error) {
	if s == "" {
		today := date.Today()
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
