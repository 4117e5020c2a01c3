package capital

import (
	"math"
	"slices"
	"time"

	"github.com/etnz/capital/date"
	"gonum.org/v1/gonum/stat"
)

// DailyReport is the capital of one day, in both reporting currencies.
//
// The opening figures are fixed when the report is first saved; later saves
// of the same day only refresh the closing figures.
type DailyReport struct {
	ID             string    `json:"id"`
	Date           date.Date `json:"date"`
	OpeningLocal   float64   `json:"openingLocal"`
	ClosingLocal   float64   `json:"closingLocal"`
	OpeningForeign float64   `json:"openingForeign"`
	ClosingForeign float64   `json:"closingForeign"`
	// Accounts maps account ids to their balance converted to LOCAL at save time.
	Accounts map[string]float64 `json:"accounts,omitempty"`
}

// ChangeLocal returns the net change of the day in LOCAL.
func (r DailyReport) ChangeLocal() float64 { return r.ClosingLocal - r.OpeningLocal }

// ChangeForeign returns the net change of the day in FOREIGN.
func (r DailyReport) ChangeForeign() float64 { return r.ClosingForeign - r.OpeningForeign }

// UpsertDailyReport saves the current capital as the report of 'day'.
//
// If a report exists for that day, its opening figures are kept and only the
// closing figures (and account detail) are refreshed. Otherwise the opening
// figures are the closing figures of the most recent report before 'day', or
// the current capital when there is none. Figures are truncated to 2 decimals.
func (s Snapshot) UpsertDailyReport(day date.Date) (DailyReport, Snapshot) {
	v := s.Valuation()
	closingLocal := Truncate2(v.TotalLocal)
	closingForeign := Truncate2(v.TotalForeign)
	detail := make(map[string]float64, len(v.Lines))
	for _, l := range v.Lines {
		detail[l.Account.ID] = Truncate2(l.Local)
	}

	s.Reports = slices.Clone(s.Reports)
	if i := slices.IndexFunc(s.Reports, func(r DailyReport) bool { return r.Date == day }); i >= 0 {
		r := s.Reports[i]
		r.ClosingLocal, r.ClosingForeign, r.Accounts = closingLocal, closingForeign, detail
		s.Reports[i] = r
		return r, s
	}

	r := DailyReport{
		ID:             newID(),
		Date:           day,
		OpeningLocal:   closingLocal,
		ClosingLocal:   closingLocal,
		OpeningForeign: closingForeign,
		ClosingForeign: closingForeign,
		Accounts:       detail,
	}
	if prev, ok := s.reportBefore(day); ok {
		r.OpeningLocal, r.OpeningForeign = prev.ClosingLocal, prev.ClosingForeign
	}
	s.Reports = append(s.Reports, r)
	return r, s
}

// reportBefore returns the most recent report strictly before day.
func (s Snapshot) reportBefore(day date.Date) (DailyReport, bool) {
	var prev DailyReport
	found := false
	for _, r := range s.Reports {
		if r.Date.Before(day) && (!found || r.Date.After(prev.Date)) {
			prev, found = r, true
		}
	}
	return prev, found
}

// SortedReports returns the reports, newest first.
func (s Snapshot) SortedReports() []DailyReport {
	list := slices.Clone(s.Reports)
	slices.SortStableFunc(list, func(a, b DailyReport) int { return b.Date.Compare(a.Date) })
	return list
}

// MonthlySummary aggregates the daily reports and expenses of a month.
type MonthlySummary struct {
	Range date.Range
	// Days is the number of days with a report.
	Days           int
	OpeningLocal   float64
	ClosingLocal   float64
	OpeningForeign float64
	ClosingForeign float64
	// Expenses is the number of expenses of the month.
	Expenses int
	// ExpensesLocal is the month expenses converted to LOCAL at the sell rate.
	ExpensesLocal float64
	// MeanDailyChange is the mean net change in LOCAL of the reported days.
	MeanDailyChange float64
}

func (m MonthlySummary) GainLocal() float64   { return m.ClosingLocal - m.OpeningLocal }
func (m MonthlySummary) GainForeign() float64 { return m.ClosingForeign - m.OpeningForeign }

// MonthlySummary summarizes a calendar month: the opening of its first report,
// the closing of its last one and the month expenses.
func (s Snapshot) MonthlySummary(year int, month time.Month) MonthlySummary {
	sum := MonthlySummary{Range: date.Month(year, month)}

	var reports []DailyReport
	for _, r := range s.Reports {
		if sum.Range.Contains(r.Date) {
			reports = append(reports, r)
		}
	}
	slices.SortStableFunc(reports, func(a, b DailyReport) int { return a.Date.Compare(b.Date) })

	if n := len(reports); n > 0 {
		first, last := reports[0], reports[n-1]
		sum.Days = n
		sum.OpeningLocal, sum.OpeningForeign = first.OpeningLocal, first.OpeningForeign
		sum.ClosingLocal, sum.ClosingForeign = last.ClosingLocal, last.ClosingForeign

		changes := make([]float64, n)
		for i, r := range reports {
			changes[i] = r.ChangeLocal()
		}
		if mean := stat.Mean(changes, nil); !math.IsNaN(mean) {
			sum.MeanDailyChange = mean
		}
	}

	for _, e := range s.Expenses {
		if !sum.Range.Contains(e.Date) {
			continue
		}
		sum.Expenses++
		amount := e.Amount
		if e.Currency == Foreign {
			amount *= s.Settings.SellRate
		}
		sum.ExpensesLocal += amount
	}
	return sum
}
