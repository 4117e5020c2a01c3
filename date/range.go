package date

import "time"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Month returns the range covering a whole calendar month.
func Month(year int, month time.Month) Range {
	first := New(year, month, 1)
	return Range{From: first, To: first.EndOfMonth()}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Identifier returns "2006-01" for a calendar month range, and "from_to" otherwise.
func (r Range) Identifier() string {
	if r.From.Day() == 1 && r.From.EndOfMonth() == r.To {
		return r.From.Format("2006-01")
	}
	return r.From.String() + "_" + r.To.String()
}
