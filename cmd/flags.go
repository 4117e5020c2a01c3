package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
)

// dateValue is a flag.Value for a date.Date.
type dateValue struct{ d *date.Date }

func (v dateValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v dateValue) Set(s string) error {
	d, err := date.Parse(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

// enumValue is a flag.Value for one of the capital enumerations.
type enumValue[T ~string] struct {
	v     *T
	parse func(string) (T, error)
}

func (e enumValue[T]) String() string {
	if e.v == nil {
		return ""
	}
	return string(*e.v)
}

func (e enumValue[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	*e.v = v
	return nil
}

func currencyVar(f *flag.FlagSet, p *capital.Currency, name, usage string) {
	f.Var(enumValue[capital.Currency]{p, capital.ParseCurrency}, name, usage)
}

func venueVar(f *flag.FlagSet, p *capital.Venue, name, usage string) {
	f.Var(enumValue[capital.Venue]{p, capital.ParseVenue}, name, usage)
}

// tagsValue collects tags from repeated or comma separated flags.
type tagsValue []string

func (t *tagsValue) String() string { return strings.Join(*t, ",") }

func (t *tagsValue) Set(value string) error {
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			*t = append(*t, tag)
		}
	}
	return nil
}

// visited returns the names of the flags actually set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// oneArg returns the single argument of a command.
func oneArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		return "", false
	}
	return f.Arg(0), true
}
