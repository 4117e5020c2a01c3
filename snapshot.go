package capital

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// Snapshot is the full set of entities at a point in time. It is the sole
// input of every derivation.
//
// A Snapshot must be treated as immutable once produced: mutation methods
// copy what they change and return a new Snapshot.
type Snapshot struct {
	Accounts  []Account     `json:"accounts"`
	Orders    []Order       `json:"orders"`
	Expenses  []Expense     `json:"expenses"`
	Reports   []DailyReport `json:"reports"`
	Settings  Settings      `json:"settings"`
	Movements []Movement    `json:"movements"`
}

// Empty returns a snapshot with no entities and the default settings.
func Empty() Snapshot {
	return Snapshot{
		Accounts:  []Account{},
		Orders:    []Order{},
		Expenses:  []Expense{},
		Reports:   []DailyReport{},
		Settings:  DefaultSettings(),
		Movements: []Movement{},
	}
}

// Account returns the account with this id.
func (s Snapshot) Account(id string) (Account, bool) {
	i := slices.IndexFunc(s.Accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, false
	}
	return s.Accounts[i], true
}

// AccountName returns the account's display name, or the id itself for orphaned references.
func (s Snapshot) AccountName(id string) string {
	if a, ok := s.Account(id); ok && a.Name != "" {
		return a.Name
	}
	return id
}

// Order returns the order with this id.
func (s Snapshot) Order(id string) (Order, bool) {
	i := slices.IndexFunc(s.Orders, func(o Order) bool { return o.ID == id })
	if i < 0 {
		return Order{}, false
	}
	return s.Orders[i], true
}

// Movement returns the movement with this id.
func (s Snapshot) Movement(id string) (Movement, bool) {
	i := slices.IndexFunc(s.Movements, func(m Movement) bool { return m.ID == id })
	if i < 0 {
		return Movement{}, false
	}
	return s.Movements[i], true
}

// exchangeAccount returns the first account on the exchange venue.
func (s Snapshot) exchangeAccount() (Account, bool) {
	i := slices.IndexFunc(s.Accounts, func(a Account) bool { return a.Venue == Exchange })
	if i < 0 {
		return Account{}, false
	}
	return s.Accounts[i], true
}

// activeOrders iterates over the orders that take part in computations.
func (s Snapshot) activeOrders() iter.Seq[Order] {
	return func(yield func(Order) bool) {
		for _, o := range s.Orders {
			if !o.IsActive() {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}

// liveMovements iterates over the movements that are not voided.
func (s Snapshot) liveMovements() iter.Seq[Movement] {
	return func(yield func(Movement) bool) {
		for _, m := range s.Movements {
			if m.IsVoided() {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// MovementsByRecency returns the movements, newest first. Movements on the
// same date are ordered by creation time.
func (s Snapshot) MovementsByRecency() []Movement {
	list := slices.Clone(s.Movements)
	slices.SortStableFunc(list, func(a, b Movement) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list
}

// Normalized returns a copy of s where absent values take their defaults:
// nil lists become empty, orders without status are active, movements
// without status are confirmed and movements without a target side mirror
// their source.
//
// Every entity and the settings are then validated with the rules the
// mutations apply, all problems are reported.
func (s Snapshot) Normalized() (Snapshot, error) {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	s.Accounts = slices.Clone(orEmpty(s.Accounts))
	for _, a := range s.Accounts {
		check(a.Validate())
	}

	s.Orders = slices.Clone(orEmpty(s.Orders))
	for i := range s.Orders {
		o := &s.Orders[i]
		if o.Status == "" {
			o.Status = Active
		}
		check(o.Validate())
	}

	s.Expenses = orEmpty(s.Expenses)
	for _, e := range s.Expenses {
		check(e.Validate())
	}

	s.Reports = orEmpty(s.Reports)

	s.Movements = slices.Clone(orEmpty(s.Movements))
	for i := range s.Movements {
		m := &s.Movements[i]
		if m.Status == "" {
			m.Status = Confirmed
		}
		if m.CurrencyTo == "" {
			m.CurrencyTo, m.AmountTo = m.CurrencyFrom, m.AmountFrom
		}
		check(m.Validate())
	}

	if s.Settings.StablecoinMode == "" {
		s.Settings.StablecoinMode = Auto
	}
	check(s.Settings.Validate())

	return s, errors.Join(errs...)
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// String returns a one line description, handy in logs.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d accounts, %d orders, %d expenses, %d movements, %d reports",
		len(s.Accounts), len(s.Orders), len(s.Expenses), len(s.Movements), len(s.Reports))
}
