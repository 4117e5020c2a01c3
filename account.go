package capital

import (
	"errors"
	"fmt"
)

// Account is a place holding money in a single currency: a bank account, a
// cash box or the exchange wallet.
type Account struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Venue          Venue    `json:"venue"`
	Currency       Currency `json:"currency"`
	InitialBalance float64  `json:"initialBalance"`
}

// Validate checks the account validity rules.
func (a Account) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if !a.Venue.Valid() {
		errs = append(errs, fmt.Errorf("unknown venue %q", a.Venue))
	}
	if !a.Currency.Valid() {
		errs = append(errs, fmt.Errorf("unknown currency %q", a.Currency))
	}
	return invalid("account", a.ID, errs)
}

// AccountPatch lists the account fields to overwrite. Nil fields are left unchanged.
type AccountPatch struct {
	Name           *string
	Venue          *Venue
	Currency       *Currency
	InitialBalance *float64
}

func (p AccountPatch) apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Venue != nil {
		a.Venue = *p.Venue
	}
	if p.Currency != nil {
		a.Currency = *p.Currency
	}
	if p.InitialBalance != nil {
		a.InitialBalance = *p.InitialBalance
	}
	return a
}
