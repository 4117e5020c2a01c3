package capital

import (
	"errors"
	"fmt"

	"github.com/etnz/capital/date"
)

// Expense is money spent from an account. It has no cancel state.
type Expense struct {
	ID        string    `json:"id"`
	Date      date.Date `json:"date"`
	Concept   string    `json:"concept"`
	Amount    float64   `json:"amount"`
	Currency  Currency  `json:"currency"`
	AccountID string    `json:"accountId"`
}

// Validate checks the expense validity rules.
func (e Expense) Validate() error {
	var errs []error
	if e.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if e.Date.IsZero() {
		errs = append(errs, errors.New("missing date"))
	}
	if e.Amount <= 0 {
		errs = append(errs, fmt.Errorf("amount must be positive, got %v", e.Amount))
	}
	if !e.Currency.IsFiat() {
		errs = append(errs, fmt.Errorf("currency must be %s or %s, got %q", Local, Foreign, e.Currency))
	}
	return invalid("expense", e.ID, errs)
}

// ExpensePatch lists the expense fields to overwrite. Nil fields are left unchanged.
type ExpensePatch struct {
	Date      *date.Date
	Concept   *string
	Amount    *float64
	Currency  *Currency
	AccountID *string
}

func (p ExpensePatch) apply(e Expense) Expense {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Concept != nil {
		e.Concept = *p.Concept
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.AccountID != nil {
		e.AccountID = *p.AccountID
	}
	return e
}
