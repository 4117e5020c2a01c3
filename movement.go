package capital

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/capital/date"
)

// Endpoint is one side of a Movement: either one of the ledger accounts, or
// an external party known by name.
type Endpoint struct {
	Kind      EndpointKind `json:"kind"`
	AccountID string       `json:"accountId,omitempty"`
	Name      string       `json:"name,omitempty"`
}

// AccountRef returns an endpoint referencing the account id.
func AccountRef(id string) *Endpoint { return &Endpoint{Kind: AccountEndpoint, AccountID: id} }

// External returns an endpoint for an external party.
func External(name string) *Endpoint { return &Endpoint{Kind: ExternalEndpoint, Name: name} }

// Is reports whether e references the account id. It is nil safe.
func (e *Endpoint) Is(accountID string) bool {
	return e != nil && e.Kind == AccountEndpoint && e.AccountID == accountID
}

// account returns the referenced account id, or "" for external and nil endpoints.
func (e *Endpoint) account() string {
	if e == nil || e.Kind != AccountEndpoint {
		return ""
	}
	return e.AccountID
}

func (e Endpoint) validate() error {
	switch e.Kind {
	case AccountEndpoint:
		if e.AccountID == "" {
			return errors.New("account endpoint without account id")
		}
	case ExternalEndpoint:
	default:
		return fmt.Errorf("unknown endpoint kind %q", e.Kind)
	}
	return nil
}

// MarshalJSON writes only the field relevant to the endpoint kind.
func (e Endpoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", e.Kind)
	switch e.Kind {
	case AccountEndpoint:
		w.Append("accountId", e.AccountID)
	default:
		w.Optional("name", e.Name)
	}
	return w.MarshalJSON()
}

// AuditSnapshot records the balances of a movement's endpoints when the
// movement was created.
//
// It is a display cache: it is never recomputed, and balances derived later
// may differ from it (for instance after a settings change).
type AuditSnapshot struct {
	Title      string   `json:"title"`
	Currency   Currency `json:"currency"`
	Amount     float64  `json:"amount"`
	FromBefore float64  `json:"fromBefore"`
	FromAfter  float64  `json:"fromAfter"`
	ToBefore   float64  `json:"toBefore"`
	ToAfter    float64  `json:"toAfter"`
}

// Movement is a transfer of funds into, out of, or between accounts.
//
// CurrencyTo and AmountTo equal CurrencyFrom and AmountFrom unless the
// movement crosses currencies, in which case ExchangeRate records the manual
// rate used. Balances only ever use the source side.
type Movement struct {
	ID           string         `json:"id"`
	Date         date.Date      `json:"date"`
	CreatedAt    time.Time      `json:"createdAt"`
	Type         MovementType   `json:"type"`
	From         *Endpoint      `json:"from,omitempty"`
	To           *Endpoint      `json:"to,omitempty"`
	CurrencyFrom Currency       `json:"currencyFrom"`
	AmountFrom   float64        `json:"amountFrom"`
	CurrencyTo   Currency       `json:"currencyTo"`
	AmountTo     float64        `json:"amountTo"`
	ExchangeRate float64        `json:"exchangeRate,omitempty"`
	Concept      string         `json:"concept"`
	Category     string         `json:"category,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Note         string         `json:"note,omitempty"`
	Status       MovementStatus `json:"status"`
	Audit        *AuditSnapshot `json:"audit,omitempty"`
}

// IsVoided reports whether the movement has been voided.
func (m Movement) IsVoided() bool { return m.Status == Voided }

// Validate checks the movement validity rules.
func (m Movement) Validate() error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if m.Date.IsZero() {
		errs = append(errs, errors.New("missing date"))
	}
	if !m.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown type %q", m.Type))
	}
	if !m.CurrencyFrom.Valid() {
		errs = append(errs, fmt.Errorf("unknown source currency %q", m.CurrencyFrom))
	}
	if !m.CurrencyTo.Valid() {
		errs = append(errs, fmt.Errorf("unknown target currency %q", m.CurrencyTo))
	}
	if m.AmountFrom <= 0 {
		errs = append(errs, fmt.Errorf("amount must be positive, got %v", m.AmountFrom))
	}
	if m.CurrencyTo != m.CurrencyFrom && m.ExchangeRate <= 0 {
		errs = append(errs, errors.New("cross-currency movement without exchange rate"))
	}
	if !m.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", m.Status))
	}
	for _, e := range []*Endpoint{m.From, m.To} {
		if e != nil {
			if err := e.validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	switch m.Type {
	case Deposit:
		if m.To == nil {
			errs = append(errs, errors.New("deposit without destination"))
		}
	case Withdrawal:
		if m.From == nil {
			errs = append(errs, errors.New("withdrawal without source"))
		}
	case Transfer:
		if m.From == nil || m.To == nil {
			errs = append(errs, errors.New("transfer requires a source and a destination"))
		} else if *m.From == *m.To {
			errs = append(errs, errors.New("transfer source and destination are the same"))
		}
	}
	return invalid("movement", m.ID, errs)
}

// MovementPatch lists the movement fields to overwrite. Nil fields are left unchanged.
//
// The status is not part of the patch: voiding is done by VoidMovement and
// cannot be undone.
type MovementPatch struct {
	Date         *date.Date
	Type         *MovementType
	From         **Endpoint
	To           **Endpoint
	CurrencyFrom *Currency
	AmountFrom   *float64
	CurrencyTo   *Currency
	AmountTo     *float64
	ExchangeRate *float64
	Concept      *string
	Category     *string
	Tags         *[]string
	Note         *string
}

func (p MovementPatch) apply(m Movement) Movement {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.From != nil {
		m.From = *p.From
	}
	if p.To != nil {
		m.To = *p.To
	}
	if p.CurrencyFrom != nil {
		m.CurrencyFrom = *p.CurrencyFrom
	}
	if p.AmountFrom != nil {
		m.AmountFrom = *p.AmountFrom
	}
	if p.CurrencyTo != nil {
		m.CurrencyTo = *p.CurrencyTo
	}
	if p.AmountTo != nil {
		m.AmountTo = *p.AmountTo
	}
	if p.ExchangeRate != nil {
		m.ExchangeRate = *p.ExchangeRate
	}
	if p.Concept != nil {
		m.Concept = *p.Concept
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Tags != nil {
		m.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Note != nil {
		m.Note = *p.Note
	}
	return m
}
