package capital

import (
	"errors"
	"fmt"

	"github.com/etnz/capital/date"
)

// Order is a P2P trade: the trader buys or sells Quantity stablecoins at
// UnitPrice, settled in Currency through the account AccountID.
//
// The Commission is paid in stablecoin to the exchange.
type Order struct {
	ID         string      `json:"id"`
	Date       date.Date   `json:"date"`
	Side       Side        `json:"side"`
	Currency   Currency    `json:"currency"`
	Quantity   float64     `json:"quantity"`
	UnitPrice  float64     `json:"unitPrice"`
	Commission float64     `json:"commission"`
	AccountID  string      `json:"accountId"`
	Status     OrderStatus `json:"status"`
}

// IsActive reports whether the order takes part in computations.
func (o Order) IsActive() bool { return o.Status == Active }

// Total returns the settlement amount in the order currency, truncated the way exchanges do.
func (o Order) Total() float64 { return Truncate2(o.Quantity * o.UnitPrice) }

// Received returns the stablecoin quantity actually credited by a buy order.
func (o Order) Received() float64 { return o.Quantity - o.Commission }

// Validate checks the order validity rules.
func (o Order) Validate() error {
	var errs []error
	if o.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if o.Date.IsZero() {
		errs = append(errs, errors.New("missing date"))
	}
	if !o.Side.Valid() {
		errs = append(errs, fmt.Errorf("unknown side %q", o.Side))
	}
	if !o.Currency.IsFiat() {
		errs = append(errs, fmt.Errorf("settlement currency must be %s or %s, got %q", Local, Foreign, o.Currency))
	}
	if o.Quantity <= 0 {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %v", o.Quantity))
	}
	if o.UnitPrice <= 0 {
		errs = append(errs, fmt.Errorf("unit price must be positive, got %v", o.UnitPrice))
	}
	if o.Commission < 0 {
		errs = append(errs, fmt.Errorf("commission must not be negative, got %v", o.Commission))
	}
	if !o.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", o.Status))
	}
	return invalid("order", o.ID, errs)
}

// OrderPatch lists the order fields to overwrite. Nil fields are left unchanged.
//
// The status is not part of the patch: use CancelOrder and RestoreOrder.
type OrderPatch struct {
	Date       *date.Date
	Side       *Side
	Currency   *Currency
	Quantity   *float64
	UnitPrice  *float64
	Commission *float64
	AccountID  *string
}

func (p OrderPatch) apply(o Order) Order {
	if p.Date != nil {
		o.Date = *p.Date
	}
	if p.Side != nil {
		o.Side = *p.Side
	}
	if p.Currency != nil {
		o.Currency = *p.Currency
	}
	if p.Quantity != nil {
		o.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		o.UnitPrice = *p.UnitPrice
	}
	if p.Commission != nil {
		o.Commission = *p.Commission
	}
	if p.AccountID != nil {
		o.AccountID = *p.AccountID
	}
	return o
}
