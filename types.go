package capital

import (
	"fmt"
	"strings"
)

// Currency identifies one of the three currencies handled by the ledger.
type Currency string

const (
	// Local is the local fiat currency, truncated to 2 decimals.
	Local Currency = "LOCAL"
	// Foreign is the foreign fiat currency, truncated to 2 decimals.
	Foreign Currency = "FOREIGN"
	// Stablecoin is the traded stablecoin, truncated to 6 decimals.
	Stablecoin Currency = "STABLECOIN"
)

// Valid reports whether c is a known currency.
func (c Currency) Valid() bool { return c == Local || c == Foreign || c == Stablecoin }

// IsFiat reports whether c is Local or Foreign.
func (c Currency) IsFiat() bool { return c == Local || c == Foreign }

// Decimals returns the number of fractional digits kept for c.
func (c Currency) Decimals() int {
	if c == Stablecoin {
		return 6
	}
	return 2
}

// Truncate truncates value at the precision of c.
func (c Currency) Truncate(value float64) float64 { return Truncate(value, c.Decimals()) }

// Code returns the ISO-like code used to format amounts in c.
func (c Currency) Code() string {
	switch c {
	case Local:
		return "NIO"
	case Foreign:
		return "USD"
	case Stablecoin:
		return "USDT"
	default:
		return string(c)
	}
}

// Venue is the kind of place an account lives in.
type Venue string

const (
	Bank     Venue = "BANK"
	Cash     Venue = "CASH"
	Exchange Venue = "EXCHANGE"
)

func (v Venue) Valid() bool { return v == Bank || v == Cash || v == Exchange }

// Side is the direction of a P2P order, from the trader's point of view on the stablecoin.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) Valid() bool { return s == Buy || s == Sell }

// OrderStatus is the status of an Order. Canceled orders are kept for audit
// but excluded from every computation.
type OrderStatus string

const (
	Active   OrderStatus = "ACTIVE"
	Canceled OrderStatus = "CANCELED"
)

func (s OrderStatus) Valid() bool { return s == Active || s == Canceled }

// MovementType is the kind of fund movement.
type MovementType string

const (
	Deposit    MovementType = "DEPOSIT"
	Withdrawal MovementType = "WITHDRAWAL"
	Transfer   MovementType = "TRANSFER"
)

func (t MovementType) Valid() bool { return t == Deposit || t == Withdrawal || t == Transfer }

// credits reports whether the movement adds funds to its 'to' endpoint.
func (t MovementType) credits() bool { return t == Deposit || t == Transfer }

// debits reports whether the movement removes funds from its 'from' endpoint.
func (t MovementType) debits() bool { return t == Withdrawal || t == Transfer }

// MovementStatus is the status of a Movement. Voiding is final.
type MovementStatus string

const (
	Confirmed MovementStatus = "CONFIRMED"
	Voided    MovementStatus = "VOIDED"
)

func (s MovementStatus) Valid() bool { return s == Confirmed || s == Voided }

// EndpointKind tells whether a movement endpoint is an account or an external party.
type EndpointKind string

const (
	AccountEndpoint  EndpointKind = "ACCOUNT"
	ExternalEndpoint EndpointKind = "EXTERNAL"
)

func (k EndpointKind) Valid() bool { return k == AccountEndpoint || k == ExternalEndpoint }

// RateMode selects how the stablecoin rate is obtained.
type RateMode string

const (
	// Auto uses the weighted-average cost of active buy orders.
	Auto RateMode = "AUTO"
	// Manual uses the rate set in Settings.
	Manual RateMode = "MANUAL"
)

func (m RateMode) Valid() bool { return m == Auto || m == Manual }

// enumValue is the constraint shared by all enumerations of this package.
type enumValue interface {
	~string
	Valid() bool
}

// parseEnum parses s case-insensitively into an enum value.
func parseEnum[T enumValue](kind, s string) (T, error) {
	v := T(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return v, fmt.Errorf("unknown %s: %q", kind, s)
	}
	return v, nil
}

// ParseCurrency parses a currency name ("local", "FOREIGN", ...).
func ParseCurrency(s string) (Currency, error) { return parseEnum[Currency]("currency", s) }

// ParseVenue parses a venue name.
func ParseVenue(s string) (Venue, error) { return parseEnum[Venue]("venue", s) }

// ParseSide parses an order side.
func ParseSide(s string) (Side, error) { return parseEnum[Side]("order side", s) }

// ParseMovementType parses a movement type.
func ParseMovementType(s string) (MovementType, error) {
	return parseEnum[MovementType]("movement type", s)
}

// ParseRateMode parses a stablecoin rate mode.
func ParseRateMode(s string) (RateMode, error) { return parseEnum[RateMode]("rate mode", s) }
