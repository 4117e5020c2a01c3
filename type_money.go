package capital

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// go-money knows NIO and USD, the stablecoin needs to be declared.
	money.AddCurrency(Stablecoin.Code(), "USDT", "1 $", ".", ",", Stablecoin.Decimals())
}

// Money is an amount in one of the ledger currencies, meant for display.
//
// Computations are done on float64 with exchange truncation; Money only
// carries the result to the user.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

// M returns the money value of an amount in currency c.
func M(value float64, c Currency) Money {
	return Money{value: decimal.NewFromFloat(value), cur: c}
}

// currency returns the go-money currency matching m's currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur.Code()).Currency()
}

// String returns the amount formatted for its currency, floored at the
// currency precision like Truncate.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Floor()
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation with an explicit sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
