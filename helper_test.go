package capital

import (
	"math"
	"testing"

	"github.com/etnz/capital/date"
)

// mustFn returns a helper that unwraps a mutation result or fails the test.
func mustFn(t *testing.T) func(Snapshot, error) Snapshot {
	t.Helper()
	return func(s Snapshot, err error) Snapshot {
		t.Helper()
		if err != nil {
			t.Fatalf("mutation failed: %v", err)
		}
		return s
	}
}

// approx compares float results built from different summation orders.
func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func day(s string) date.Date { return date.MustParse(s) }

// testLedger returns a ledger exercising every balance rule:
//
//	bank    LOCAL      1000 - 3700 (o1) - 368.65 (o2 converted) - 100 (m2)  = -3168.65
//	cash    LOCAL      0 - 50 (e1) + 500 (m1) + 100 (m2)                    = 550
//	usd     FOREIGN    200 + 190 (o3 unconverted) - 20 (e2) - 5 (m5)        = 365
//	binance STABLECOIN 10 + 99 (o1) + 10 (o2) - 5 (o3)                      = 114
//
// o4 is canceled, m3 is in a currency none of the accounts hold and m4 is voided.
func testLedger(t *testing.T) Snapshot {
	t.Helper()
	must := mustFn(t)
	s := Empty()
	s = must(s.AddAccount(Account{ID: "bank", Name: "Bank", Venue: Bank, Currency: Local, InitialBalance: 1000}))
	s = must(s.AddAccount(Account{ID: "cash", Name: "Cash", Venue: Cash, Currency: Local}))
	s = must(s.AddAccount(Account{ID: "usd", Name: "Dollars", Venue: Bank, Currency: Foreign, InitialBalance: 200}))
	s = must(s.AddAccount(Account{ID: "binance", Name: "Binance", Venue: Exchange, Currency: Stablecoin, InitialBalance: 10}))

	s = must(s.AddOrder(Order{ID: "o1", Date: day("2025-01-02"), Side: Buy, Currency: Local, Quantity: 100, UnitPrice: 37, Commission: 1, AccountID: "bank"}))
	s = must(s.AddOrder(Order{ID: "o2", Date: day("2025-01-02"), Side: Buy, Currency: Foreign, Quantity: 10, UnitPrice: 1.01, AccountID: "bank"}))
	s = must(s.AddOrder(Order{ID: "o3", Date: day("2025-01-03"), Side: Sell, Currency: Local, Quantity: 5, UnitPrice: 38, AccountID: "usd"}))
	s = must(s.AddOrder(Order{ID: "o4", Date: day("2025-01-03"), Side: Buy, Currency: Local, Quantity: 1000, UnitPrice: 40, AccountID: "bank", Status: Canceled}))

	s = must(s.AddExpense(Expense{ID: "e1", Date: day("2025-01-04"), Concept: "lunch", Amount: 50, Currency: Local, AccountID: "cash"}))
	s = must(s.AddExpense(Expense{ID: "e2", Date: day("2025-01-04"), Concept: "fees", Amount: 20, Currency: Foreign, AccountID: "usd"}))

	s = must(s.AddMovement(Movement{ID: "m1", Date: day("2025-01-05"), Type: Deposit, To: AccountRef("cash"), CurrencyFrom: Local, AmountFrom: 500}))
	s = must(s.AddMovement(Movement{ID: "m2", Date: day("2025-01-05"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("cash"), CurrencyFrom: Local, AmountFrom: 100}))
	s = must(s.AddMovement(Movement{ID: "m3", Date: day("2025-01-05"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("cash"), CurrencyFrom: Foreign, AmountFrom: 30}))
	s = must(s.AddMovement(Movement{ID: "m4", Date: day("2025-01-06"), Type: Withdrawal, From: AccountRef("usd"), To: External("Mom"), CurrencyFrom: Foreign, AmountFrom: 10}))
	s = must(s.VoidMovement("m4"))
	s = must(s.AddMovement(Movement{ID: "m5", Date: day("2025-01-06"), Type: Withdrawal, From: AccountRef("usd"), CurrencyFrom: Foreign, AmountFrom: 5}))
	return s
}
