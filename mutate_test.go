package capital

import (
	"errors"
	"testing"
	"time"
)

func TestMutations_Immutable(t *testing.T) {
	s := testLedger(t)
	before := s.String()

	mutations := []struct {
		name string
		f    func(Snapshot) (Snapshot, error)
	}{
		{"cancel order", func(s Snapshot) (Snapshot, error) { return s.CancelOrder("o1") }},
		{"delete order", func(s Snapshot) (Snapshot, error) { return s.DeleteOrder("o2") }},
		{"update account", func(s Snapshot) (Snapshot, error) {
			name := "Other"
			return s.UpdateAccount("bank", AccountPatch{Name: &name})
		}},
		{"delete expense", func(s Snapshot) (Snapshot, error) { return s.DeleteExpense("e1") }},
		{"void movement", func(s Snapshot) (Snapshot, error) { return s.VoidMovement("m1") }},
		{"add movement", func(s Snapshot) (Snapshot, error) {
			return s.AddMovement(Movement{Date: day("2025-02-01"), Type: Deposit, To: AccountRef("bank"), CurrencyFrom: Local, AmountFrom: 1})
		}},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			if _, err := m.f(s); err != nil {
				t.Fatalf("mutation failed: %v", err)
			}
			o1, _ := s.Order("o1")
			a, _ := s.Account("bank")
			m1, _ := s.Movement("m1")
			if s.String() != before || !o1.IsActive() || a.Name != "Bank" || m1.IsVoided() {
				t.Errorf("mutation modified the original snapshot")
			}
		})
	}
}

func TestMutations_Errors(t *testing.T) {
	s := testLedger(t)
	zero := 0.0

	testCases := []struct {
		name string
		f    func() (Snapshot, error)
		want error
	}{
		{"update unknown account", func() (Snapshot, error) { return s.UpdateAccount("nope", AccountPatch{}) }, ErrNotFound},
		{"delete unknown account", func() (Snapshot, error) { return s.DeleteAccount("nope") }, ErrNotFound},
		{"cancel unknown order", func() (Snapshot, error) { return s.CancelOrder("nope") }, ErrNotFound},
		{"restore unknown order", func() (Snapshot, error) { return s.RestoreOrder("nope") }, ErrNotFound},
		{"update unknown expense", func() (Snapshot, error) { return s.UpdateExpense("nope", ExpensePatch{}) }, ErrNotFound},
		{"void unknown movement", func() (Snapshot, error) { return s.VoidMovement("nope") }, ErrNotFound},
		{"update unknown movement", func() (Snapshot, error) { return s.UpdateMovement("nope", MovementPatch{}) }, ErrNotFound},
		{"duplicate account", func() (Snapshot, error) {
			return s.AddAccount(Account{ID: "bank", Venue: Bank, Currency: Local})
		}, ErrDuplicate},
		{"duplicate order", func() (Snapshot, error) {
			return s.AddOrder(Order{ID: "o1", Date: day("2025-01-02"), Side: Buy, Currency: Local, Quantity: 1, UnitPrice: 1, AccountID: "bank"})
		}, ErrDuplicate},
		{"account with unknown venue", func() (Snapshot, error) {
			return s.AddAccount(Account{Venue: "SAFE", Currency: Local})
		}, ErrInvalid},
		{"order with zero quantity", func() (Snapshot, error) {
			return s.AddOrder(Order{Date: day("2025-01-02"), Side: Buy, Currency: Local, UnitPrice: 1, AccountID: "bank"})
		}, ErrInvalid},
		{"order settled in stablecoin", func() (Snapshot, error) {
			return s.AddOrder(Order{Date: day("2025-01-02"), Side: Buy, Currency: Stablecoin, Quantity: 1, UnitPrice: 1})
		}, ErrInvalid},
		{"order patched to zero price", func() (Snapshot, error) { return s.UpdateOrder("o1", OrderPatch{UnitPrice: &zero}) }, ErrInvalid},
		{"expense without amount", func() (Snapshot, error) {
			return s.AddExpense(Expense{Date: day("2025-01-02"), Currency: Local, AccountID: "cash"})
		}, ErrInvalid},
		{"deposit without destination", func() (Snapshot, error) {
			return s.AddMovement(Movement{Date: day("2025-01-02"), Type: Deposit, CurrencyFrom: Local, AmountFrom: 1})
		}, ErrInvalid},
		{"transfer to itself", func() (Snapshot, error) {
			return s.AddMovement(Movement{Date: day("2025-01-02"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("bank"), CurrencyFrom: Local, AmountFrom: 1})
		}, ErrInvalid},
		{"cross currency without rate", func() (Snapshot, error) {
			return s.AddMovement(Movement{Date: day("2025-01-02"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("usd"), CurrencyFrom: Local, AmountFrom: 370, CurrencyTo: Foreign, AmountTo: 10})
		}, ErrInvalid},
		{"zero sell rate", func() (Snapshot, error) { return s.UpdateSettings(SettingsPatch{SellRate: &zero}) }, ErrInvalid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.f()
			if !errors.Is(err, tc.want) {
				t.Fatalf("got error %v, want %v", err, tc.want)
			}
			if got.String() != s.String() {
				t.Errorf("failed mutation returned a modified snapshot: %v", got)
			}
		})
	}
}

func TestAddMovement_Defaults(t *testing.T) {
	defer func(f func() time.Time) { now = f }(now)
	stamp := time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC)
	now = func() time.Time { return stamp }

	s := mustFn(t)(testLedger(t).AddMovement(Movement{Date: day("2025-01-05"), Type: Deposit, To: AccountRef("cash"), CurrencyFrom: Local, AmountFrom: 42}))
	m := s.Movements[len(s.Movements)-1]

	if m.ID == "" {
		t.Error("movement has no id")
	}
	if !m.CreatedAt.Equal(stamp) {
		t.Errorf("CreatedAt = %v, want %v", m.CreatedAt, stamp)
	}
	if m.Status != Confirmed {
		t.Errorf("Status = %s, want %s", m.Status, Confirmed)
	}
	if m.CurrencyTo != Local || m.AmountTo != 42 {
		t.Errorf("target side = %v %s, want 42 %s", m.AmountTo, m.CurrencyTo, Local)
	}
}

func TestAddMovement_Audit(t *testing.T) {
	must := mustFn(t)
	s := testLedger(t)
	bank, cash := s.AccountBalance("bank"), s.AccountBalance("cash")

	s = must(s.AddMovement(Movement{ID: "t", Date: day("2025-01-07"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("cash"), CurrencyFrom: Local, AmountFrom: 25}))
	m, _ := s.Movement("t")
	a := m.Audit
	if a == nil {
		t.Fatal("movement has no audit snapshot")
	}
	if a.FromBefore != bank || a.ToBefore != cash {
		t.Errorf("audit before = %v, %v, want %v, %v", a.FromBefore, a.ToBefore, bank, cash)
	}
	if got := s.AccountBalance("bank"); got != a.FromAfter {
		t.Errorf("bank balance = %v, want the audit value %v", got, a.FromAfter)
	}
	if got := s.AccountBalance("cash"); got != a.ToAfter {
		t.Errorf("cash balance = %v, want the audit value %v", got, a.ToAfter)
	}
	if want := "Bank sent C$25.00 to Cash"; a.Title != want {
		t.Errorf("audit title = %q, want %q", a.Title, want)
	}

	// The audit is a record of the past: it does not follow later changes.
	rate := 40.0
	s = must(s.UpdateSettings(SettingsPatch{BuyRate: &rate}))
	m, _ = s.Movement("t")
	if got := s.AccountBalance("bank"); got == m.Audit.FromAfter {
		t.Errorf("bank balance %v still matches the audit after a rate change", got)
	}
	if *m.Audit != *a {
		t.Errorf("audit changed after a rate change: %+v", m.Audit)
	}
}

func TestAddMovement_AuditExternal(t *testing.T) {
	s := mustFn(t)(testLedger(t).AddMovement(Movement{ID: "w", Date: day("2025-01-07"), Type: Withdrawal, From: AccountRef("usd"), To: External("Landlord"), CurrencyFrom: Foreign, AmountFrom: 15}))
	m, _ := s.Movement("w")
	if m.Audit.FromBefore != 365 || m.Audit.FromAfter != 350 {
		t.Errorf("audit = %v -> %v, want 365 -> 350", m.Audit.FromBefore, m.Audit.FromAfter)
	}
	if m.Audit.ToBefore != 0 || m.Audit.ToAfter != 0 {
		t.Errorf("external endpoint has balances in the audit: %+v", m.Audit)
	}
	if want := "Withdrawal of $15.00 from Dollars"; m.Audit.Title != want {
		t.Errorf("audit title = %q, want %q", m.Audit.Title, want)
	}
}

func TestUpdateMovement_KeepsStatus(t *testing.T) {
	must := mustFn(t)
	s := must(testLedger(t).UpdateMovement("m4", MovementPatch{Note: ptr("reviewed")}))
	m, _ := s.Movement("m4")
	if !m.IsVoided() || m.Note != "reviewed" {
		t.Errorf("UpdateMovement() = %+v, want a voided movement with a note", m)
	}
}

func TestRestoreOrder(t *testing.T) {
	must := mustFn(t)
	s := must(testLedger(t).RestoreOrder("o4"))
	o, _ := s.Order("o4")
	if !o.IsActive() {
		t.Errorf("order o4 status = %s, want %s", o.Status, Active)
	}
}

func ptr[T any](v T) *T { return &v }

func TestAddMovement_AuditCrossCurrency(t *testing.T) {
	s := mustFn(t)(testLedger(t).AddMovement(Movement{ID: "x", Date: day("2025-01-07"), Type: Transfer, From: AccountRef("bank"), To: AccountRef("usd"),
		CurrencyFrom: Local, AmountFrom: 370, CurrencyTo: Foreign, AmountTo: 10, ExchangeRate: 37}))
	m, _ := s.Movement("x")
	if got := s.AccountBalance("usd"); got != m.Audit.ToAfter || got != m.Audit.ToBefore {
		t.Errorf("usd balance = %v, audit = %v -> %v, want all equal", got, m.Audit.ToBefore, m.Audit.ToAfter)
	}
	if got := s.AccountBalance("bank"); got != m.Audit.FromAfter {
		t.Errorf("bank balance = %v, want the audit value %v", got, m.Audit.FromAfter)
	}
}
