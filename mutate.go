package capital

import (
	"fmt"
	"slices"
	"time"
)

// now is the clock used to timestamp new movements.
var now = time.Now

// add returns a copy of list with v appended, after checking the id is free.
func add[T any](list []T, v T, id string, idOf func(T) string) ([]T, error) {
	if slices.ContainsFunc(list, func(x T) bool { return idOf(x) == id }) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicate, id)
	}
	return append(slices.Clone(list), v), nil
}

// update returns a copy of list where the element 'id' is replaced by f(element).
func update[T any](list []T, what, id string, idOf func(T) string, f func(T) (T, error)) ([]T, error) {
	i := slices.IndexFunc(list, func(x T) bool { return idOf(x) == id })
	if i < 0 {
		return nil, fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
	}
	v, err := f(list[i])
	if err != nil {
		return nil, err
	}
	list = slices.Clone(list)
	list[i] = v
	return list, nil
}

// remove returns a copy of list without the element 'id'.
func remove[T any](list []T, what, id string, idOf func(T) string) ([]T, error) {
	i := slices.IndexFunc(list, func(x T) bool { return idOf(x) == id })
	if i < 0 {
		return nil, fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
	}
	return slices.Delete(slices.Clone(list), i, i+1), nil
}

func accountID(a Account) string   { return a.ID }
func orderID(o Order) string       { return o.ID }
func expenseID(e Expense) string   { return e.ID }
func movementID(m Movement) string { return m.ID }

// AddAccount returns a snapshot with the account added. An empty id is generated.
func (s Snapshot) AddAccount(a Account) (Snapshot, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	if err := a.Validate(); err != nil {
		return s, err
	}
	list, err := add(s.Accounts, a, a.ID, accountID)
	if err != nil {
		return s, err
	}
	s.Accounts = list
	return s, nil
}

// UpdateAccount returns a snapshot with the patch applied to the account.
func (s Snapshot) UpdateAccount(id string, p AccountPatch) (Snapshot, error) {
	list, err := update(s.Accounts, "account", id, accountID, func(a Account) (Account, error) {
		a = p.apply(a)
		return a, a.Validate()
	})
	if err != nil {
		return s, err
	}
	s.Accounts = list
	return s, nil
}

// DeleteAccount returns a snapshot without the account. Orders, expenses and
// movements referencing it are kept and contribute nothing anymore.
func (s Snapshot) DeleteAccount(id string) (Snapshot, error) {
	list, err := remove(s.Accounts, "account", id, accountID)
	if err != nil {
		return s, err
	}
	s.Accounts = list
	return s, nil
}

// AddOrder returns a snapshot with the order added. An empty status means Active.
func (s Snapshot) AddOrder(o Order) (Snapshot, error) {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = Active
	}
	if err := o.Validate(); err != nil {
		return s, err
	}
	list, err := add(s.Orders, o, o.ID, orderID)
	if err != nil {
		return s, err
	}
	s.Orders = list
	return s, nil
}

// UpdateOrder returns a snapshot with the patch applied to the order.
func (s Snapshot) UpdateOrder(id string, p OrderPatch) (Snapshot, error) {
	return s.updateOrder(id, func(o Order) Order { return p.apply(o) })
}

// CancelOrder marks the order as canceled. It is kept but excluded from every computation.
func (s Snapshot) CancelOrder(id string) (Snapshot, error) {
	return s.updateOrder(id, func(o Order) Order { o.Status = Canceled; return o })
}

// RestoreOrder reverses CancelOrder.
func (s Snapshot) RestoreOrder(id string) (Snapshot, error) {
	return s.updateOrder(id, func(o Order) Order { o.Status = Active; return o })
}

func (s Snapshot) updateOrder(id string, f func(Order) Order) (Snapshot, error) {
	list, err := update(s.Orders, "order", id, orderID, func(o Order) (Order, error) {
		o = f(o)
		return o, o.Validate()
	})
	if err != nil {
		return s, err
	}
	s.Orders = list
	return s, nil
}

// DeleteOrder returns a snapshot without the order.
func (s Snapshot) DeleteOrder(id string) (Snapshot, error) {
	list, err := remove(s.Orders, "order", id, orderID)
	if err != nil {
		return s, err
	}
	s.Orders = list
	return s, nil
}

// AddExpense returns a snapshot with the expense added.
func (s Snapshot) AddExpense(e Expense) (Snapshot, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	if err := e.Validate(); err != nil {
		return s, err
	}
	list, err := add(s.Expenses, e, e.ID, expenseID)
	if err != nil {
		return s, err
	}
	s.Expenses = list
	return s, nil
}

// UpdateExpense returns a snapshot with the patch applied to the expense.
func (s Snapshot) UpdateExpense(id string, p ExpensePatch) (Snapshot, error) {
	list, err := update(s.Expenses, "expense", id, expenseID, func(e Expense) (Expense, error) {
		e = p.apply(e)
		return e, e.Validate()
	})
	if err != nil {
		return s, err
	}
	s.Expenses = list
	return s, nil
}

// DeleteExpense returns a snapshot without the expense.
func (s Snapshot) DeleteExpense(id string) (Snapshot, error) {
	list, err := remove(s.Expenses, "expense", id, expenseID)
	if err != nil {
		return s, err
	}
	s.Expenses = list
	return s, nil
}

// AddMovement returns a snapshot with the movement added.
//
// Missing values take their defaults: a new id, the current time as
// creation time, CONFIRMED status and a target side equal to the source
// side. The audit snapshot is always captured from the balances of s.
func (s Snapshot) AddMovement(m Movement) (Snapshot, error) {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now().UTC()
	}
	if m.Status == "" {
		m.Status = Confirmed
	}
	if m.CurrencyTo == "" {
		m.CurrencyTo, m.AmountTo = m.CurrencyFrom, m.AmountFrom
	}
	if err := m.Validate(); err != nil {
		return s, err
	}
	m.Audit = s.audit(m)
	list, err := add(s.Movements, m, m.ID, movementID)
	if err != nil {
		return s, err
	}
	s.Movements = list
	return s, nil
}

// audit captures the endpoint balances around m, as seen from s.
func (s Snapshot) audit(m Movement) *AuditSnapshot {
	a := &AuditSnapshot{
		Title:    s.MovementTitle(m),
		Currency: m.CurrencyFrom,
		Amount:   m.AmountFrom,
	}
	// Same rule as AccountBalance: only accounts held in the source currency move.
	holds := func(id string) bool {
		account, ok := s.Account(id)
		return ok && account.Currency == m.CurrencyFrom
	}
	if id := m.From.account(); id != "" {
		a.FromBefore = s.AccountBalance(id)
		a.FromAfter = a.FromBefore
		if m.Type.debits() && holds(id) {
			a.FromAfter -= m.AmountFrom
		}
	}
	if id := m.To.account(); id != "" {
		a.ToBefore = s.AccountBalance(id)
		a.ToAfter = a.ToBefore
		if m.Type.credits() && holds(id) {
			a.ToAfter += m.AmountFrom
		}
	}
	return a
}

func (s Snapshot) endpointName(e *Endpoint) string {
	switch {
	case e == nil:
		return "?"
	case e.Kind == AccountEndpoint:
		return s.AccountName(e.AccountID)
	default:
		return e.Name
	}
}

// MovementTitle returns a one line description of m, using the account names of s.
func (s Snapshot) MovementTitle(m Movement) string {
	amount := M(m.AmountFrom, m.CurrencyFrom)
	switch m.Type {
	case Transfer:
		return fmt.Sprintf("%s sent %v to %s", s.endpointName(m.From), amount, s.endpointName(m.To))
	case Deposit:
		return fmt.Sprintf("Deposit of %v to %s", amount, s.endpointName(m.To))
	default:
		return fmt.Sprintf("Withdrawal of %v from %s", amount, s.endpointName(m.From))
	}
}

// UpdateMovement returns a snapshot with the patch applied to the movement.
// The audit snapshot is left untouched.
func (s Snapshot) UpdateMovement(id string, p MovementPatch) (Snapshot, error) {
	list, err := update(s.Movements, "movement", id, movementID, func(m Movement) (Movement, error) {
		m = p.apply(m)
		return m, m.Validate()
	})
	if err != nil {
		return s, err
	}
	s.Movements = list
	return s, nil
}

// VoidMovement marks the movement as voided: it is kept but no longer affects
// any balance. There is no way back.
func (s Snapshot) VoidMovement(id string) (Snapshot, error) {
	list, err := update(s.Movements, "movement", id, movementID, func(m Movement) (Movement, error) {
		m.Status = Voided
		return m, nil
	})
	if err != nil {
		return s, err
	}
	s.Movements = list
	return s, nil
}

// UpdateSettings returns a snapshot with the patch applied to the settings.
// Stored reports are not affected.
func (s Snapshot) UpdateSettings(p SettingsPatch) (Snapshot, error) {
	settings := p.apply(s.Settings)
	if err := settings.Validate(); err != nil {
		return s, err
	}
	s.Settings = settings
	return s, nil
}
