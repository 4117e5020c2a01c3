package capital

// AccountBalance returns the balance of the account in its own currency.
//
// It starts from the initial balance, applies every active order settled
// through the account, subtracts its expenses and applies the movements in
// the account currency that are not voided. An unknown account has a zero
// balance. The result is never clamped and may be negative.
func (s Snapshot) AccountBalance(accountID string) float64 {
	account, ok := s.Account(accountID)
	if !ok {
		return 0
	}
	balance := account.InitialBalance

	for o := range s.activeOrders() {
		if o.AccountID != accountID {
			continue
		}
		amount := s.settlement(account, o)
		switch o.Side {
		case Buy:
			balance -= amount
		case Sell:
			balance += amount
		}
	}

	// Expenses apply at face value, whatever their currency.
	for _, e := range s.Expenses {
		if e.AccountID == accountID {
			balance -= e.Amount
		}
	}

	for m := range s.liveMovements() {
		if m.CurrencyFrom != account.Currency {
			continue
		}
		if m.Type.credits() && m.To.Is(accountID) {
			balance += m.AmountFrom
		}
		if m.Type.debits() && m.From.Is(accountID) {
			balance -= m.AmountFrom
		}
	}
	return balance
}

// settlement returns the fiat amount an order moves on the account.
func (s Snapshot) settlement(account Account, o Order) float64 {
	total := o.Total()
	switch {
	case account.Currency == o.Currency:
		return total
	case account.Currency == Local && o.Currency == Foreign:
		return Truncate2(total * s.Settings.BuyRate)
	default:
		// No conversion is defined for the other pairs (e.g. a FOREIGN account
		// settling a LOCAL order): the order total applies unconverted.
		return total
	}
}

// ExchangeVenueBalance returns the stablecoin balance held on the exchange.
//
// It starts from the initial balance of the first EXCHANGE account and
// applies every active order, whatever account recorded it: the venue is a
// single shared custody. Buy orders credit the quantity net of commission,
// sell orders debit the quantity plus commission.
func (s Snapshot) ExchangeVenueBalance() float64 {
	account, ok := s.exchangeAccount()
	if !ok {
		return 0
	}
	balance := account.InitialBalance
	for o := range s.activeOrders() {
		switch o.Side {
		case Buy:
			balance += o.Quantity - o.Commission
		case Sell:
			balance -= o.Quantity + o.Commission
		}
	}
	return balance
}

// Balance returns the balance of an account: the venue balance for EXCHANGE
// accounts, AccountBalance otherwise.
func (s Snapshot) Balance(a Account) float64 {
	if a.Venue == Exchange {
		return s.ExchangeVenueBalance()
	}
	return s.AccountBalance(a.ID)
}

// BalanceLine is the balance of one account, native and converted to LOCAL.
type BalanceLine struct {
	Account Account
	Balance float64 // in the account currency
	Local   float64 // converted to LOCAL
}

// Balances returns one line per account, in the account order.
func (s Snapshot) Balances() []BalanceLine {
	rate := s.StablecoinRate()
	lines := make([]BalanceLine, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		b := s.Balance(a)
		lines = append(lines, BalanceLine{
			Account: a,
			Balance: b,
			Local:   s.toLocal(b, a.Currency, rate),
		})
	}
	return lines
}
