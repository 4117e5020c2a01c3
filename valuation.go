package capital

// StablecoinRate returns the LOCAL value of one stablecoin.
//
// In MANUAL mode it is the manual rate. In AUTO mode it is the weighted
// average cost of the active buy orders: their total LOCAL cost divided by
// the stablecoins actually received (net of commission). When nothing was
// received the manual rate is used instead.
func (s Snapshot) StablecoinRate() float64 {
	if s.Settings.StablecoinMode == Manual {
		return s.Settings.ManualStablecoinRate
	}
	var received, cost float64
	for o := range s.activeOrders() {
		if o.Side != Buy {
			continue
		}
		received += o.Received()
		cost += s.OrderCostLocal(o)
	}
	if received > 0 {
		return cost / received
	}
	return s.Settings.ManualStablecoinRate
}

// OrderCostLocal returns the order total in LOCAL, truncated. Foreign orders
// are converted with the buy rate.
func (s Snapshot) OrderCostLocal(o Order) float64 {
	total := o.Total()
	if o.Currency == Foreign {
		return Truncate2(total * s.Settings.BuyRate)
	}
	return total
}

// ToLocal converts an amount to LOCAL: FOREIGN amounts use the sell rate,
// STABLECOIN amounts use StablecoinRate.
func (s Snapshot) ToLocal(amount float64, c Currency) float64 {
	return s.toLocal(amount, c, s.StablecoinRate())
}

func (s Snapshot) toLocal(amount float64, c Currency, stablecoinRate float64) float64 {
	switch c {
	case Foreign:
		return amount * s.Settings.SellRate
	case Stablecoin:
		return amount * stablecoinRate
	default:
		return amount
	}
}

// TotalCapitalLocal returns the sum of every account balance converted to LOCAL.
//
// Foreign balances are marked to market with the sell rate while foreign
// orders are settled with the buy rate.
func (s Snapshot) TotalCapitalLocal() float64 {
	rate := s.StablecoinRate()
	var total float64
	for _, a := range s.Accounts {
		total += s.toLocal(s.Balance(a), a.Currency, rate)
	}
	return total
}

// TotalCapitalForeign returns TotalCapitalLocal expressed in FOREIGN at the sell rate.
func (s Snapshot) TotalCapitalForeign() float64 {
	return s.TotalCapitalLocal() / s.Settings.SellRate
}

// Valuation gathers every figure of the capital summary.
type Valuation struct {
	Mode           RateMode
	StablecoinRate float64
	Lines          []BalanceLine
	// ByCurrency sums native balances per currency.
	ByCurrency   map[Currency]float64
	TotalLocal   float64
	TotalForeign float64
}

// Valuation computes the capital summary of the snapshot.
func (s Snapshot) Valuation() Valuation {
	v := Valuation{
		Mode:           s.Settings.StablecoinMode,
		StablecoinRate: s.StablecoinRate(),
		Lines:          s.Balances(),
		ByCurrency:     make(map[Currency]float64),
	}
	for _, l := range v.Lines {
		v.ByCurrency[l.Account.Currency] += l.Balance
		v.TotalLocal += l.Local
	}
	v.TotalForeign = v.TotalLocal / s.Settings.SellRate
	return v
}
