package capital

import "fmt"

// Settings holds the exchange rates used by every valuation.
//
// BuyRate converts foreign-currency orders into their local cost,
// SellRate values foreign-currency balances. Both are LOCAL per FOREIGN.
type Settings struct {
	BuyRate              float64  `json:"buyRate"`
	SellRate             float64  `json:"sellRate"`
	StablecoinMode       RateMode `json:"stablecoinMode"`
	ManualStablecoinRate float64  `json:"manualStablecoinRate"`
}

// DefaultSettings returns the settings of an empty ledger.
func DefaultSettings() Settings {
	return Settings{
		BuyRate:              36.5,
		SellRate:             37.0,
		StablecoinMode:       Auto,
		ManualStablecoinRate: 37.0,
	}
}

// Validate checks the settings validity rules.
func (s Settings) Validate() error {
	var errs []error
	if s.BuyRate <= 0 {
		errs = append(errs, fmt.Errorf("buy rate must be positive, got %v", s.BuyRate))
	}
	if s.SellRate <= 0 {
		errs = append(errs, fmt.Errorf("sell rate must be positive, got %v", s.SellRate))
	}
	if !s.StablecoinMode.Valid() {
		errs = append(errs, fmt.Errorf("unknown stablecoin rate mode %q", s.StablecoinMode))
	}
	if s.ManualStablecoinRate <= 0 {
		errs = append(errs, fmt.Errorf("manual stablecoin rate must be positive, got %v", s.ManualStablecoinRate))
	}
	return invalid("settings", "", errs)
}

// SettingsPatch lists the settings to overwrite. Nil fields are left unchanged.
type SettingsPatch struct {
	BuyRate              *float64
	SellRate             *float64
	StablecoinMode       *RateMode
	ManualStablecoinRate *float64
}

func (p SettingsPatch) apply(s Settings) Settings {
	if p.BuyRate != nil {
		s.BuyRate = *p.BuyRate
	}
	if p.SellRate != nil {
		s.SellRate = *p.SellRate
	}
	if p.StablecoinMode != nil {
		s.StablecoinMode = *p.StablecoinMode
	}
	if p.ManualStablecoinRate != nil {
		s.ManualStablecoinRate = *p.ManualStablecoinRate
	}
	return s
}
