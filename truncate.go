package capital

import "math"

// truncEpsilon absorbs binary representation noise before flooring, so that
// a value stored as 1.9999999999999 still truncates to 2.
const truncEpsilon = 1e-12

// Truncate floors value at 'decimals' fractional digits. It never rounds.
//
// Exchanges compute settlement totals as quantity × price and truncate the
// result, this function reproduces that arithmetic on float64 values.
// Non finite values truncate to 0, negative decimals are treated as 0.
func Truncate(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Floor((value+truncEpsilon)*p) / p
}

// Truncate2 truncates a fiat amount (LOCAL or FOREIGN).
func Truncate2(value float64) float64 { return Truncate(value, 2) }

// Truncate6 truncates a stablecoin amount.
func Truncate6(value float64) float64 { return Truncate(value, 6) }
