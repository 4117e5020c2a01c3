package capital

import (
	"math"
	"testing"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{value: 3700, decimals: 2, want: 3700},
		{value: 1.239, decimals: 2, want: 1.23},
		{value: 1.999, decimals: 2, want: 1.99},
		{value: 0.1 + 0.2, decimals: 2, want: 0.3},
		{value: 1.15 * 100, decimals: 0, want: 115}, // 114.99999999999999 in float64
		{value: 36.912751677852, decimals: 6, want: 36.912751},
		{value: -1.239, decimals: 2, want: -1.24}, // floor, not toward zero
		{value: 12.5, decimals: -1, want: 12},
		{value: math.NaN(), decimals: 2, want: 0},
		{value: math.Inf(1), decimals: 2, want: 0},
	}
	for _, tc := range testCases {
		if got := Truncate(tc.value, tc.decimals); got != tc.want {
			t.Errorf("Truncate(%v, %d) = %v, want %v", tc.value, tc.decimals, got, tc.want)
		}
	}
}

func TestTruncate_Properties(t *testing.T) {
	values := []float64{0, 0.001, 0.01, 0.015, 1, 1.005, 2.675, 99.999, 3700, 5500.5}
	for _, v := range values {
		for _, d := range []int{0, 2, 6} {
			got := Truncate(v, d)
			if got > v+truncEpsilon {
				t.Errorf("Truncate(%v, %d) = %v exceeds the value", v, d, got)
			}
			if again := Truncate(got, d); again != got {
				t.Errorf("Truncate(Truncate(%v, %d)) = %v, want %v (idempotent)", v, d, again, got)
			}
		}
	}
}

func TestTruncate2And6(t *testing.T) {
	if got := Truncate2(100 * 37.0); got != 3700 {
		t.Errorf("Truncate2(100*37) = %v, want 3700", got)
	}
	if got := Truncate6(0.1234567); got != 0.123456 {
		t.Errorf("Truncate6(0.1234567) = %v, want 0.123456", got)
	}
}
