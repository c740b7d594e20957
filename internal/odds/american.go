// Package odds provides American-odds conversions and filtering helpers.
package odds

import "math"

// ImpliedProbability converts American odds to implied probability.
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func ImpliedProbability(american int) float64 {
	if american == 0 {
		return 0
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	abs := math.Abs(float64(american))
	return abs / (abs + 100.0)
}

// ToDecimal converts American odds to decimal odds.
func ToDecimal(american int) float64 {
	if american == 0 {
		return 1
	}
	if american > 0 {
		return 1 + float64(american)/100.0
	}
	return 1 + 100.0/math.Abs(float64(american))
}

// MeetsCriteria reports whether the given price is at maxOdds or better.
// For negative odds "better" means closer to even money: with maxOdds -125,
// -110 passes and -150 fails. All positive (underdog) prices pass.
func MeetsCriteria(american, maxOdds int) bool {
	if american >= 0 {
		return true
	}
	return american >= maxOdds
}
