package utils

import "math"

// Round2 rounds a currency amount to 2 decimal places, half-up.
func Round2(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
