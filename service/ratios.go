package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo2Decimals rounds a reported ratio; scoring always uses the raw value.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(finite(value)).Round(2).InexactFloat64()
}

// finite saturates overflowed results at the largest float64 and maps NaN to
// zero, so every reported figure stays encodable.
func finite(value float64) float64 {
	switch {
	case math.IsNaN(value):
		return 0
	case math.IsInf(value, 1):
		return math.MaxFloat64
	case math.IsInf(value, -1):
		return -math.MaxFloat64
	}
	return value
}

// ratio divides by the denominator, treating a zero denominator as 1.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		denominator = ZeroDenominator
	}
	return finite(numerator / denominator)
}

// coverage is NOI over repayment, or UncoveredDebtDCR when nothing is repaid.
func coverage(noi, repayment float64) float64 {
	if repayment <= 0 {
		return UncoveredDebtDCR
	}
	return finite(noi / repayment)
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// sanitize coerces values that cannot take part in arithmetic to zero.
func sanitize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
