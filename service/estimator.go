package service

import "math"

// RepaymentEstimator estimates how much the annual repayment changes when the
// loan rate moves from fromRate to toRate. A rate cut gives a negative change.
type RepaymentEstimator interface {
	Increase(principal, fromRate, toRate, termYears float64) float64
}

// LinearEstimator scales principal × rate delta by Factor. The factor is a
// rough allowance for principal already repaid, not an amortization result.
type LinearEstimator struct {
	Factor float64
}

func NewLinearEstimator(factor float64) LinearEstimator {
	return LinearEstimator{Factor: factor}
}

func (e LinearEstimator) Increase(principal, fromRate, toRate, _ float64) float64 {
	return principal * (toRate - fromRate) * e.Factor
}

// FlatEstimator charges the whole rate delta on the full principal.
type FlatEstimator struct{}

func (FlatEstimator) Increase(principal, fromRate, toRate, _ float64) float64 {
	return principal * (toRate - fromRate)
}

// AmortizedEstimator compares annual annuity payments (monthly compounding)
// at both rates over the remaining term.
type AmortizedEstimator struct {
	DefaultTermYears float64
}

func NewAmortizedEstimator(defaultTermYears float64) AmortizedEstimator {
	if defaultTermYears <= 0 {
		defaultTermYears = DefaultAmortizationYears
	}
	return AmortizedEstimator{DefaultTermYears: defaultTermYears}
}

func (e AmortizedEstimator) Increase(principal, fromRate, toRate, termYears float64) float64 {
	if termYears <= 0 {
		termYears = e.DefaultTermYears
	}
	if termYears <= 0 || principal <= 0 {
		return 0
	}
	return annualPayment(principal, toRate, termYears) - annualPayment(principal, fromRate, termYears)
}

// annualPayment is twelve level monthly payments of a fully amortizing loan.
func annualPayment(principal, annualRate, termYears float64) float64 {
	n := termYears * 12
	if annualRate == 0 {
		return principal / n * 12
	}
	monthlyRate := annualRate / 12
	monthly := principal * (monthlyRate / (1 - math.Pow(1+monthlyRate, -n)))
	return monthly * 12
}
