package service

const (
	EstimatorApproximate = "approximate"
	EstimatorAmortized   = "amortized"
)

// StressConfig holds the worst-case assumptions used by the stress scenarios.
type StressConfig struct {
	WorstCaseVacancyRate float64
	RateIncrease         float64
	HikeFactor           float64
	Estimator            string
	AmortizationYears    float64
}

func DefaultStressConfig() StressConfig {
	return StressConfig{
		WorstCaseVacancyRate: DefaultWorstCaseVacancyRate,
		RateIncrease:         DefaultRateIncrease,
		HikeFactor:           DefaultHikeFactor,
		Estimator:            EstimatorApproximate,
		AmortizationYears:    DefaultAmortizationYears,
	}
}

// HikeEstimator is used by the weighted model's interest-hike scenario.
func (c StressConfig) HikeEstimator() RepaymentEstimator {
	if c.Estimator == EstimatorAmortized {
		return NewAmortizedEstimator(c.AmortizationYears)
	}
	return NewLinearEstimator(c.HikeFactor)
}

// DriverEstimator is used by the worst-case simulator's rate-hike run.
func (c StressConfig) DriverEstimator() RepaymentEstimator {
	if c.Estimator == EstimatorAmortized {
		return NewAmortizedEstimator(c.AmortizationYears)
	}
	return FlatEstimator{}
}
