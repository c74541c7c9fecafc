package service

const (
	ModelWeighted = "weighted"
	ModelLinear   = "linear"

	MinScore = 0
	MaxScore = 100

	// Sentinels used when a ratio has no divisor.
	ZeroDenominator  = 1.0
	UncoveredDebtDCR = 999.0

	// Stress defaults; overridable through StressConfig.
	DefaultWorstCaseVacancyRate = 0.20
	DefaultRateIncrease         = 0.02
	DefaultHikeFactor           = 0.7
	DefaultAmortizationYears    = 30

	// Coverage thresholds shared by the stress classifications.
	HealthyDCR   = 1.2
	BreakEvenDCR = 1.0
)

// Weighted model budgets and penalties.
const (
	creditBudget   = 30
	propertyBudget = 40
	interestBudget = 30

	repaymentToIncomeLimit = 0.3
	debtToIncomeLimit      = 5.0
	otherDebtRatioLimit    = 0.2
	expenseRateLimit       = 0.4
	vacancyRateLimit       = 0.15
	elevatedRate           = 0.04
	highRate               = 0.05
	heavyDebtToIncome      = 8.0

	weightedLowThreshold    = 80
	weightedMediumThreshold = 50
)

// Linear model coefficients.
const (
	dsrWeight       = 150
	otherDebtWeight = 30

	deficitPenalty = 40
	thinPenalty    = 15
	healthyBonus   = 10

	linearVeryHighThreshold = 70
	linearHighThreshold     = 50
	linearMediumThreshold   = 30
)
