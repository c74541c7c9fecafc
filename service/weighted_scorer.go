package service

import (
	"fmt"

	"guarantor-risk/domain"
)

const (
	ScenarioInterestHike = "interest_hike"
	ScenarioVacancy      = "vacancy"
)

// WeightedScorer is the multi-factor model: credit (30), property (40) and
// interest-rate (30) sub-scores, each starting at its budget and losing
// points per triggered condition. A higher score means lower risk.
type WeightedScorer struct {
	estimator        RepaymentEstimator
	worstCaseVacancy float64
}

func NewWeightedScorer(cfg StressConfig) *WeightedScorer {
	return &WeightedScorer{
		estimator:        cfg.HikeEstimator(),
		worstCaseVacancy: cfg.WorstCaseVacancyRate,
	}
}

func (s *WeightedScorer) Name() string {
	return ModelWeighted
}

func (s *WeightedScorer) Score(in domain.FinancialInput) domain.Assessment {
	var notes []string

	credit, creditNotes := creditScore(in)
	notes = append(notes, creditNotes...)

	noi := netOperatingIncome(in.AnnualRentIncome, in.VacancyRate, in.ExpenseRate)
	dcsr := ratio(noi, in.AnnualRepayment)

	property, propertyNotes := propertyScore(in, dcsr)
	notes = append(notes, propertyNotes...)

	interest, interestNotes := interestRiskScore(in)
	notes = append(notes, interestNotes...)

	sub := domain.SubScores{
		Credit:       credit,
		Property:     property,
		InterestRisk: interest,
	}
	score := clamp(sub.Total(), MinScore, MaxScore)
	level, label, summary := weightedLevel(score)

	return domain.Assessment{
		Model:     ModelWeighted,
		Score:     score,
		Level:     level,
		Label:     label,
		SubScores: &sub,
		NOI:       roundTo2Decimals(noi),
		DCR:       roundTo2Decimals(dcsr),
		Details:   append([]string{summary}, notes...),
	}
}

// Stress runs the interest-hike and worst-case vacancy scenarios.
func (s *WeightedScorer) Stress(in domain.FinancialInput) []domain.StressResult {
	return []domain.StressResult{
		s.interestHike(in),
		s.vacancySpike(in),
	}
}

func (s *WeightedScorer) interestHike(in domain.FinancialInput) domain.StressResult {
	delta := s.estimator.Increase(in.TotalDebt, in.InterestRate, in.SimulatedInterestRate, in.LoanTermYears)
	repayment := in.AnnualRepayment + delta
	noi := netOperatingIncome(in.AnnualRentIncome, in.VacancyRate, in.ExpenseRate)
	dcsr := ratio(noi, repayment)
	level, verdict := classifyCoverage(dcsr)

	return domain.StressResult{
		Scenario:  ScenarioInterestHike,
		Level:     level,
		DCR:       roundTo2Decimals(dcsr),
		NOI:       roundTo2Decimals(noi),
		Repayment: roundTo2Decimals(repayment),
		Detail: fmt.Sprintf("If the rate rises to %.2f%%, annual repayment becomes %.0f. %s",
			in.SimulatedInterestRate*100, repayment, verdict),
	}
}

func (s *WeightedScorer) vacancySpike(in domain.FinancialInput) domain.StressResult {
	noi := netOperatingIncome(in.AnnualRentIncome, s.worstCaseVacancy, in.ExpenseRate)
	dcsr := ratio(noi, in.AnnualRepayment)
	level, verdict := classifyCoverage(dcsr)

	return domain.StressResult{
		Scenario:  ScenarioVacancy,
		Level:     level,
		DCR:       roundTo2Decimals(dcsr),
		NOI:       roundTo2Decimals(noi),
		Repayment: roundTo2Decimals(in.AnnualRepayment),
		Detail: fmt.Sprintf("If vacancy reaches %.0f%%, net operating income falls to %.0f. %s",
			s.worstCaseVacancy*100, noi, verdict),
	}
}

// netOperatingIncome applies expenses to the rent actually collected.
func netOperatingIncome(rent, vacancyRate, expenseRate float64) float64 {
	return rent * (1 - vacancyRate) * (1 - expenseRate)
}

func creditScore(in domain.FinancialInput) (int, []string) {
	score := creditBudget
	var notes []string

	if ratio(in.AnnualRepayment, in.AnnualIncome) > repaymentToIncomeLimit {
		score -= 5
		notes = append(notes, "Annual repayment exceeds 30% of income.")
	}
	if ratio(in.TotalDebt, in.AnnualIncome) > debtToIncomeLimit {
		score -= 10
		notes = append(notes, "Total debt exceeds five times annual income.")
	}
	if in.OtherDebtRatio > otherDebtRatioLimit {
		score -= 5
		notes = append(notes, "Other debts exceed 20% of income.")
	}

	return clamp(score, 0, creditBudget), notes
}

func propertyScore(in domain.FinancialInput, dcsr float64) (int, []string) {
	score := propertyBudget
	var notes []string

	if dcsr < HealthyDCR {
		score -= 10
		notes = append(notes, fmt.Sprintf("Debt service coverage %.2f is below 1.2.", dcsr))
	}
	if dcsr < BreakEvenDCR {
		score -= 15
		notes = append(notes, "Rental income does not cover debt service.")
	}
	if in.ExpenseRate > expenseRateLimit {
		score -= 5
		notes = append(notes, "Operating expenses exceed 40% of rent.")
	}
	if in.VacancyRate > vacancyRateLimit {
		score -= 5
		notes = append(notes, "Assumed vacancy exceeds 15%.")
	}

	return clamp(score, 0, propertyBudget), notes
}

func interestRiskScore(in domain.FinancialInput) (int, []string) {
	score := interestBudget
	var notes []string

	if in.InterestRate > elevatedRate {
		score -= 10
		notes = append(notes, "Interest rate is above 4%.")
	}
	if in.InterestRate > highRate {
		score -= 10
		notes = append(notes, "Interest rate is above 5%.")
	}
	if ratio(in.TotalDebt, in.AnnualIncome) > heavyDebtToIncome {
		score -= 5
		notes = append(notes, "Total debt exceeds eight times annual income; rate moves hit hard.")
	}

	return clamp(score, 0, interestBudget), notes
}

func weightedLevel(score int) (domain.Level, string, string) {
	switch {
	case score >= weightedLowThreshold:
		return domain.LevelLow, "Low risk",
			"Repayment capacity and property cash flow are sound; the guarantee is unlikely to be called."
	case score >= weightedMediumThreshold:
		return domain.LevelMedium, "Medium risk",
			"Some indicators are weak. Review the borrower's repayment plan before signing."
	default:
		return domain.LevelHigh, "High risk",
			"Several indicators are weak. There is a real chance the guarantor will have to repay."
	}
}

// classifyCoverage grades a stressed coverage ratio.
func classifyCoverage(dcr float64) (domain.Level, string) {
	switch {
	case dcr >= HealthyDCR:
		return domain.LevelLow, fmt.Sprintf("Rent still covers debt service with margin (DCR %.2f).", dcr)
	case dcr >= BreakEvenDCR:
		return domain.LevelMedium, fmt.Sprintf("Rent barely covers debt service (DCR %.2f).", dcr)
	default:
		return domain.LevelHigh, fmt.Sprintf("Rent no longer covers debt service (DCR %.2f); the shortfall falls on the borrower.", dcr)
	}
}
