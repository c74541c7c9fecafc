package service

import (
	"fmt"
	"math"

	"guarantor-risk/domain"
)

// LinearScorer is the DSR/DCR model. Points are added for risk, so a higher
// score means higher risk, the reverse of WeightedScorer.
type LinearScorer struct{}

func NewLinearScorer() *LinearScorer {
	return &LinearScorer{}
}

func (s *LinearScorer) Name() string {
	return ModelLinear
}

func (s *LinearScorer) Score(in domain.FinancialInput) domain.Assessment {
	return s.ScoreWithRepayment(in, in.AnnualRepayment)
}

// ScoreWithRepayment scores the input as if the annual repayment were
// repayment.
func (s *LinearScorer) ScoreWithRepayment(in domain.FinancialInput, repayment float64) domain.Assessment {
	// A borrower without income leaves the guarantor carrying the whole loan.
	if in.AnnualIncome == 0 {
		return fatalAssessment()
	}

	dsr := repayment / in.AnnualIncome
	noi := in.AnnualRentIncome*(1-in.VacancyRate) - in.AnnualRentIncome*in.ExpenseRate
	dcr := coverage(noi, repayment)

	details := []string{
		fmt.Sprintf("Debt service ratio is %.1f%% of income.", dsr*100),
	}

	total := math.Floor(dsr * dsrWeight)
	switch {
	case dcr < BreakEvenDCR:
		total += deficitPenalty
		details = append(details, fmt.Sprintf("DCR %.2f: rent does not cover repayment.", dcr))
	case dcr < HealthyDCR:
		total += thinPenalty
		details = append(details, fmt.Sprintf("DCR %.2f: rent covers repayment with little margin.", dcr))
	default:
		total -= healthyBonus
		details = append(details, fmt.Sprintf("DCR %.2f: rent comfortably covers repayment.", dcr))
	}
	total += math.Floor(in.OtherDebtRatio * otherDebtWeight)

	score := int(math.Max(MinScore, math.Min(MaxScore, total)))
	level, label := linearLevel(score)

	return domain.Assessment{
		Model:   ModelLinear,
		Score:   score,
		Level:   level,
		Label:   label,
		NOI:     roundTo2Decimals(noi),
		DCR:     roundTo2Decimals(dcr),
		Details: details,
	}
}

func fatalAssessment() domain.Assessment {
	return domain.Assessment{
		Model: ModelLinear,
		Score: MaxScore,
		Level: domain.LevelFatal,
		Label: "致命的なリスク（債務者の収入がゼロ）",
		Details: []string{
			"The borrower has no income; every repayment would fall on the guarantor.",
		},
	}
}

func linearLevel(score int) (domain.Level, string) {
	switch {
	case score >= linearVeryHighThreshold:
		return domain.LevelVeryHigh, "非常に高いリスク"
	case score >= linearHighThreshold:
		return domain.LevelHigh, "高いリスク"
	case score >= linearMediumThreshold:
		return domain.LevelMedium, "中程度のリスク"
	default:
		return domain.LevelLow, "比較的低いリスク"
	}
}
