package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guarantor-risk/domain"
)

func baseInput() domain.FinancialInput {
	return domain.FinancialInput{
		AnnualIncome:          5_000_000,
		AnnualRepayment:       1_000_000,
		TotalDebt:             30_000_000,
		AnnualRentIncome:      2_000_000,
		ExpenseRate:           0.3,
		VacancyRate:           0.1,
		InterestRate:          0.03,
		SimulatedInterestRate: 0.05,
		OtherDebtRatio:        0.1,
	}
}

func TestWeightedScorer_HealthyBorrower(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := baseInput()
	in.TotalDebt = 20_000_000

	a := scorer.Score(in)

	require.NotNil(t, a.SubScores)
	assert.Equal(t, 30, a.SubScores.Credit)
	assert.Equal(t, 40, a.SubScores.Property)
	assert.Equal(t, 30, a.SubScores.InterestRisk)
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, domain.LevelLow, a.Level)
	assert.Equal(t, ModelWeighted, a.Model)
	assert.InDelta(t, 1_260_000, a.NOI, 0.01)
	assert.InDelta(t, 1.26, a.DCR, 1e-9)
	assert.Len(t, a.Details, 1)
}

func TestWeightedScorer_DebtToIncomeAboveFive(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())

	// 30M debt on 5M income is a ratio of 6, which costs the credit score 10.
	a := scorer.Score(baseInput())

	assert.Equal(t, 20, a.SubScores.Credit)
	assert.Equal(t, 40, a.SubScores.Property)
	assert.Equal(t, 30, a.SubScores.InterestRisk)
	assert.Equal(t, 90, a.Score)
	assert.Equal(t, domain.LevelLow, a.Level)
	assert.Contains(t, a.Details, "Total debt exceeds five times annual income.")
}

func TestWeightedScorer_HighVacancy(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := baseInput()
	in.TotalDebt = 20_000_000
	in.VacancyRate = 0.25

	a := scorer.Score(in)

	// NOI 1.05M over 1M repayment: below 1.2 (-10) plus vacancy over 15% (-5).
	assert.Equal(t, 25, a.SubScores.Property)
	assert.Equal(t, 85, a.Score)
	assert.Equal(t, domain.LevelLow, a.Level)
	assert.InDelta(t, 1.05, a.DCR, 1e-9)
}

func TestWeightedScorer_EveryPenalty(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := domain.FinancialInput{
		AnnualIncome:     1_000_000,
		AnnualRepayment:  500_000,
		TotalDebt:        10_000_000,
		AnnualRentIncome: 400_000,
		ExpenseRate:      0.5,
		VacancyRate:      0.2,
		InterestRate:     0.06,
		OtherDebtRatio:   0.3,
	}

	a := scorer.Score(in)

	assert.Equal(t, 10, a.SubScores.Credit)
	assert.Equal(t, 5, a.SubScores.Property)
	assert.Equal(t, 5, a.SubScores.InterestRisk)
	assert.Equal(t, 20, a.Score)
	assert.Equal(t, domain.LevelHigh, a.Level)
	assert.Equal(t, "High risk", a.Label)
}

func TestWeightedScorer_Levels(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Level
	}{
		{100, domain.LevelLow},
		{80, domain.LevelLow},
		{79, domain.LevelMedium},
		{50, domain.LevelMedium},
		{49, domain.LevelHigh},
		{0, domain.LevelHigh},
	}
	for _, tt := range tests {
		level, _, summary := weightedLevel(tt.score)
		assert.Equal(t, tt.want, level, "score %d", tt.score)
		assert.NotEmpty(t, summary)
	}
}

func TestWeightedScorer_InterestRateSteps(t *testing.T) {
	in := baseInput()
	in.TotalDebt = 0

	in.InterestRate = 0.045
	score, _ := interestRiskScore(in)
	assert.Equal(t, 20, score)

	in.InterestRate = 0.055
	score, _ = interestRiskScore(in)
	assert.Equal(t, 10, score)
}

func TestWeightedScorer_ZeroIncomeAndRepayment(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := domain.FinancialInput{
		AnnualRentIncome: 1_000_000,
		TotalDebt:        5_000_000,
	}

	a := scorer.Score(in)

	// Zero divisors are replaced by 1, so the ratios equal their numerators.
	assert.Equal(t, 1_000_000.0, a.DCR)
	assert.Equal(t, 20, a.SubScores.Credit)
	assert.Equal(t, 25, a.SubScores.InterestRisk)
	assert.GreaterOrEqual(t, a.Score, MinScore)
	assert.LessOrEqual(t, a.Score, MaxScore)
}

func TestWeightedScorer_SubScoresSumToScore(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	for _, in := range sampleInputs() {
		a := scorer.Score(in)
		require.NotNil(t, a.SubScores)
		assert.Equal(t, a.SubScores.Total(), a.Score)
		assert.True(t, a.SubScores.Credit >= 0 && a.SubScores.Credit <= 30)
		assert.True(t, a.SubScores.Property >= 0 && a.SubScores.Property <= 40)
		assert.True(t, a.SubScores.InterestRisk >= 0 && a.SubScores.InterestRisk <= 30)
	}
}

func TestWeightedScorer_Idempotent(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := baseInput()
	assert.Equal(t, scorer.Score(in), scorer.Score(in))
	assert.Equal(t, scorer.Stress(in), scorer.Stress(in))
}

func TestWeightedScorer_Stress(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())

	results := scorer.Stress(baseInput())
	require.Len(t, results, 2)

	hike := results[0]
	assert.Equal(t, ScenarioInterestHike, hike.Scenario)
	// 30M × 2% × 0.7 = 420k on top of the 1M repayment.
	assert.InDelta(t, 1_420_000, hike.Repayment, 0.01)
	assert.InDelta(t, 0.89, hike.DCR, 1e-9)
	assert.Equal(t, domain.LevelHigh, hike.Level)

	vacancy := results[1]
	assert.Equal(t, ScenarioVacancy, vacancy.Scenario)
	assert.InDelta(t, 1_120_000, vacancy.NOI, 0.01)
	assert.InDelta(t, 1.12, vacancy.DCR, 1e-9)
	assert.Equal(t, domain.LevelMedium, vacancy.Level)
	assert.Equal(t, 1_000_000.0, vacancy.Repayment)
}

func TestWeightedScorer_StressUsesConfiguredVacancy(t *testing.T) {
	cfg := DefaultStressConfig()
	cfg.WorstCaseVacancyRate = 0
	scorer := NewWeightedScorer(cfg)

	in := baseInput()
	in.VacancyRate = 0.1
	vacancy := scorer.Stress(in)[1]

	assert.InDelta(t, 1_400_000, vacancy.NOI, 0.01)
	assert.Equal(t, domain.LevelLow, vacancy.Level)
}

func TestWeightedScorer_StressRateCutLowersRepayment(t *testing.T) {
	scorer := NewWeightedScorer(DefaultStressConfig())
	in := baseInput()
	in.InterestRate = 0.05
	in.SimulatedInterestRate = 0.03

	hike := scorer.Stress(in)[0]

	// 30M × -2% × 0.7 = -420k.
	assert.InDelta(t, 580_000, hike.Repayment, 0.01)
	assert.InDelta(t, 2.17, hike.DCR, 0.001)
	assert.Equal(t, domain.LevelLow, hike.Level)
}

func TestClassifyCoverage(t *testing.T) {
	level, _ := classifyCoverage(1.2)
	assert.Equal(t, domain.LevelLow, level)
	level, _ = classifyCoverage(1.0)
	assert.Equal(t, domain.LevelMedium, level)
	level, detail := classifyCoverage(0.99)
	assert.Equal(t, domain.LevelHigh, level)
	assert.Contains(t, detail, "0.99")
}

func sampleInputs() []domain.FinancialInput {
	inputs := []domain.FinancialInput{baseInput(), {}}
	for _, income := range []float64{0, 1_000_000, 8_000_000} {
		for _, rent := range []float64{0, 600_000, 3_000_000} {
			for _, rate := range []float64{0.01, 0.045, 0.08} {
				inputs = append(inputs, domain.FinancialInput{
					AnnualIncome:          income,
					AnnualRepayment:       900_000,
					TotalDebt:             12_000_000,
					AnnualRentIncome:      rent,
					ExpenseRate:           0.45,
					VacancyRate:           0.18,
					InterestRate:          rate,
					SimulatedInterestRate: rate + 0.02,
					OtherDebtRatio:        0.25,
				})
			}
		}
	}
	return inputs
}
