package service

import "guarantor-risk/domain"

// WorstCaseSimulator scores an input as given, under worst-case vacancy, and
// under a rate hike, holding everything else fixed.
type WorstCaseSimulator struct {
	scorer    Scorer
	estimator RepaymentEstimator
	cfg       StressConfig
}

func NewWorstCaseSimulator(scorer Scorer, cfg StressConfig) *WorstCaseSimulator {
	return &WorstCaseSimulator{
		scorer:    scorer,
		estimator: cfg.DriverEstimator(),
		cfg:       cfg,
	}
}

func (s *WorstCaseSimulator) Run(in domain.FinancialInput) domain.WorstCaseReport {
	stressed := s.StressedRepayment(in)

	return domain.WorstCaseReport{
		Original:          s.scorer.Score(in),
		Vacancy:           s.scorer.Score(in.WithVacancyRate(s.cfg.WorstCaseVacancyRate)),
		RateHike:          s.scoreWithRepayment(in, stressed),
		StressedRepayment: roundTo2Decimals(stressed),
	}
}

// StressedRepayment is the current repayment plus the estimated increase for
// a rise of RateIncrease over the current rate.
func (s *WorstCaseSimulator) StressedRepayment(in domain.FinancialInput) float64 {
	if _, ok := s.estimator.(FlatEstimator); ok {
		return in.AnnualRepayment + in.TotalDebt*s.cfg.RateIncrease
	}
	from := in.InterestRate
	to := from + s.cfg.RateIncrease
	return in.AnnualRepayment + s.estimator.Increase(in.TotalDebt, from, to, in.LoanTermYears)
}

func (s *WorstCaseSimulator) scoreWithRepayment(in domain.FinancialInput, repayment float64) domain.Assessment {
	if rs, ok := s.scorer.(RepaymentScorer); ok {
		return rs.ScoreWithRepayment(in, repayment)
	}
	return s.scorer.Score(in.WithRepayment(repayment))
}
