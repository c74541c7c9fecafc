package service

import (
	"errors"
	"fmt"

	"guarantor-risk/domain"
)

var ErrUnknownModel = errors.New("unknown risk model")

// Scorer maps one input snapshot to an assessment. Implementations are pure
// and safe for concurrent use.
type Scorer interface {
	Name() string
	Score(input domain.FinancialInput) domain.Assessment
}

// StressTester is implemented by models that carry their own stress scenarios.
type StressTester interface {
	Stress(input domain.FinancialInput) []domain.StressResult
}

// RepaymentScorer scores with a substituted repayment, leaving the input as is.
type RepaymentScorer interface {
	ScoreWithRepayment(input domain.FinancialInput, repayment float64) domain.Assessment
}

// NewScorer builds the named model.
func NewScorer(model string, cfg StressConfig) (Scorer, error) {
	switch model {
	case ModelWeighted:
		return NewWeightedScorer(cfg), nil
	case ModelLinear:
		return NewLinearScorer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
}

// Models lists the names accepted by NewScorer.
func Models() []string {
	return []string{ModelWeighted, ModelLinear}
}
