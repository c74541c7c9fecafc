package http

import (
	"encoding/json"
	"strconv"
	"strings"

	"guarantor-risk/domain"
)

// number accepts a JSON number or a numeric string. Anything else, including
// null, booleans and unparsable strings, decodes as zero.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	*n = 0

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	switch x := v.(type) {
	case float64:
		*n = number(x)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = number(f)
		}
	}
	return nil
}

type assessRequest struct {
	Model                 string `json:"model"`
	AnnualIncome          number `json:"annualIncome"`
	AnnualRepayment       number `json:"annualRepayment"`
	TotalDebt             number `json:"totalDebt"`
	LoanAmount            number `json:"loanAmount"`
	AnnualRentIncome      number `json:"annualRentIncome"`
	ExpenseRate           number `json:"expenseRate"`
	VacancyRate           number `json:"vacancyRate"`
	InterestRate          number `json:"interestRate"`
	SimulatedInterestRate number `json:"simulatedInterestRate"`
	OtherDebtRatio        number `json:"otherDebtRatio"`
	LoanTermYears         number `json:"loanTermYears"`
}

func (r assessRequest) toInput() domain.FinancialInput {
	debt := r.TotalDebt
	if debt == 0 {
		debt = r.LoanAmount
	}
	return domain.FinancialInput{
		AnnualIncome:          float64(r.AnnualIncome),
		AnnualRepayment:       float64(r.AnnualRepayment),
		TotalDebt:             float64(debt),
		AnnualRentIncome:      float64(r.AnnualRentIncome),
		ExpenseRate:           float64(r.ExpenseRate),
		VacancyRate:           float64(r.VacancyRate),
		InterestRate:          float64(r.InterestRate),
		SimulatedInterestRate: float64(r.SimulatedInterestRate),
		OtherDebtRatio:        float64(r.OtherDebtRatio),
		LoanTermYears:         float64(r.LoanTermYears),
	}
}
