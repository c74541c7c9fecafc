package domain

// FinancialInput is the snapshot a guarantor fills in for one assessment.
// Rates and ratios are fractions (0.05 means 5%).
type FinancialInput struct {
	AnnualIncome          float64 `json:"annualIncome"`
	AnnualRepayment       float64 `json:"annualRepayment"`
	TotalDebt             float64 `json:"totalDebt"`
	AnnualRentIncome      float64 `json:"annualRentIncome"`
	ExpenseRate           float64 `json:"expenseRate"`
	VacancyRate           float64 `json:"vacancyRate"`
	InterestRate          float64 `json:"interestRate"`
	SimulatedInterestRate float64 `json:"simulatedInterestRate"`
	OtherDebtRatio        float64 `json:"otherDebtRatio"`
	LoanTermYears         float64 `json:"loanTermYears,omitempty"` // only used by the amortized estimator
}

// WithVacancyRate returns a copy of the input with the vacancy rate replaced.
func (in FinancialInput) WithVacancyRate(rate float64) FinancialInput {
	in.VacancyRate = rate
	return in
}

// WithRepayment returns a copy of the input with the annual repayment replaced.
func (in FinancialInput) WithRepayment(repayment float64) FinancialInput {
	in.AnnualRepayment = repayment
	return in
}
