package domain

type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
	LevelFatal    Level = "fatal"
)

type SubScores struct {
	Credit       int `json:"credit"`
	Property     int `json:"property"`
	InterestRisk int `json:"interestRisk"`
}

// Total is the composite score of the weighted model.
func (s SubScores) Total() int {
	return s.Credit + s.Property + s.InterestRisk
}

type Assessment struct {
	Model     string     `json:"model"`
	Score     int        `json:"score"`
	Level     Level      `json:"level"`
	Label     string     `json:"label"`
	SubScores *SubScores `json:"subScores,omitempty"`
	NOI       float64    `json:"noi"`
	DCR       float64    `json:"dcr"`
	Details   []string   `json:"details"`
}

type StressResult struct {
	Scenario  string  `json:"scenario"`
	Level     Level   `json:"level"`
	DCR       float64 `json:"dcr"`
	NOI       float64 `json:"noi"`
	Repayment float64 `json:"repayment"`
	Detail    string  `json:"detail"`
}

type RiskReport struct {
	Assessment Assessment     `json:"assessment"`
	Stress     []StressResult `json:"stress,omitempty"`
}

type WorstCaseReport struct {
	Original          Assessment `json:"original"`
	Vacancy           Assessment `json:"vacancy"`
	RateHike          Assessment `json:"rateHike"`
	StressedRepayment float64    `json:"stressedRepayment"`
}
