package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"guarantor-risk/domain"
	"guarantor-risk/service"
)

type inputFlags struct {
	input  domain.FinancialInput
	model  string
	asJSON bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.input.AnnualIncome, "income", 0, "borrower's annual income")
	fs.Float64Var(&f.input.AnnualRepayment, "repayment", 0, "current annual loan repayment")
	fs.Float64Var(&f.input.TotalDebt, "debt", 0, "total outstanding loan principal")
	fs.Float64Var(&f.input.AnnualRentIncome, "rent", 0, "gross annual rent")
	fs.Float64Var(&f.input.ExpenseRate, "expense-rate", 0, "operating expenses as a share of rent (0-1)")
	fs.Float64Var(&f.input.VacancyRate, "vacancy-rate", 0, "assumed vacancy rate (0-1)")
	fs.Float64Var(&f.input.InterestRate, "interest-rate", 0, "current interest rate (0-1)")
	fs.Float64Var(&f.input.SimulatedInterestRate, "simulated-rate", 0, "interest rate for the hike scenario (0-1)")
	fs.Float64Var(&f.input.OtherDebtRatio, "other-debt-ratio", 0, "other debts as a share of income (0-1)")
	fs.Float64Var(&f.input.LoanTermYears, "term-years", 0, "remaining loan term, used by the amortized estimator")
	fs.StringVar(&f.model, "model", "", "risk model: "+strings.Join(service.Models(), ", ")+" (default from config)")
	fs.BoolVar(&f.asJSON, "json", false, "print the result as JSON")
}

// newCLIService builds an uncached service from the loaded configuration.
func newCLIService() (*service.RiskService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return service.NewRiskService(cfg.Model.Default, cfg.Stress.ToService(), nil)
}

func scoreCmd() *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one guarantor risk input",
		Example: `  guarantor-risk score --income 5000000 --repayment 1000000 --debt 30000000 \
    --rent 2000000 --expense-rate 0.3 --vacancy-rate 0.1 --interest-rate 0.03 \
    --simulated-rate 0.05 --other-debt-ratio 0.1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newCLIService()
			if err != nil {
				return err
			}
			report, err := svc.Assess(cmd.Context(), flags.input, flags.model)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func worstCaseCmd() *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "worst-case",
		Short: "Score the input as given, at worst-case vacancy and after a rate hike",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newCLIService()
			if err != nil {
				return err
			}
			report, err := svc.WorstCase(cmd.Context(), flags.input, flags.model)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printWorstCase(cmd.OutOrStdout(), report)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, report domain.RiskReport) {
	printAssessment(w, "", report.Assessment)

	if len(report.Stress) == 0 {
		return
	}
	fmt.Fprintln(w, "Stress scenarios:")
	for _, s := range report.Stress {
		fmt.Fprintf(w, "  %-14s %-7s DCR %s  repayment %s\n",
			s.Scenario, s.Level, formatRatio(s.DCR), formatAmount(s.Repayment))
		fmt.Fprintf(w, "    %s\n", s.Detail)
	}
}

func printWorstCase(w io.Writer, report domain.WorstCaseReport) {
	printAssessment(w, "Original", report.Original)
	fmt.Fprintln(w)
	printAssessment(w, "Worst-case vacancy", report.Vacancy)
	fmt.Fprintln(w)
	printAssessment(w, "Rate hike (repayment "+formatAmount(report.StressedRepayment)+")", report.RateHike)
}

func printAssessment(w io.Writer, title string, a domain.Assessment) {
	if title != "" {
		fmt.Fprintf(w, "== %s ==\n", title)
	}
	fmt.Fprintf(w, "Model: %s\n", a.Model)
	fmt.Fprintf(w, "Score: %d / %d\n", a.Score, service.MaxScore)
	fmt.Fprintf(w, "Level: %s (%s)\n", a.Label, a.Level)
	if a.SubScores != nil {
		fmt.Fprintf(w, "Sub-scores: credit %d, property %d, interest %d\n",
			a.SubScores.Credit, a.SubScores.Property, a.SubScores.InterestRisk)
	}
	fmt.Fprintf(w, "NOI: %s  DCR: %s\n", formatAmount(a.NOI), formatRatio(a.DCR))
	for _, d := range a.Details {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

// formatAmount renders a currency amount rounded to whole units with
// thousands separators.
func formatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).StringFixed(0)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func formatRatio(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
