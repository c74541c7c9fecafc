package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"guarantor-risk/domain"
	"guarantor-risk/repository"
)

// Recorder receives scoring telemetry. observability.Metrics implements it.
type Recorder interface {
	ObserveAssessment(model, level string, score int)
	ObserveCacheLookup(hit bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAssessment(string, string, int) {}
func (nopRecorder) ObserveCacheLookup(bool)               {}

type RiskService struct {
	scorers      map[string]Scorer
	simulators   map[string]*WorstCaseSimulator
	defaultModel string
	stress       StressConfig
	cache        repository.CacheRepository
	recorder     Recorder
	logger       *slog.Logger
}

type Option func(*RiskService)

func WithRecorder(r Recorder) Option {
	return func(s *RiskService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *RiskService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewRiskService creates a RiskService whose default model is defaultModel.
// cache may be nil to disable memoization.
func NewRiskService(
	defaultModel string,
	stress StressConfig,
	cache repository.CacheRepository,
	opts ...Option,
) (*RiskService, error) {
	s := &RiskService{
		scorers:      make(map[string]Scorer),
		simulators:   make(map[string]*WorstCaseSimulator),
		defaultModel: defaultModel,
		stress:       stress,
		cache:        cache,
		recorder:     nopRecorder{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range Models() {
		scorer, err := NewScorer(name, stress)
		if err != nil {
			return nil, err
		}
		s.scorers[name] = scorer
		s.simulators[name] = NewWorstCaseSimulator(scorer, stress)
	}
	if _, ok := s.scorers[defaultModel]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, defaultModel)
	}

	return s, nil
}

// Assess scores the input with the named model ("" selects the default) and,
// when the model supports it, runs its stress scenarios.
func (s *RiskService) Assess(
	ctx context.Context,
	input domain.FinancialInput,
	model string,
) (domain.RiskReport, error) {
	scorer, err := s.scorer(model)
	if err != nil {
		return domain.RiskReport{}, err
	}
	input = NormalizeInput(input)

	key := s.cacheKey("assess", scorer.Name(), input)
	var report domain.RiskReport
	if s.lookup(ctx, key, &report) {
		s.observe(report.Assessment)
		return report, nil
	}

	report = domain.RiskReport{Assessment: scorer.Score(input)}
	if st, ok := scorer.(StressTester); ok {
		report.Stress = st.Stress(input)
	}

	s.observe(report.Assessment)
	s.logger.DebugContext(ctx, "risk assessed",
		"model", scorer.Name(),
		"score", report.Assessment.Score,
		"level", report.Assessment.Level,
	)
	s.store(ctx, key, report)

	return report, nil
}

// WorstCase runs the three-scenario simulation with the named model.
func (s *RiskService) WorstCase(
	ctx context.Context,
	input domain.FinancialInput,
	model string,
) (domain.WorstCaseReport, error) {
	scorer, err := s.scorer(model)
	if err != nil {
		return domain.WorstCaseReport{}, err
	}
	input = NormalizeInput(input)

	key := s.cacheKey("worst-case", scorer.Name(), input)
	var report domain.WorstCaseReport
	if s.lookup(ctx, key, &report) {
		s.observe(report.Original)
		return report, nil
	}

	report = s.simulators[scorer.Name()].Run(input)

	s.observe(report.Original)
	s.logger.DebugContext(ctx, "worst case simulated",
		"model", scorer.Name(),
		"original", report.Original.Score,
		"vacancy", report.Vacancy.Score,
		"rate_hike", report.RateHike.Score,
	)
	s.store(ctx, key, report)

	return report, nil
}

func (s *RiskService) DefaultModel() string {
	return s.defaultModel
}

func (s *RiskService) scorer(model string) (Scorer, error) {
	if model == "" {
		model = s.defaultModel
	}
	scorer, ok := s.scorers[strings.ToLower(model)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return scorer, nil
}

func (s *RiskService) observe(a domain.Assessment) {
	s.recorder.ObserveAssessment(a.Model, string(a.Level), a.Score)
}

func (s *RiskService) lookup(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok := s.cache.Get(ctx, key)
	if ok {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
			ok = false
		}
	}
	s.recorder.ObserveCacheLookup(ok)
	return ok
}

// store caches a result; failing to do so never fails the request.
func (s *RiskService) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode result for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache result", "key", key, "error", err)
	}
}

// cacheKey identifies a computation by kind, model, input and stress settings.
func (s *RiskService) cacheKey(kind, model string, in domain.FinancialInput) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('|')
	b.WriteString(model)
	b.WriteByte('|')
	b.WriteString(s.stress.Estimator)
	for _, v := range []float64{
		in.AnnualIncome,
		in.AnnualRepayment,
		in.TotalDebt,
		in.AnnualRentIncome,
		in.ExpenseRate,
		in.VacancyRate,
		in.InterestRate,
		in.SimulatedInterestRate,
		in.OtherDebtRatio,
		in.LoanTermYears,
		s.stress.WorstCaseVacancyRate,
		s.stress.RateIncrease,
		s.stress.HikeFactor,
		s.stress.AmortizationYears,
	} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return kind + ":" + model + ":" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// NormalizeInput coerces values that are not finite numbers to zero.
func NormalizeInput(in domain.FinancialInput) domain.FinancialInput {
	in.AnnualIncome = sanitize(in.AnnualIncome)
	in.AnnualRepayment = sanitize(in.AnnualRepayment)
	in.TotalDebt = sanitize(in.TotalDebt)
	in.AnnualRentIncome = sanitize(in.AnnualRentIncome)
	in.ExpenseRate = sanitize(in.ExpenseRate)
	in.VacancyRate = sanitize(in.VacancyRate)
	in.InterestRate = sanitize(in.InterestRate)
	in.SimulatedInterestRate = sanitize(in.SimulatedInterestRate)
	in.OtherDebtRatio = sanitize(in.OtherDebtRatio)
	in.LoanTermYears = sanitize(in.LoanTermYears)
	return in
}
