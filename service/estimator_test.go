package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearEstimator(t *testing.T) {
	e := NewLinearEstimator(0.7)

	assert.InDelta(t, 420_000, e.Increase(30_000_000, 0.03, 0.05, 0), 0.01)
	assert.InDelta(t, -420_000, e.Increase(30_000_000, 0.05, 0.03, 0), 0.01)
	assert.Zero(t, e.Increase(0, 0.03, 0.05, 0))
}

func TestFlatEstimator(t *testing.T) {
	var e FlatEstimator

	assert.InDelta(t, 600_000, e.Increase(30_000_000, 0.03, 0.05, 0), 0.01)
	assert.Zero(t, e.Increase(30_000_000, 0.05, 0.05, 0))
	assert.InDelta(t, -600_000, e.Increase(30_000_000, 0.05, 0.03, 0), 0.01)
}

func TestAmortizedEstimator(t *testing.T) {
	e := NewAmortizedEstimator(30)

	t.Run("one year at 12%", func(t *testing.T) {
		// 100k over 12 months at 1% monthly is 8,884.88 a month.
		got := e.Increase(100_000, 0, 0.12, 1)
		assert.InDelta(t, 6_618.55, got, 0.05)
	})

	t.Run("falls back to default term", func(t *testing.T) {
		assert.Equal(t, e.Increase(1_000_000, 0.03, 0.05, 30), e.Increase(1_000_000, 0.03, 0.05, 0))
	})

	t.Run("rate cut lowers the payment", func(t *testing.T) {
		cut := e.Increase(1_000_000, 0.05, 0.03, 10)
		assert.Less(t, cut, 0.0)
		assert.InDelta(t, -e.Increase(1_000_000, 0.03, 0.05, 10), cut, 0.01)
	})

	t.Run("grows with the rate delta", func(t *testing.T) {
		small := e.Increase(1_000_000, 0.03, 0.04, 20)
		large := e.Increase(1_000_000, 0.03, 0.06, 20)
		assert.Greater(t, large, small)
		assert.Greater(t, small, 0.0)
	})

	t.Run("zero default term uses package default", func(t *testing.T) {
		assert.Equal(t, float64(DefaultAmortizationYears), NewAmortizedEstimator(0).DefaultTermYears)
	})
}

func TestStressConfig_Estimators(t *testing.T) {
	cfg := DefaultStressConfig()
	assert.IsType(t, LinearEstimator{}, cfg.HikeEstimator())
	assert.IsType(t, FlatEstimator{}, cfg.DriverEstimator())

	cfg.Estimator = EstimatorAmortized
	assert.IsType(t, AmortizedEstimator{}, cfg.HikeEstimator())
	assert.IsType(t, AmortizedEstimator{}, cfg.DriverEstimator())
}
