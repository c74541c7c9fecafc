// Package config loads service configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"guarantor-risk/service"
)

const EnvPrefix = "GUARANTOR_RISK"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Model     ModelConfig     `mapstructure:"model"`
	Stress    StressConfig    `mapstructure:"stress"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text console"`
}

type ModelConfig struct {
	Default string `mapstructure:"default" validate:"oneof=weighted linear"`
}

// StressConfig holds the worst-case assumptions. Defaults: 20% vacancy,
// +2 points of interest, 0.7 hike factor, approximate estimator.
type StressConfig struct {
	WorstCaseVacancyRate float64 `mapstructure:"worst_case_vacancy_rate" validate:"gte=0,lte=1"`
	RateIncrease         float64 `mapstructure:"rate_increase"           validate:"gte=0,lte=1"`
	HikeFactor           float64 `mapstructure:"hike_factor"             validate:"gte=0,lte=1"`
	Estimator            string  `mapstructure:"estimator"               validate:"oneof=approximate amortized"`
	AmortizationYears    float64 `mapstructure:"amortization_years"      validate:"gt=0,lte=100"`
}

type CacheConfig struct {
	Backend       string        `mapstructure:"backend"        validate:"oneof=none memory bigcache redis"`
	TTL           time.Duration `mapstructure:"ttl"            validate:"gte=0"`
	BigCacheMaxMB int           `mapstructure:"bigcache_max_mb" validate:"gte=0"`
	Redis         RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"gte=0"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"gte=1"`
	Burst             int  `mapstructure:"burst"               validate:"gte=1"`
}

// SetDefaults registers every key so environment overrides resolve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("model.default", service.ModelWeighted)

	v.SetDefault("stress.worst_case_vacancy_rate", service.DefaultWorstCaseVacancyRate)
	v.SetDefault("stress.rate_increase", service.DefaultRateIncrease)
	v.SetDefault("stress.hike_factor", service.DefaultHikeFactor)
	v.SetDefault("stress.estimator", service.EstimatorApproximate)
	v.SetDefault("stress.amortization_years", service.DefaultAmortizationYears)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.bigcache_max_mb", 64)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 30)
	v.SetDefault("ratelimit.burst", 5)
}

// BindEnv makes GUARANTOR_RISK_STRESS_RATE_INCREASE and friends override keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the effective configuration out of v and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("%w: cache.redis.addr is required for the redis backend", ErrInvalidConfig)
	}
	return nil
}

func (c StressConfig) ToService() service.StressConfig {
	return service.StressConfig{
		WorstCaseVacancyRate: c.WorstCaseVacancyRate,
		RateIncrease:         c.RateIncrease,
		HikeFactor:           c.HikeFactor,
		Estimator:            c.Estimator,
		AmortizationYears:    c.AmortizationYears,
	}
}
