// Package config loads wayfarer settings from defaults, an optional YAML file
// and WAYFARER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/db"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when WAYFARER_CONFIG is unset.
const DefaultFile = "wayfarer.yaml"

type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// PlannerConfig holds the scheduling tunables shared by every trip day.
type PlannerConfig struct {
	DayStart      string            `yaml:"day_start"`
	DayEnd        string            `yaml:"day_end"`
	BufferMin     int               `yaml:"buffer_min"`
	MaxPerDay     int               `yaml:"max_per_day"`
	MaxDailySpend float64           `yaml:"max_daily_spend"`
	SoftCap       float64           `yaml:"soft_cap"`
	Weights       scheduler.Weights `yaml:"weights"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	d := scheduler.DefaultDayConfig()
	return &Config{
		Planner: PlannerConfig{
			DayStart:  d.DayStart.String(),
			DayEnd:    d.DayEnd.String(),
			BufferMin: d.BufferMin,
			MaxPerDay: d.MaxActivities,
			SoftCap:   d.SoftCap,
			Weights:   d.Weights,
		},
		Storage: StorageConfig{Path: db.DefaultPath()},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// Load builds the effective configuration. A missing default file is not an
// error; a missing file named by WAYFARER_CONFIG is.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("WAYFARER_CONFIG"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		if err := hydrateFromFile(cfg, DefaultFile); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error
	setString := func(env string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	setInt := func(env string, dst *int) {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", env, err))
			return
		}
		*dst = n
	}
	setFloat := func(env string, dst *float64) {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", env, err))
			return
		}
		*dst = f
	}

	setString("WAYFARER_DB_PATH", &cfg.Storage.Path)
	setString("WAYFARER_LOG_LEVEL", &cfg.Log.Level)
	setString("WAYFARER_LOG_FORMAT", &cfg.Log.Format)
	setString("WAYFARER_DAY_START", &cfg.Planner.DayStart)
	setString("WAYFARER_DAY_END", &cfg.Planner.DayEnd)
	setInt("WAYFARER_BUFFER_MIN", &cfg.Planner.BufferMin)
	setInt("WAYFARER_MAX_PER_DAY", &cfg.Planner.MaxPerDay)
	setFloat("WAYFARER_MAX_DAILY_SPEND", &cfg.Planner.MaxDailySpend)
	setFloat("WAYFARER_SOFT_CAP", &cfg.Planner.SoftCap)
	setFloat("WAYFARER_WEIGHT_PREFERENCE", &cfg.Planner.Weights.PreferenceFit)
	setFloat("WAYFARER_WEIGHT_WEATHER", &cfg.Planner.Weights.WeatherFit)
	setFloat("WAYFARER_WEIGHT_BUDGET", &cfg.Planner.Weights.BudgetFit)
	setFloat("WAYFARER_WEIGHT_POPULARITY", &cfg.Planner.Weights.Popularity)

	return errors.Join(errs...)
}

// Validate checks everything the planner and the CLI will rely on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Planner.MaxDailySpend < 0 {
		return fmt.Errorf("planner.max_daily_spend must be non-negative, got %.2f", c.Planner.MaxDailySpend)
	}
	dc, err := c.DayConfig()
	if err != nil {
		return err
	}
	return dc.Validate()
}

// DayConfig converts the planner section into scheduler settings.
func (c *Config) DayConfig() (scheduler.DayConfig, error) {
	start, err := domain.ParseTimeOfDay(c.Planner.DayStart)
	if err != nil {
		return scheduler.DayConfig{}, fmt.Errorf("planner.day_start: %w", err)
	}
	end, err := domain.ParseTimeOfDay(c.Planner.DayEnd)
	if err != nil {
		return scheduler.DayConfig{}, fmt.Errorf("planner.day_end: %w", err)
	}
	return scheduler.DayConfig{
		DayStart:      start,
		DayEnd:        end,
		BufferMin:     c.Planner.BufferMin,
		MaxActivities: c.Planner.MaxPerDay,
		MaxDailySpend: decimal.NewFromFloat(c.Planner.MaxDailySpend).Round(2),
		Weights:       c.Planner.Weights,
		SoftCap:       c.Planner.SoftCap,
	}, nil
}

// ApplyProfile lets a saved planner profile override file and environment
// settings. A nil profile leaves the config untouched.
func (c *Config) ApplyProfile(p *domain.PlannerProfile) {
	if p == nil {
		return
	}
	c.Planner = PlannerConfig{
		DayStart:      p.DayStart.String(),
		DayEnd:        p.DayEnd.String(),
		BufferMin:     p.BufferMin,
		MaxPerDay:     p.MaxPerDay,
		MaxDailySpend: p.MaxDailySpend.InexactFloat64(),
		SoftCap:       p.SoftCap,
		Weights: scheduler.Weights{
			PreferenceFit: p.WeightPreference,
			WeatherFit:    p.WeightWeather,
			BudgetFit:     p.WeightBudget,
			Popularity:    p.WeightPopularity,
		},
	}
}
