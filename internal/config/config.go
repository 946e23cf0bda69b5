// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns a Config holding every default.
// - Load(ctx) layers a YAML file and environment variables over the defaults.
// - Validation errors wrap ErrInvalidConfig; source errors wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/tuning"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `koanf:"log_file"`

	// Locale picks the keyword tables, e.g. "en" or "es".
	Locale string `koanf:"locale"`

	// MinTextLength is the trimmed rune count below which analysis is skipped.
	MinTextLength int `koanf:"min_text_length"`

	// KeywordBaseWeight and PatternBaseWeight score one keyword or pattern hit.
	KeywordBaseWeight float64 `koanf:"keyword_base_weight"`
	PatternBaseWeight float64 `koanf:"pattern_base_weight"`

	// PaceMinutesPerKM converts distance into the estimated duration.
	PaceMinutesPerKM float64 `koanf:"pace_minutes_per_km"`

	// DebounceMS is the quiet period of live analysis in milliseconds.
	DebounceMS int `koanf:"debounce_ms"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory session queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize sets how many session IDs are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// CacheSize bounds the result cache; 0 disables it.
	CacheSize int `koanf:"cache_size"`

	// MetricsFile, when set, receives a Prometheus text dump on exit.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	t := tuning.Default()
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Locale:            "en",
		MinTextLength:     t.MinTextLength,
		KeywordBaseWeight: t.KeywordBaseWeight,
		PatternBaseWeight: t.PatternBaseWeight,
		PaceMinutesPerKM:  t.PaceMinutesPerKM,
		DebounceMS:        300,
		WorkerCount:       runtime.NumCPU() * 2,
		QueueSize:         1024,
		DedupeSize:        50_000,
		CacheSize:         512,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := lexicon.ForLocale(c.Locale); err != nil {
		return fmt.Errorf("%w: locale: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MinTextLength <= 0 {
		return fmt.Errorf("%w: min_text_length must be positive", ErrInvalidConfig)
	}
	if c.KeywordBaseWeight <= 0 || c.PatternBaseWeight <= 0 {
		return fmt.Errorf("%w: keyword and pattern weights must be positive", ErrInvalidConfig)
	}
	if c.PaceMinutesPerKM <= 0 {
		return fmt.Errorf("%w: pace_minutes_per_km must be positive", ErrInvalidConfig)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("%w: debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.WorkerCount < 0 || c.QueueSize < 0 || c.DedupeSize < 0 || c.CacheSize < 0 {
		return fmt.Errorf("%w: sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Lexicon returns the keyword tables for the configured locale.
func (c *Config) Lexicon() (*lexicon.Lexicon, error) {
	lx, err := lexicon.ForLocale(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale: %w", ErrInvalidConfig, err)
	}
	return lx, nil
}

// Tuning returns the detector constants with the configured overrides applied.
func (c *Config) Tuning() tuning.Tuning {
	t := tuning.Default()
	t.MinTextLength = c.MinTextLength
	t.KeywordBaseWeight = c.KeywordBaseWeight
	t.PatternBaseWeight = c.PatternBaseWeight
	t.PaceMinutesPerKM = c.PaceMinutesPerKM
	return t
}

// Debounce returns the live analysis quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
