// Package config loads patron settings. Values come from built-in defaults,
// then an optional YAML file, then environment variables, each layer
// overriding the one before. The result is validated before use so a bad
// setting fails at startup rather than at the first load.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jpl-au/patron"
	"github.com/shopspring/decimal"
)

// Config holds all patron configuration.
type Config struct {
	Fines   FinesConfig   `yaml:"fines"`
	Hash    HashConfig    `yaml:"hash"`
	History HistoryConfig `yaml:"history"`
	Load    LoadConfig    `yaml:"load"`
	Logging LoggingConfig `yaml:"logging"`
}

// FinesConfig bounds the fine amount of every entry.
type FinesConfig struct {
	// Min is the smallest accepted fine (default: 0.00)
	Min string `yaml:"min" env:"PATRON_MIN_FINE" default:"0.00"`

	// Max is the largest accepted fine (default: 9999.99)
	Max string `yaml:"max" env:"PATRON_MAX_FINE" default:"9999.99"`
}

// HashConfig selects the fingerprint algorithm.
type HashConfig struct {
	// Algorithm is one of xxh3, fnv1a, blake2b (default: xxh3)
	Algorithm string `yaml:"algorithm" env:"PATRON_HASH" default:"xxh3"`
}

// HistoryConfig controls revision retention.
type HistoryConfig struct {
	// Depth is revisions kept per id; negative disables (default: 16)
	Depth int `yaml:"depth" env:"PATRON_HISTORY_DEPTH" default:"16"`
}

// LoadConfig controls file loading.
type LoadConfig struct {
	// MaxLineSize is the longest accepted line in bytes (default: 65536)
	MaxLineSize int `yaml:"max_line_size" env:"PATRON_MAX_LINE_SIZE" default:"65536"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"PATRON_LOG_LEVEL" default:"info"`

	// Format is the log format: text, json or logfmt (default: text)
	Format string `yaml:"format" env:"PATRON_LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is usable.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	lo, minErr := decimal.NewFromString(c.Fines.Min)
	if minErr != nil {
		errs = append(errs, fmt.Sprintf("PATRON_MIN_FINE (%q) is not a number", c.Fines.Min))
	} else if lo.IsNegative() {
		errs = append(errs, "PATRON_MIN_FINE must be non-negative")
	}
	hi, maxErr := decimal.NewFromString(c.Fines.Max)
	if maxErr != nil {
		errs = append(errs, fmt.Sprintf("PATRON_MAX_FINE (%q) is not a number", c.Fines.Max))
	} else if !hi.IsPositive() {
		errs = append(errs, "PATRON_MAX_FINE must be positive")
	}
	if minErr == nil && maxErr == nil && lo.GreaterThan(hi) {
		errs = append(errs, fmt.Sprintf("PATRON_MIN_FINE (%s) must be <= PATRON_MAX_FINE (%s)", c.Fines.Min, c.Fines.Max))
	}

	if _, ok := patron.ParseAlgorithm(strings.ToLower(c.Hash.Algorithm)); !ok {
		errs = append(errs, fmt.Sprintf("PATRON_HASH (%q) must be one of: xxh3, fnv1a, blake2b", c.Hash.Algorithm))
	}

	if c.Load.MaxLineSize <= 0 {
		errs = append(errs, "PATRON_MAX_LINE_SIZE must be positive")
	}

	if _, err := log.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Sprintf("PATRON_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true, "logfmt": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("PATRON_LOG_FORMAT (%q) must be one of: text, json, logfmt", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Options converts the configuration into directory options. It assumes
// Validate has passed.
func (c *Config) Options(logger *log.Logger) patron.Config {
	alg, _ := patron.ParseAlgorithm(strings.ToLower(c.Hash.Algorithm))
	return patron.Config{
		Limits: patron.Limits{
			Min: decimal.RequireFromString(c.Fines.Min),
			Max: decimal.RequireFromString(c.Fines.Max),
		},
		HashAlgorithm: alg,
		HistoryDepth:  c.History.Depth,
		MaxLineSize:   c.Load.MaxLineSize,
		Logger:        logger,
	}
}
