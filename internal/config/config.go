// Package config defines the configuration types and defaults for sasslint.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/donaldgifford/sasslint/internal/rules"
)

// Report formats accepted by RunnerConfig.Format.
var formats = []string{"text", "stylish", "json"}

// Log formats accepted by LogConfig.Format.
var logFormats = []string{"CONSOLE", "JSON"}

// Config is the top-level configuration.
type Config struct {
	Lint   LintConfig   `yaml:"lint"`
	Fix    FixConfig    `yaml:"fix"`
	Runner RunnerConfig `yaml:"runner"`
	Log    LogConfig    `yaml:"log"`
}

// LintConfig selects the property order and the files to lint.
type LintConfig struct {
	// Order names a registered order table.
	Order string `yaml:"order"`
	// CustomOrder, when set, replaces Order with a table built from the
	// entries (see rules.ParseTable).
	CustomOrder []string `yaml:"custom_order"`
	Extensions  []string `yaml:"extensions"`
	Exclude     []string `yaml:"exclude"`
}

// FixConfig holds fixer settings.
type FixConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// RunnerConfig holds execution settings.
type RunnerConfig struct {
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Lint: LintConfig{
			Order:      rules.DefaultTable,
			Extensions: []string{".sass"},
			Exclude:    []string{"node_modules"},
		},
		Fix: FixConfig{
			MaxIterations: 500,
		},
		Runner: RunnerConfig{
			Workers: 0,
			Format:  "text",
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "CONSOLE",
		},
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Lint.CustomOrder) > 0 {
		if _, err := rules.ParseTable("custom", c.Lint.CustomOrder); err != nil {
			errs = append(errs, fmt.Errorf("lint.custom_order: %w", err))
		}
	} else if _, ok := rules.Lookup(c.Lint.Order); !ok {
		errs = append(errs, fmt.Errorf("lint.order: unknown table %q (available: %s)",
			c.Lint.Order, strings.Join(rules.Names(), ", ")))
	}

	if len(c.Lint.Extensions) == 0 {
		errs = append(errs, errors.New("lint.extensions: at least one extension is required"))
	}

	if c.Fix.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("fix.max_iterations: must be positive, got %d", c.Fix.MaxIterations))
	}

	if c.Runner.Workers < 0 {
		errs = append(errs, fmt.Errorf("runner.workers: must not be negative, got %d", c.Runner.Workers))
	}

	if !slices.Contains(formats, c.Runner.Format) {
		errs = append(errs, fmt.Errorf("runner.format: unknown format %q (available: %s)",
			c.Runner.Format, strings.Join(formats, ", ")))
	}

	if !slices.Contains(logFormats, strings.ToUpper(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Table returns the order table selected by the configuration.
func (c *Config) Table() (*rules.Table, error) {
	if len(c.Lint.CustomOrder) > 0 {
		return rules.ParseTable("custom", c.Lint.CustomOrder)
	}
	t, ok := rules.Lookup(c.Lint.Order)
	if !ok {
		return nil, fmt.Errorf("unknown order table %q", c.Lint.Order)
	}
	return t, nil
}
