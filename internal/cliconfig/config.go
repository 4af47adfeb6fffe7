package cliconfig

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/jsongate/internal/report"
)

// Config holds CLI configuration for jsongate.
type Config struct {
	SourceDir  string
	ValidDir   string
	InvalidDir string
	Suffix     string

	Workers    int
	CreateDirs bool

	Report      string
	MetricsFile string

	LogLevel string
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SourceDir:  "./test_data",
		ValidDir:   "./output/valid_files",
		InvalidDir: "./output/invalid_files",
		Suffix:     ".json",
		Workers:    runtime.GOMAXPROCS(0),
		CreateDirs: true,
		LogLevel:   "info",
		Debounce:   500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source dir is required")
	}
	if c.ValidDir == "" || c.InvalidDir == "" {
		return fmt.Errorf("valid and invalid dirs are required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Report != "" {
		if _, err := report.FormatFor(c.Report); err != nil {
			return err
		}
	}
	if c.Suffix == "*" {
		c.Suffix = ""
	}

	src := filepath.Clean(c.SourceDir)
	valid := filepath.Clean(c.ValidDir)
	invalid := filepath.Clean(c.InvalidDir)
	if valid == invalid {
		return fmt.Errorf("valid and invalid dirs must differ (both %q)", valid)
	}
	if src == valid || src == invalid {
		return fmt.Errorf("source dir %q must not be an output dir", src)
	}
	return nil
}

// ParseLevel maps a log level name to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an env string; non-positive values are ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses an env string with strconv.ParseBool.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
