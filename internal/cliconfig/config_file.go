package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types. Durations are strings
// and booleans are pointers so an absent key keeps the default.
type FileConfig struct {
	SourceDir   string `toml:"source_dir"`
	ValidDir    string `toml:"valid_dir"`
	InvalidDir  string `toml:"invalid_dir"`
	Suffix      string `toml:"suffix"`
	Workers     int    `toml:"workers"`
	CreateDirs  *bool  `toml:"create_dirs"`
	Report      string `toml:"report"`
	MetricsFile string `toml:"metrics_file"`
	LogLevel    string `toml:"log_level"`
	Debounce    string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.jsongate/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".jsongate", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", fc.SourceDir, &cfg.SourceDir)
	s.setString("valid-dir", fc.ValidDir, &cfg.ValidDir)
	s.setString("invalid-dir", fc.InvalidDir, &cfg.InvalidDir)
	s.setString("suffix", fc.Suffix, &cfg.Suffix)
	s.setString("report", fc.Report, &cfg.Report)
	s.setString("metrics-file", fc.MetricsFile, &cfg.MetricsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setBool("create-dirs", fc.CreateDirs, &cfg.CreateDirs)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
