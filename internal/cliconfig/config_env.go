package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (JSONGATE_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", os.Getenv("JSONGATE_SOURCE_DIR"), &cfg.SourceDir)
	s.setString("valid-dir", os.Getenv("JSONGATE_VALID_DIR"), &cfg.ValidDir)
	s.setString("invalid-dir", os.Getenv("JSONGATE_INVALID_DIR"), &cfg.InvalidDir)
	s.setString("suffix", os.Getenv("JSONGATE_SUFFIX"), &cfg.Suffix)
	s.setString("report", os.Getenv("JSONGATE_REPORT"), &cfg.Report)
	s.setString("metrics-file", os.Getenv("JSONGATE_METRICS_FILE"), &cfg.MetricsFile)
	s.setString("log-level", os.Getenv("JSONGATE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("workers", os.Getenv("JSONGATE_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setBoolFromString("create-dirs", os.Getenv("JSONGATE_CREATE_DIRS"), &cfg.CreateDirs); err != nil {
		return err
	}
	return s.setDuration("debounce", os.Getenv("JSONGATE_DEBOUNCE"), &cfg.Debounce)
}
