package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// defaultLogLevel is used whenever a config omits log_level or sets it
// to something LoadConfig doesn't recognize.
const defaultLogLevel = "info"

// validLogLevels are the recognized values of Config.LogLevel. "silent"
// disables the CLI's log-package diagnostics entirely.
var validLogLevels = map[string]bool{
	"debug":  true,
	"info":   true,
	"warn":   true,
	"error":  true,
	"silent": true,
}

// Config holds planner-level tuning knobs that sit outside the core
// algorithm: how many entries the analysis report shows per ranking, an
// optional CSV event log, and the log level gating the CLI's operational
// diagnostics. It follows the teacher's default-then-override pattern:
// DefaultConfig supplies sane values, and LoadConfig overrides them from
// YAML when a path is given.
type Config struct {
	ReportTopN int    `yaml:"report_top_n"` // 10 by default
	LogCSVPath string `yaml:"log_csv_path"` // empty disables CSV logging
	LogLevel   string `yaml:"log_level"`    // debug/info/warn/error/silent, "info" by default
}

// DefaultConfig returns the config used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		ReportTopN: 10,
		LogLevel:   defaultLogLevel,
	}
}

// LoadConfig reads YAML and overrides defaults; an empty path returns
// defaults only, and a missing or unparsable file is not fatal — it
// falls back to defaults, matching the teacher's config loader.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.ReportTopN <= 0 {
		cfg.ReportTopN = 10
	}
	if !validLogLevels[cfg.LogLevel] {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg
}

// LogEnabled reports whether the CLI's log-package diagnostics should
// fire at all; "silent" is the only level that suppresses them.
func (c Config) LogEnabled() bool {
	return c.LogLevel != "silent"
}
