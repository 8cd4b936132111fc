package sched_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tickpack/internal/sched"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	chk := require.New(t)

	cfg := sched.DefaultConfig()

	chk.Equal(10, cfg.ReportTopN)
	chk.Equal("", cfg.LogCSVPath)
	chk.Equal("info", cfg.LogLevel)
	chk.True(cfg.LogEnabled())
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	chk := require.New(t)

	chk.Equal(sched.DefaultConfig(), sched.LoadConfig(""))
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	chk := require.New(t)

	path := filepath.Join(t.TempDir(), "nope.yaml")
	chk.Equal(sched.DefaultConfig(), sched.LoadConfig(path))
}

func TestLoadConfigUnparsableFileFallsBackToDefaults(t *testing.T) {
	chk := require.New(t)

	path := writeConfig(t, "not: [valid: yaml")
	chk.Equal(sched.DefaultConfig(), sched.LoadConfig(path))
}

func TestLoadConfigOverridesFromYAML(t *testing.T) {
	chk := require.New(t)

	path := writeConfig(t, "report_top_n: 3\nlog_csv_path: events.csv\nlog_level: debug\n")
	cfg := sched.LoadConfig(path)

	chk.Equal(3, cfg.ReportTopN)
	chk.Equal("events.csv", cfg.LogCSVPath)
	chk.Equal("debug", cfg.LogLevel)
}

func TestLoadConfigClampsNonPositiveReportTopN(t *testing.T) {
	chk := require.New(t)

	path := writeConfig(t, "report_top_n: 0\n")
	chk.Equal(10, sched.LoadConfig(path).ReportTopN)

	path = writeConfig(t, "report_top_n: -5\n")
	chk.Equal(10, sched.LoadConfig(path).ReportTopN)
}

func TestLoadConfigClampsUnrecognizedLogLevel(t *testing.T) {
	chk := require.New(t)

	path := writeConfig(t, "log_level: shout\n")
	cfg := sched.LoadConfig(path)

	chk.Equal("info", cfg.LogLevel)
	chk.True(cfg.LogEnabled())
}

func TestLoadConfigSilentLogLevelDisablesLogging(t *testing.T) {
	chk := require.New(t)

	path := writeConfig(t, "log_level: silent\n")
	cfg := sched.LoadConfig(path)

	chk.Equal("silent", cfg.LogLevel)
	chk.False(cfg.LogEnabled())
}
