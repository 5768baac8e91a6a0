// Package logger builds the named hclog loggers used by the commands.
package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/cachelens/internal/config"
)

// Output is where command loggers write. Reports go to stdout, so logs go to stderr.
var Output io.Writer = os.Stderr

// NewLogger returns a logger called name, configured from the logger section of cfg.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           determineLogLevel(cfg),
		Output:          Output,
		DisableTime:     config.GetBoolValue(cfg, "Logger.DisableTime", true),
		JSONFormat:      config.GetBoolValue(cfg, "Logger.JSONFormat", false),
		IncludeLocation: config.GetBoolValue(cfg, "Logger.IncludeLocation", false),
	})
}

// determineLogLevel prefers the CACHELENS_LOG_LEVEL environment variable over
// the configured level. INFO is used when neither is set.
func determineLogLevel(cfg *config.Config) hclog.Level {
	level := os.Getenv(config.EnvLogLevel)
	if level == "" && cfg != nil {
		level = cfg.Logger.Level
	}
	if level == "" {
		return hclog.Info
	}
	return parseLogLevel(level)
}

// parseLogLevel maps a level name onto hclog.Level, warning about names hclog does not know.
func parseLogLevel(levelStr string) hclog.Level {
	level := hclog.LevelFromString(levelStr)
	if level != hclog.NoLevel {
		return level
	}
	hclog.New(&hclog.LoggerOptions{
		Level:       hclog.Warn,
		DisableTime: true,
		Output:      Output,
	}).Warn("Unrecognized log level, defaulting to INFO", "providedLevel", levelStr)
	return hclog.Info
}
