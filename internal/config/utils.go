package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	val := reflect.ValueOf(config)
	for _, field := range strings.Split(fieldPath, ".") {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return defaultValue
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen returns value unless it is the zero value, in which case defaultValue is returned.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// GetHome returns the cachelens home folder: CACHELENS_HOME or ~/.cachelens.
func GetHome() string {
	if home := os.Getenv(EnvHome); home != "" {
		if expanded, err := files.ExpandPath(home); err == nil {
			return expanded
		}
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".cachelens"
	}
	return filepath.Join(userHome, ".cachelens")
}

// GetPluginsFolder returns the folder tokenizer plugins are loaded from.
func GetPluginsFolder(cfg *Config) string {
	if cfg != nil && cfg.Analyzer.PluginsFolder != "" {
		if expanded, err := files.ExpandPath(cfg.Analyzer.PluginsFolder); err == nil {
			return expanded
		}
		return cfg.Analyzer.PluginsFolder
	}
	return filepath.Join(GetHome(), "plugins")
}

// GetDebounce returns the configured watcher debounce or DefaultDebounce.
func GetDebounce(cfg *Config) time.Duration {
	if cfg == nil {
		return DefaultDebounce
	}
	return SetThen(cfg.Source.Debounce, DefaultDebounce)
}
