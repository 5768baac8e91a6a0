package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/scan-io-git/cachelens/internal/rules"
	"github.com/scan-io-git/cachelens/internal/tokenizer"
)

// ValidateConfig checks every directive of cfg and reports all problems at once.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}

	var result *multierror.Error
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		result = multierror.Append(result, fmt.Errorf("YAML global config: logger directive is invalid: %w", err))
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		result = multierror.Append(result, fmt.Errorf("YAML global config: http_client directive is invalid: %w", err))
	}
	if err := ValidateAnalyzerConfig(&cfg.Analyzer); err != nil {
		result = multierror.Append(result, fmt.Errorf("YAML global config: analyzer directive is invalid: %w", err))
	}
	if err := ValidateSourceConfig(&cfg.Source); err != nil {
		result = multierror.Append(result, fmt.Errorf("YAML global config: source directive is invalid: %w", err))
	}
	return result.ErrorOrNil()
}

// ValidateLoggerConfig checks the log level name.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	switch strings.ToUpper(loggerConfig.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"retry_wait_time", httpConfig.RetryWaitTime},
		{"retry_max_wait_time", httpConfig.RetryMaxWaitTime},
		{"timeout", httpConfig.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.value, d.name, 100*time.Second); err != nil {
			return err
		}
	}

	return validateProxy(&httpConfig.Proxy)
}

// ValidateAnalyzerConfig checks provider, tokenizer, score gate and rule names.
func ValidateAnalyzerConfig(analyzerConfig *Analyzer) error {
	if analyzerConfig == nil {
		return fmt.Errorf("analyzer configuration is nil")
	}

	var result *multierror.Error
	if analyzerConfig.Provider != "" && !rules.IsKnownProvider(analyzerConfig.Provider) {
		result = multierror.Append(result, fmt.Errorf("provider must be one of %s: %q",
			strings.Join(rules.Providers, ", "), analyzerConfig.Provider))
	}
	if err := ValidateFailUnder(analyzerConfig.FailUnder); err != nil {
		result = multierror.Append(result, err)
	}
	if strings.ContainsAny(analyzerConfig.Tokenizer, `/\`) {
		result = multierror.Append(result, fmt.Errorf("tokenizer must be %q or a plugin name, not a path: %q",
			tokenizer.HeuristicName, analyzerConfig.Tokenizer))
	}
	for _, name := range analyzerConfig.Rules {
		if _, ok := rules.Lookup(name); !ok {
			result = multierror.Append(result, fmt.Errorf("unknown rule %q", name))
		}
	}
	return result.ErrorOrNil()
}

// ValidateFailUnder checks that a score gate lies within the score range.
func ValidateFailUnder(failUnder int) error {
	if failUnder < 0 || failUnder > 100 {
		return fmt.Errorf("fail_under must be between 0 and 100: %d", failUnder)
	}
	return nil
}

// ValidateSourceConfig checks the preset source URL and watcher debounce.
func ValidateSourceConfig(sourceConfig *Source) error {
	if sourceConfig == nil {
		return fmt.Errorf("source configuration is nil")
	}
	if sourceConfig.URL != "" {
		if err := ValidateURL(sourceConfig.URL); err != nil {
			return err
		}
	}
	return validateDuration(sourceConfig.Debounce, "debounce", 10*time.Second)
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("URL must be an absolute http or https URL: %q", raw)
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %s: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%s duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}
	return validatePort(proxy.Port)
}

// validateHost ensures the proxy host carries a scheme, adding "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}
	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}
