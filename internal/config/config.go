package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given. Its absence is not an error.
const DefaultConfigFile = "cachelens.yml"

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Analyzer   Analyzer   `yaml:"analyzer"`
	Source     Source     `yaml:"source"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Analyzer holds the defaults for analysis runs. Command line flags take
// precedence over these values.
type Analyzer struct {
	Provider      string   `yaml:"provider"`
	Tokenizer     string   `yaml:"tokenizer"`
	PluginsFolder string   `yaml:"plugins_folder"`
	Parallel      bool     `yaml:"parallel"`
	FailUnder     int      `yaml:"fail_under"`
	Rules         []string `yaml:"rules"`
}

// Source configures where presets come from when no file is given.
type Source struct {
	URL      string        `yaml:"url"`
	Debounce time.Duration `yaml:"debounce"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// NewConfig reads the configuration from configPath. An empty configPath
// falls back to CACHELENS_CONFIG and then to DefaultConfigFile; only an
// explicitly requested file has to exist. Environment overrides are applied
// and the result is validated.
func NewConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	path, required := resolveConfigPath(configPath)
	if path != "" {
		err := LoadYAML(path, cfg)
		switch {
		case err == nil:
		case !required && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to load config %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveConfigPath(configPath string) (string, bool) {
	if configPath != "" {
		return configPath, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	return DefaultConfigFile, false
}

func applyEnvOverrides(cfg *Config) {
	if provider := os.Getenv(EnvProvider); provider != "" {
		cfg.Analyzer.Provider = provider
	}
	if folder := os.Getenv(EnvPluginsFolder); folder != "" {
		cfg.Analyzer.PluginsFolder = folder
	}
}
