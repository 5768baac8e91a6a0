package httpclient

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/cachelens/internal/config"
)

// HclogAdapter adapts an hclog.Logger to be compatible with the resty log.Logger interface.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates a new adapter that will forward messages to a hclog.Logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// SetLoggerForResty sets the adapted hclog.Logger as the logger for Resty.
func SetLoggerForResty(client *resty.Client, logger hclog.Logger) {
	client.SetLogger(NewHclogAdapter(logger))
}

// New initializes and configures a resty client based on the provided configuration.
func New(logger hclog.Logger, cfg *config.Config) *resty.Client {
	client := resty.New()
	if logger != nil {
		SetLoggerForResty(client, logger)
	}

	restyConfig := applyHTTPClientConfig(cfg)
	client.
		SetDebug(restyConfig.Debug).
		SetRetryCount(restyConfig.RetryCount).
		SetRetryWaitTime(restyConfig.RetryWaitTime).
		SetRetryMaxWaitTime(restyConfig.RetryMaxWaitTime).
		SetTimeout(restyConfig.Timeout).
		SetTLSClientConfig(restyConfig.TLSClientConfig)
	if restyConfig.Proxy != "" {
		client.SetProxy(restyConfig.Proxy)
	}

	return client
}

// applyHTTPClientConfig applies the http_client configuration over the defaults.
func applyHTTPClientConfig(cfg *config.Config) config.RestyHTTPClientConfig {
	defaults := config.DefaultRestyConfig()
	if cfg == nil {
		return defaults
	}

	httpConfig := cfg.HTTPClient
	restyConfig := defaults
	restyConfig.Debug = config.GetBoolValue(cfg, "HTTPClient.Debug", defaults.Debug)
	restyConfig.RetryCount = config.SetThen(httpConfig.RetryCount, defaults.RetryCount)
	restyConfig.RetryWaitTime = config.SetThen(httpConfig.RetryWaitTime, defaults.RetryWaitTime)
	restyConfig.RetryMaxWaitTime = config.SetThen(httpConfig.RetryMaxWaitTime, defaults.RetryMaxWaitTime)
	restyConfig.Timeout = config.SetThen(httpConfig.Timeout, defaults.Timeout)

	tlsConfig := defaults.TLSClientConfig.Clone()
	tlsConfig.InsecureSkipVerify = !config.GetBoolValue(cfg, "HTTPClient.TLSClientConfig.Verify", true)
	restyConfig.TLSClientConfig = tlsConfig

	if httpConfig.Proxy.Host != "" && httpConfig.Proxy.Port != 0 {
		restyConfig.Proxy = fmt.Sprintf("%s:%d", httpConfig.Proxy.Host, httpConfig.Proxy.Port)
	}

	return restyConfig
}
