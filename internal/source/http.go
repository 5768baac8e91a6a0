package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/cachelens/internal/preset"
)

// HTTPSource fetches the preset currently active in a running host
// application.
type HTTPSource struct {
	URL    string
	client *resty.Client
	logger hclog.Logger
}

// NewHTTPSource returns a source that fetches url with client. A nil logger
// discards logs.
func NewHTTPSource(url string, client *resty.Client, logger hclog.Logger) *HTTPSource {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HTTPSource{URL: url, client: client, logger: logger}
}

// Load fetches and decodes the preset. A 204 response or an empty or null
// body means the host has no preset loaded.
func (s *HTTPSource) Load(ctx context.Context) (*preset.Preset, error) {
	s.logger.Debug("fetching preset", "url", s.URL)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json, application/yaml").
		Get(s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preset from %q: %w", s.URL, err)
	}

	if resp.StatusCode() == http.StatusNoContent {
		return nil, ErrNoPreset
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch preset from %q: unexpected status %s", s.URL, resp.Status())
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, ErrNoPreset
	}

	p, err := preset.Decode(body, formatFromContentType(resp.Header().Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("preset from %q: %w", s.URL, err)
	}
	s.logger.Debug("preset fetched", "bytes", len(body))
	return nilAsNoPreset(p, nil)
}

func (s *HTTPSource) String() string {
	return s.URL
}

func formatFromContentType(contentType string) preset.Format {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return preset.FormatYAML
	}
	return preset.FormatJSON
}
