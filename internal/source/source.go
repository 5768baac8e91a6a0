// Package source supplies preset snapshots to the analyzer.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/cachelens/internal/preset"
)

// ErrNoPreset reports that the source currently has no preset to analyze.
var ErrNoPreset = errors.New("no preset to analyze")

// Source supplies a preset snapshot on demand.
type Source interface {
	Load(ctx context.Context) (*preset.Preset, error)
	String() string
}

// Options selects a source. A file path wins over a URL.
type Options struct {
	Path string
	URL  string
}

// New builds the source described by opts. client is only used for URLs.
func New(opts Options, client *resty.Client, logger hclog.Logger) (Source, error) {
	switch {
	case opts.Path != "":
		return NewFileSource(opts.Path), nil
	case opts.URL != "":
		if client == nil {
			client = resty.New()
		}
		return NewHTTPSource(opts.URL, client, logger), nil
	default:
		return nil, fmt.Errorf("no preset source: pass a preset file or a URL")
	}
}

func nilAsNoPreset(p *preset.Preset, err error) (*preset.Preset, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoPreset
	}
	return p, nil
}
