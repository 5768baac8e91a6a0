// Package cmd holds the plumbing shared by the cachelens commands: resolving
// options against the configuration, loading presets and running analyses.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/internal/httpclient"
	"github.com/scan-io-git/cachelens/internal/rules"
	"github.com/scan-io-git/cachelens/internal/source"
	"github.com/scan-io-git/cachelens/internal/tokenizer"
	cerrors "github.com/scan-io-git/cachelens/pkg/shared/errors"
)

// Mode constants
const (
	ModeFile = "file"
	ModeURL  = "url"
)

// DetermineMode reports whether the preset comes from a positional file argument or a URL.
func DetermineMode(args []string) string {
	if len(args) > 0 {
		return ModeFile
	}
	return ModeURL
}

// RunOptions are the analysis settings a command collects from its flags.
// Empty values fall back to the configuration.
type RunOptions struct {
	Path      string
	URL       string
	Provider  string
	Tokenizer string
	Rules     []string
	Parallel  bool
}

// Resolve fills unset options from cfg and validates the result.
func (o RunOptions) Resolve(cfg *config.Config) (RunOptions, error) {
	if cfg != nil {
		if o.Provider == "" {
			o.Provider = cfg.Analyzer.Provider
		}
		if o.Tokenizer == "" {
			o.Tokenizer = cfg.Analyzer.Tokenizer
		}
		if len(o.Rules) == 0 {
			o.Rules = cfg.Analyzer.Rules
		}
		if o.Path == "" && o.URL == "" {
			o.URL = cfg.Source.URL
		}
		o.Parallel = o.Parallel || cfg.Analyzer.Parallel
	}

	if o.Provider != "" && !rules.IsKnownProvider(o.Provider) {
		return o, fmt.Errorf("unknown provider %q, expected one of %v", o.Provider, rules.Providers)
	}
	if _, err := analyzer.SelectRules(o.Rules); err != nil {
		return o, err
	}
	if o.URL != "" && o.Path == "" {
		if err := config.ValidateURL(o.URL); err != nil {
			return o, err
		}
	}
	if o.Path == "" && o.URL == "" {
		return o, fmt.Errorf("either a preset file or the 'url' flag must be specified")
	}
	return o, nil
}

// Runner loads presets from one source and analyzes them with fixed options.
type Runner struct {
	source  source.Source
	options analyzer.Options
	closer  func()
	logger  hclog.Logger
}

// NewRunner resolves opts against cfg and prepares the source and tokenizer.
// Close must be called when the runner is no longer needed.
func NewRunner(cfg *config.Config, opts RunOptions, logger hclog.Logger) (*Runner, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	resolved, err := opts.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	src, err := source.New(source.Options{Path: resolved.Path, URL: resolved.URL}, httpclient.New(logger, cfg), logger)
	if err != nil {
		return nil, err
	}

	tokenize, closer, err := tokenizer.New(resolved.Tokenizer, config.GetPluginsFolder(cfg), logger)
	if err != nil {
		return nil, err
	}

	return &Runner{
		source: src,
		options: analyzer.Options{
			Options: rules.Options{
				Provider:  resolved.Provider,
				Tokenizer: tokenize,
			},
			Parallel: resolved.Parallel,
			Rules:    resolved.Rules,
			Logger:   logger,
		},
		closer: closer,
		logger: logger,
	}, nil
}

// Source returns the preset source of the runner.
func (r *Runner) Source() source.Source {
	return r.source
}

// Run loads the current preset and analyzes it. When the source has no
// preset it returns source.ErrNoPreset and a nil result.
func (r *Runner) Run(ctx context.Context) (*analyzer.Result, error) {
	p, err := r.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := analyzer.Analyze(p, r.options)
	r.logger.Debug("analysis finished",
		"source", r.source.String(),
		"run_id", result.RunID,
		"score", result.Score,
		"findings", len(result.Findings),
	)
	return &result, nil
}

// Close releases the tokenizer plugin, if any.
func (r *Runner) Close() {
	if r.closer != nil {
		r.closer()
	}
}

// Context returns the context of cmd, or a background context when the
// command was invoked without Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// CommandError maps the error of a run onto the exit code the command
// should end with.
func CommandError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, source.ErrNoPreset) {
		return cerrors.NewCommandError(err, cerrors.ExitNoPreset)
	}
	return cerrors.NewCommandError(err, cerrors.ExitFailure)
}

// CheckScore returns a score gate error when failUnder is set and the score is below it.
func CheckScore(result *analyzer.Result, failUnder int) error {
	if result == nil || failUnder <= 0 || result.Score >= failUnder {
		return nil
	}
	return cerrors.NewScoreGateError(result.Score, failUnder)
}
