// Package analyzer aggregates the cache-efficiency rules into one scored result.
package analyzer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
	"github.com/scan-io-git/cachelens/internal/rules"
	"github.com/scan-io-git/cachelens/internal/tokenizer"
	"github.com/scan-io-git/cachelens/internal/volatility"
)

// Score weights per severity.
const (
	MaxScore       = 100
	criticalWeight = 20
	warningWeight  = 10
	infoWeight     = 3
)

// Options configures an aggregated analysis.
type Options struct {
	rules.Options

	// Parallel runs the rules concurrently. Output order does not change.
	Parallel bool
	// Rules restricts the run to the named rules. Empty means all of them.
	Rules []string
	// Logger receives trace-level timings. Nil disables them.
	Logger hclog.Logger
}

// Stats describes the analyzed preset. It does not influence the score.
type Stats struct {
	TotalEntries       int    `json:"totalEntries"`
	EnabledEntries     int    `json:"enabledEntries"`
	VolatileEntries    int    `json:"volatileEntries"`
	StablePrefixTokens int    `json:"stablePrefixTokens"`
	Threshold          int    `json:"threshold"`
	ThresholdProvider  string `json:"thresholdProvider"`
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID    string             `json:"run_id"`
	Provider string             `json:"provider"`
	Score    int                `json:"score"`
	Summary  findings.Summary   `json:"summary"`
	Findings []findings.Finding `json:"findings"`
	Stats    Stats              `json:"stats"`
}

// SelectRules resolves rule names to rules in aggregation order. An empty
// list selects every rule.
func SelectRules(names []string) ([]rules.Rule, error) {
	if len(names) == 0 {
		return rules.All, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := rules.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		wanted[name] = true
	}

	selected := make([]rules.Rule, 0, len(wanted))
	for _, r := range rules.All {
		if wanted[r.Name] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

// Analyze runs the selected rules against p and scores the merged findings.
// It never fails: an absent or malformed preset yields no findings and a
// perfect score. Unknown rule names in opts.Rules are skipped.
func Analyze(p *preset.Preset, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	selected := selectKnown(opts.Rules)
	outputs := make([][]findings.Finding, len(selected))

	run := func(i int) error {
		start := time.Now()
		out, err := runRule(selected[i], p, opts.Options)
		outputs[i] = out
		logger.Trace("rule finished", "rule", selected[i].Name, "findings", len(out), "elapsed", time.Since(start))
		return err
	}

	if opts.Parallel {
		var g errgroup.Group
		for i := range selected {
			i := i
			g.Go(func() error {
				return run(i)
			})
		}
		if err := g.Wait(); err != nil {
			logger.Warn("rule skipped", "error", err)
		}
	} else {
		for i := range selected {
			if err := run(i); err != nil {
				logger.Warn("rule skipped", "error", err)
			}
		}
	}

	merged := []findings.Finding{}
	for _, out := range outputs {
		merged = append(merged, out...)
	}

	return Result{
		RunID:    uuid.New().String(),
		Provider: rules.NormalizeProvider(opts.Provider),
		Score:    CalculateScore(merged),
		Summary:  findings.Summarize(merged),
		Findings: merged,
		Stats:    collectStats(p, opts.Options),
	}
}

// runRule runs r, turning a panic into an error so one broken rule costs only
// its own findings.
func runRule(r rules.Rule, p *preset.Preset, opts rules.Options) (out []findings.Finding, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = nil
			err = fmt.Errorf("rule %s panicked: %v", r.Name, recovered)
		}
	}()
	return r.Analyze(p, opts), nil
}

func selectKnown(names []string) []rules.Rule {
	if len(names) == 0 {
		return rules.All
	}
	var known []string
	for _, name := range names {
		if _, ok := rules.Lookup(name); ok {
			known = append(known, name)
		}
	}
	if len(known) == 0 {
		return nil
	}
	selected, _ := SelectRules(known)
	return selected
}

// CalculateScore deducts a fixed weight per finding from MaxScore and clamps
// the result to [0, MaxScore].
func CalculateScore(list []findings.Finding) int {
	s := findings.Summarize(list)
	score := MaxScore - criticalWeight*s.Critical - warningWeight*s.Warning - infoWeight*s.Info
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

func collectStats(p *preset.Preset, opts rules.Options) Stats {
	threshold, provider := rules.ThresholdFor(opts.Provider)
	stats := Stats{Threshold: threshold, ThresholdProvider: provider}
	if p == nil {
		return stats
	}
	stats.TotalEntries = len(p.Prompts)

	n, ok := preset.Normalize(p)
	if !ok {
		return stats
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier = volatility.Default
	}
	stats.EnabledEntries = n.Len()
	for _, record := range n.Sequence {
		if classifier.IsVolatile(record.Identifier, n.Content(record.Identifier)) {
			stats.VolatileEntries++
		}
	}
	if n.Len() > 0 {
		stats.StablePrefixTokens = tokenizer.OrDefault(opts.Tokenizer)(rules.StablePrefix(n, classifier))
	}
	return stats
}
