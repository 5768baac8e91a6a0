// Package rules holds the independent cache-efficiency analyzers. Every rule
// reads the same preset snapshot and never mutates it, so rules may run in any
// order or concurrently.
package rules

import (
	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
	"github.com/scan-io-git/cachelens/internal/tokenizer"
	"github.com/scan-io-git/cachelens/internal/volatility"
)

// Rule names, in aggregation order.
const (
	NameMacroPlacement   = "macro-placement"
	NamePromptOrdering   = "prompt-ordering"
	NameTokenThresholds  = "token-thresholds"
	NameInjectionDepth   = "injection-depth"
	NameProviderSpecific = "provider-specific"
)

// Options configures a rule run. The zero value analyzes with the default
// classifier and the heuristic tokenizer and no explicit provider.
type Options struct {
	Provider   string
	Tokenizer  tokenizer.Func
	Classifier *volatility.Classifier
}

func (o Options) tokens(text string) int {
	return tokenizer.OrDefault(o.Tokenizer)(text)
}

func (o Options) classifier() *volatility.Classifier {
	if o.Classifier == nil {
		return volatility.Default
	}
	return o.Classifier
}

// AnalyzeFunc inspects a preset and reports findings.
type AnalyzeFunc func(p *preset.Preset, opts Options) []findings.Finding

// Rule is a named analyzer.
type Rule struct {
	Name        string
	Description string
	Analyze     AnalyzeFunc
}

// All lists every rule in aggregation order.
var All = []Rule{
	{
		Name:        NameMacroPlacement,
		Description: "Dynamic macros break the cached prefix at the point where they appear.",
		Analyze:     MacroPlacement,
	},
	{
		Name:        NamePromptOrdering,
		Description: "Volatile entries placed before stable entries fragment the cacheable prefix.",
		Analyze:     PromptOrdering,
	},
	{
		Name:        NameTokenThresholds,
		Description: "The stable prefix must reach the provider's minimum cacheable size.",
		Analyze:     TokenThresholds,
	},
	{
		Name:        NameInjectionDepth,
		Description: "Shallow in-chat injections disturb the recent-message cache region.",
		Analyze:     InjectionDepth,
	},
	{
		Name:        NameProviderSpecific,
		Description: "Provider-specific caching behaviour for the selected provider.",
		Analyze:     ProviderSpecific,
	},
}

// Lookup finds a rule by name.
func Lookup(name string) (Rule, bool) {
	for _, r := range All {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Names returns the names of all rules in aggregation order.
func Names() []string {
	names := make([]string, 0, len(All))
	for _, r := range All {
		names = append(names, r.Name)
	}
	return names
}
