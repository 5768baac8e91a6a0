package rules

import (
	"fmt"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

// nearThresholdRatio marks a prefix that is close enough to the threshold for
// a small addition to make it cacheable.
const nearThresholdRatio = 0.9

// TokenThresholds reports a stable prefix that is too short for the provider
// to cache at all. Without an explicit provider the anthropic threshold applies.
func TokenThresholds(p *preset.Preset, opts Options) []findings.Finding {
	n, ok := preset.Normalize(p)
	if !ok {
		return nil
	}

	threshold, provider := ThresholdFor(opts.Provider)
	estimated := stablePrefixTokens(n, opts)
	if estimated >= threshold {
		return nil
	}

	deficit := threshold - estimated
	ratio := float64(estimated) / float64(threshold)
	severity := findings.SeverityInfo
	if ratio >= nearThresholdRatio {
		severity = findings.SeverityWarning
	}

	return []findings.Finding{{
		ID:       fmt.Sprintf("%s-%s", NameTokenThresholds, provider),
		Rule:     NameTokenThresholds,
		Severity: severity,
		Title:    fmt.Sprintf("Stable prefix is below the %s caching minimum", provider),
		Description: fmt.Sprintf(
			"The stable prefix is about %d tokens, %d short of the %d-token minimum %s requires before it caches a prompt (%.0f%% of the threshold).",
			estimated, deficit, threshold, provider, ratio*100),
		AffectedEntry:  findings.All,
		Recommendation: "Consolidate static instructions, character and world information ahead of the chat history so the stable prefix reaches the minimum.",
		Provider:       provider,
		Meta: map[string]interface{}{
			"estimatedTokens": estimated,
			"threshold":       threshold,
			"deficit":         deficit,
			"ratio":           ratio,
		},
	}}
}
