package rules

import (
	"fmt"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

const roleSystem = "system"

// ProviderSpecific runs the checks of the explicitly selected provider. No
// provider, or one without known behaviour, yields nothing.
func ProviderSpecific(p *preset.Preset, opts Options) []findings.Finding {
	n, ok := preset.Normalize(p)
	if !ok {
		return nil
	}

	switch NormalizeProvider(opts.Provider) {
	case ProviderAnthropic:
		return anthropicSystemMessages(p, n)
	case ProviderOpenAI:
		return openAIIncrements(n, opts)
	case ProviderGoogle:
		return googleMinimum(n, opts)
	default:
		return nil
	}
}

func anthropicSystemMessages(p *preset.Preset, n preset.Normalized) []findings.Finding {
	count := 0
	for _, entry := range p.Prompts {
		if entry.IsEnabled() && entry.Role == roleSystem && n.InSequence(entry.Identifier) {
			count++
		}
	}
	if count <= 1 {
		return nil
	}

	meta := map[string]interface{}{
		"systemPrompts":        count,
		"squashSystemMessages": p.SquashSystemMessages,
	}

	if p.SquashSystemMessages {
		return []findings.Finding{{
			ID:             fmt.Sprintf("%s-anthropic-squash", NameProviderSpecific),
			Rule:           NameProviderSpecific,
			Severity:       findings.SeverityInfo,
			Title:          "System messages are squashed",
			Description:    fmt.Sprintf("%d system prompts are merged into a single system block, which keeps one contiguous cache boundary.", count),
			AffectedEntry:  findings.All,
			Recommendation: "Keep squash_system_messages enabled.",
			Provider:       ProviderAnthropic,
			Meta:           meta,
		}}
	}

	return []findings.Finding{{
		ID:       fmt.Sprintf("%s-anthropic-system", NameProviderSpecific),
		Rule:     NameProviderSpecific,
		Severity: findings.SeverityWarning,
		Title:    fmt.Sprintf("%d separate system messages", count),
		Description: fmt.Sprintf(
			"%d system prompts are sent as separate messages. Anthropic treats each one as its own block, so every boundary is a point where the cached prefix can break.",
			count),
		AffectedEntry:  findings.All,
		Recommendation: "Enable squash_system_messages so the system prompts are merged into one block.",
		Provider:       ProviderAnthropic,
		Meta:           meta,
	}}
}

func openAIIncrements(n preset.Normalized, opts Options) []findings.Finding {
	estimated := stablePrefixTokens(n, opts)
	remainder := estimated % openAICacheIncrement
	if remainder == 0 {
		return nil
	}

	wasted := openAICacheIncrement - remainder
	nextBoundary := estimated + wasted
	return []findings.Finding{{
		ID:       fmt.Sprintf("%s-openai-increment", NameProviderSpecific),
		Rule:     NameProviderSpecific,
		Severity: findings.SeverityInfo,
		Title:    "Stable prefix is not aligned to the 128-token cache increment",
		Description: fmt.Sprintf(
			"OpenAI caches prompts in %d-token increments. The stable prefix is about %d tokens, %d short of the next boundary at %d, so the tail of the prefix is re-processed on every request.",
			openAICacheIncrement, estimated, wasted, nextBoundary),
		AffectedEntry:  findings.All,
		Recommendation: "Adjust the static content so the stable prefix ends on a 128-token boundary.",
		Provider:       ProviderOpenAI,
		Meta: map[string]interface{}{
			"estimatedTokens": estimated,
			"increment":       openAICacheIncrement,
			"nextBoundary":    nextBoundary,
			"wastedTokens":    wasted,
		},
	}}
}

func googleMinimum(n preset.Normalized, opts Options) []findings.Finding {
	threshold := cacheThresholds[ProviderGoogle]
	estimated := stablePrefixTokens(n, opts)
	if estimated >= threshold {
		return nil
	}

	deficit := threshold - estimated
	return []findings.Finding{{
		ID:       fmt.Sprintf("%s-google-minimum", NameProviderSpecific),
		Rule:     NameProviderSpecific,
		Severity: findings.SeverityWarning,
		Title:    "Stable prefix is below the Gemini context caching minimum",
		Description: fmt.Sprintf(
			"Google context caching needs at least %d tokens. The stable prefix is about %d tokens, %d short.",
			threshold, estimated, deficit),
		AffectedEntry:  findings.All,
		Recommendation: "Grow the static portion of the preset or pick a provider with a lower caching minimum.",
		Provider:       ProviderGoogle,
		Meta: map[string]interface{}{
			"estimatedTokens": estimated,
			"threshold":       threshold,
			"deficit":         deficit,
		},
	}}
}
