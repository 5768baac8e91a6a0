package rules

import "strings"

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
)

// Providers lists the providers with known caching behaviour.
var Providers = []string{ProviderAnthropic, ProviderOpenAI, ProviderGoogle}

// minimum cacheable prefix, in tokens
var cacheThresholds = map[string]int{
	ProviderAnthropic: 1024,
	ProviderOpenAI:    1024,
	ProviderGoogle:    4096,
}

// openAICacheIncrement is the granularity in which OpenAI extends a cache hit.
const openAICacheIncrement = 128

// NormalizeProvider lower-cases and trims a provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

// IsKnownProvider reports whether provider has known caching thresholds.
func IsKnownProvider(provider string) bool {
	_, ok := cacheThresholds[NormalizeProvider(provider)]
	return ok
}

// ThresholdFor returns the cache threshold for provider along with the
// provider it was resolved to. Unknown or empty providers resolve to anthropic.
func ThresholdFor(provider string) (int, string) {
	provider = NormalizeProvider(provider)
	if threshold, ok := cacheThresholds[provider]; ok {
		return threshold, provider
	}
	return cacheThresholds[ProviderAnthropic], ProviderAnthropic
}
