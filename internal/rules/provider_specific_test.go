package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

func systemEntry(id, content string) preset.PromptEntry {
	e := entry(id, content)
	e.Role = "system"
	return e
}

func TestProviderSpecificNoProvider(t *testing.T) {
	p := buildPreset(systemEntry("a", "x"), systemEntry("b", "y"))
	for _, provider := range []string{"", "mistral", "cohere"} {
		assert.Empty(t, ProviderSpecific(p, Options{Provider: provider, Tokenizer: fixedTokens(1)}), provider)
	}
	assert.Empty(t, ProviderSpecific(nil, Options{Provider: ProviderAnthropic}))
}

func TestProviderSpecificAnthropicSquashed(t *testing.T) {
	p := buildPreset(systemEntry("main", "Rules."), systemEntry("nsfw", "Guidelines."))
	p.SquashSystemMessages = true

	got := ProviderSpecific(p, Options{Provider: ProviderAnthropic})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityInfo, got[0].Severity)
	assert.Equal(t, ProviderAnthropic, got[0].Provider)
	assert.Equal(t, 2, got[0].Meta["systemPrompts"])
}

func TestProviderSpecificAnthropicNotSquashed(t *testing.T) {
	p := buildPreset(systemEntry("main", "Rules."), entry("chatHistory", ""), systemEntry("jailbreak", "Go."), systemEntry("nsfw", "x"))

	got := ProviderSpecific(p, Options{Provider: "Anthropic"})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityWarning, got[0].Severity)
	assert.Equal(t, 3, got[0].Meta["systemPrompts"])
}

func TestProviderSpecificAnthropicSingleSystemPrompt(t *testing.T) {
	p := buildPreset(systemEntry("main", "Rules."), entry("chatHistory", ""))
	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderAnthropic}))

	// the second system prompt is disabled in the order
	p = buildPreset(systemEntry("main", "Rules."), systemEntry("nsfw", "x"))
	p.PromptOrder[1].Enabled = false
	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderAnthropic}))

	// the second system prompt is disabled on the entry itself
	p = buildPreset(systemEntry("main", "Rules."), systemEntry("nsfw", "x"))
	p.Prompts[1].Enabled = boolPtr(false)
	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderAnthropic}))
}

func TestProviderSpecificOpenAIIncrements(t *testing.T) {
	p := buildPreset(entry("main", "Rules."))

	got := ProviderSpecific(p, Options{Provider: ProviderOpenAI, Tokenizer: fixedTokens(1000)})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityInfo, got[0].Severity)
	assert.Equal(t, 24, got[0].Meta["wastedTokens"])
	assert.Equal(t, 1024, got[0].Meta["nextBoundary"])

	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderOpenAI, Tokenizer: fixedTokens(1024)}))
	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderOpenAI, Tokenizer: fixedTokens(1152)}))

	got = ProviderSpecific(p, Options{Provider: ProviderOpenAI, Tokenizer: fixedTokens(1153)})
	require.Len(t, got, 1)
	assert.Equal(t, 127, got[0].Meta["wastedTokens"])
}

func TestProviderSpecificGoogleMinimum(t *testing.T) {
	p := buildPreset(entry("main", "Rules."))

	got := ProviderSpecific(p, Options{Provider: ProviderGoogle, Tokenizer: fixedTokens(4000)})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityWarning, got[0].Severity)
	assert.Equal(t, 96, got[0].Meta["deficit"])

	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderGoogle, Tokenizer: fixedTokens(4096)}))
}

func TestProviderSpecificAllRecordsDisabled(t *testing.T) {
	p := buildPreset(systemEntry("main", "Rules."))
	p.PromptOrder[0].Enabled = false

	got := ProviderSpecific(p, Options{Provider: ProviderGoogle})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityWarning, got[0].Severity)
	assert.Equal(t, 4096, got[0].Meta["deficit"])

	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderOpenAI}), "an empty prefix sits on a 128-token boundary")
	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderAnthropic}))
}

func TestProviderSpecificAnthropicCountsDistinctEntries(t *testing.T) {
	p := buildPreset(systemEntry("main", "Rules."), entry("chatHistory", ""))
	p.PromptOrder = append(p.PromptOrder, orderNode("main"))

	assert.Empty(t, ProviderSpecific(p, Options{Provider: ProviderAnthropic}), "one system entry listed twice is still one system prompt")

	p.Prompts = append(p.Prompts, systemEntry("nsfw", "Guidelines."))
	p.PromptOrder = append(p.PromptOrder, orderNode("nsfw"))
	got := ProviderSpecific(p, Options{Provider: ProviderAnthropic})
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Meta["systemPrompts"])
}

func TestThresholdFor(t *testing.T) {
	tests := []struct {
		provider      string
		wantThreshold int
		wantProvider  string
	}{
		{"anthropic", 1024, "anthropic"},
		{"OpenAI", 1024, "openai"},
		{" google ", 4096, "google"},
		{"", 1024, "anthropic"},
		{"mistral", 1024, "anthropic"},
	}
	for _, tt := range tests {
		threshold, provider := ThresholdFor(tt.provider)
		assert.Equal(t, tt.wantThreshold, threshold, tt.provider)
		assert.Equal(t, tt.wantProvider, provider, tt.provider)
	}
	assert.True(t, IsKnownProvider("Google"))
	assert.False(t, IsKnownProvider(""))
}

func TestRuleRegistry(t *testing.T) {
	assert.Equal(t, []string{
		NameMacroPlacement, NamePromptOrdering, NameTokenThresholds, NameInjectionDepth, NameProviderSpecific,
	}, Names())

	r, ok := Lookup(NameInjectionDepth)
	require.True(t, ok)
	assert.NotNil(t, r.Analyze)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}
