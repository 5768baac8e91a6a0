package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/cachelens/internal/findings"
)

func TestPromptOrderingChatHistoryBeforeStable(t *testing.T) {
	p := buildPreset(
		entry("main", "You are a narrator."),
		entry("chatHistory", ""),
		entry("charDescription", "Tall and quiet."),
		entry("scenario", "A rainy harbour town."),
	)

	got := PromptOrdering(p, Options{})
	require.Len(t, got, 1)

	f := got[0]
	assert.Equal(t, findings.SeverityWarning, f.Severity)
	assert.Equal(t, "chatHistory", f.AffectedEntry)
	assert.Equal(t, 2, f.Meta["stableAfterCount"])
	assert.Equal(t, []string{"charDescription", "scenario"}, f.Meta["stableAfter"])
	assert.Contains(t, f.Description, "charDescription, scenario")
}

func TestPromptOrderingSingleTrailingStableTolerated(t *testing.T) {
	p := buildPreset(
		entry("main", "You are a narrator."),
		entry("chatHistory", ""),
		entry("jailbreak", "Stay in character."),
	)
	assert.Empty(t, PromptOrdering(p, Options{}))
}

func TestPromptOrderingMacroMakesEntryVolatile(t *testing.T) {
	p := buildPreset(
		entry("clock", "Current time: {{time}}"),
		entry("main", "Rules."),
		entry("chatHistory", ""),
		entry("scenario", "Setting."),
		entry("nsfw", "Guidelines."),
	)

	got := PromptOrdering(p, Options{})
	require.Len(t, got, 2)

	assert.Equal(t, "clock", got[0].AffectedEntry)
	assert.Equal(t, 3, got[0].Meta["stableAfterCount"])
	assert.Equal(t, "chatHistory", got[1].AffectedEntry)
	assert.Equal(t, 2, got[1].Meta["stableAfterCount"])
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestPromptOrderingMissingEntryCountsAsStable(t *testing.T) {
	p := buildPreset(
		entry("chatHistory", ""),
		entry("main", "Rules."),
	)
	p.PromptOrder = append(p.PromptOrder, orderNode("worldInfoAfter"))

	got := PromptOrdering(p, Options{})
	require.Len(t, got, 1)
	assert.Equal(t, []string{"main", "worldInfoAfter"}, got[0].Meta["stableAfter"])
}

func TestPromptOrderingAllVolatileOrEmpty(t *testing.T) {
	assert.Empty(t, PromptOrdering(nil, Options{}))
	assert.Empty(t, PromptOrdering(buildPreset(entry("chatHistory", ""), entry("dialogueExamples", "")), Options{}))
}
