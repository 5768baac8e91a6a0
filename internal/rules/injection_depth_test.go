package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

func injected(id, content string, position int, depth preset.OptionalInt) preset.PromptEntry {
	e := entry(id, content)
	e.InjectionPosition = position
	e.InjectionDepth = depth
	return e
}

func TestInjectionDepthSeverityMatrix(t *testing.T) {
	tests := []struct {
		name    string
		content string
		depth   int
		want    findings.Severity
	}{
		{"depth 0 dynamic", "{{random}}", 0, findings.SeverityCritical},
		{"depth 1 dynamic", "Now: {{time}}", 1, findings.SeverityCritical},
		{"depth 0 static", "Stay concise.", 0, findings.SeverityWarning},
		{"depth 1 static", "Stay concise.", 1, findings.SeverityWarning},
		{"depth 2 dynamic", "{{roll 1d6}}", 2, findings.SeverityWarning},
		{"depth 3 dynamic", "{{date}}", 3, findings.SeverityWarning},
		{"depth 2 static", "Remember the plot.", 2, findings.SeverityInfo},
		{"depth 3 static", "Remember the plot.", 3, findings.SeverityInfo},
		{"depth 3 deterministic macro", "{{char}} is tired.", 3, findings.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPreset(entry("main", "Rules."), injected("note", tt.content, preset.InjectionInChat, preset.Int(tt.depth)))
			got := InjectionDepth(p, Options{})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Severity)
			assert.Equal(t, "note", got[0].AffectedEntry)
			assert.Equal(t, tt.depth, got[0].Meta["depth"])
			assert.Equal(t, preset.InjectionInChat, got[0].Meta["injectionPosition"])
		})
	}
}

func TestInjectionDepthSkips(t *testing.T) {
	tests := []struct {
		name  string
		entry preset.PromptEntry
	}{
		{"relative position", injected("note", "{{random}}", 0, preset.Int(0))},
		{"deep enough", injected("note", "{{random}}", preset.InjectionInChat, preset.Int(4))},
		{"very deep", injected("note", "{{random}}", preset.InjectionInChat, preset.Int(10))},
		{"null depth", injected("note", "{{random}}", preset.InjectionInChat, preset.OptionalInt{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPreset(tt.entry)
			assert.Empty(t, InjectionDepth(p, Options{}))
		})
	}
}

func TestInjectionDepthRequiresEnabledAndOrdered(t *testing.T) {
	disabled := injected("note", "{{random}}", preset.InjectionInChat, preset.Int(0))
	disabled.Enabled = boolPtr(false)
	assert.Empty(t, InjectionDepth(buildPreset(entry("main", "x"), disabled), Options{}))

	// present in prompts but switched off in the order
	p := buildPreset(entry("main", "x"), injected("note", "{{random}}", preset.InjectionInChat, preset.Int(0)))
	p.PromptOrder[1].Enabled = false
	assert.Empty(t, InjectionDepth(p, Options{}))

	// present in prompts but never ordered
	p = buildPreset(entry("main", "x"))
	p.Prompts = append(p.Prompts, injected("note", "{{random}}", preset.InjectionInChat, preset.Int(0)))
	assert.Empty(t, InjectionDepth(p, Options{}))
}

func TestInjectionDepthIgnoresIdentifierVolatility(t *testing.T) {
	// chatHistory is volatile by identifier, but only macros count here.
	p := buildPreset(injected("chatHistory", "plain", preset.InjectionInChat, preset.Int(0)))
	got := InjectionDepth(p, Options{})
	require.Len(t, got, 1)
	assert.Equal(t, findings.SeverityWarning, got[0].Severity)
	assert.Equal(t, false, got[0].Meta["dynamic"])
}

func TestInjectionDepthUniqueIDs(t *testing.T) {
	p := buildPreset(
		injected("a", "", preset.InjectionInChat, preset.Int(0)),
		injected("b", "", preset.InjectionInChat, preset.Int(2)),
	)
	got := InjectionDepth(p, Options{})
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}
