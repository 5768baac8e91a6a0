package rules

import (
	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

func entry(id, content string) preset.PromptEntry {
	return preset.PromptEntry{Identifier: id, Name: id, Content: content}
}

// buildPreset orders the given entries as listed, all enabled.
func buildPreset(entries ...preset.PromptEntry) *preset.Preset {
	p := &preset.Preset{}
	for _, e := range entries {
		p.Prompts = append(p.Prompts, e)
		p.PromptOrder = append(p.PromptOrder, preset.OrderNode{Identifier: e.Identifier, Enabled: true})
	}
	return p
}

func fixedTokens(n int) func(string) int {
	return func(string) int { return n }
}

func severities(list []findings.Finding) []findings.Severity {
	var out []findings.Severity
	for _, f := range list {
		out = append(out, f.Severity)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func orderNode(id string) preset.OrderNode {
	return preset.OrderNode{Identifier: id, Enabled: true}
}
