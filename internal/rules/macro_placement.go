package rules

import (
	"fmt"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

// earlyPositionFraction is the share of the sequence considered "early";
// macros before it invalidate most of the prompt.
const earlyPositionFraction = 0.4

// MacroPlacement reports every dynamic macro in the effective sequence,
// graded by how early it appears.
func MacroPlacement(p *preset.Preset, opts Options) []findings.Finding {
	n, ok := preset.Normalize(p)
	if !ok || n.Len() == 0 {
		return nil
	}

	total := n.Len()
	classifier := opts.classifier()
	var result []findings.Finding

	for index, record := range n.Sequence {
		macros := classifier.FindDynamicMacros(n.Content(record.Identifier))
		for occurrence, macro := range macros {
			fraction := float64(index) / float64(total)
			name := n.Name(record.Identifier)
			position := fmt.Sprintf("%d/%d", index+1, total)

			result = append(result, findings.Finding{
				ID:       fmt.Sprintf("%s-%d-%d", NameMacroPlacement, index, occurrence),
				Rule:     NameMacroPlacement,
				Severity: macroSeverity(index, fraction),
				Title:    fmt.Sprintf("Dynamic macro %s in %q", macro.Text(), name),
				Description: fmt.Sprintf(
					"Entry %q at position %s contains %s, which resolves to a different value on every request. "+
						"The provider cache can only reuse content that comes before it.",
					name, position, macro.Text()),
				AffectedEntry: record.Identifier,
				Recommendation: fmt.Sprintf(
					"Move %s into an entry placed after the chat history, or replace it with a static value.",
					macro.Text()),
				Provider: findings.All,
				Meta: map[string]interface{}{
					"macro":            macro.Text(),
					"raw":              macro.Raw,
					"position":         index,
					"positionLabel":    position,
					"totalEntries":     total,
					"positionFraction": fraction,
				},
			})
		}
	}
	return result
}

func macroSeverity(index int, fraction float64) findings.Severity {
	switch {
	case index == 0:
		return findings.SeverityCritical
	case fraction < earlyPositionFraction:
		return findings.SeverityWarning
	default:
		return findings.SeverityInfo
	}
}
