package rules

import (
	"fmt"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

// safeInjectionDepth is the depth from which an injection no longer touches
// the recent messages a provider is likely to have cached.
const safeInjectionDepth = 4

// InjectionDepth reports in-chat injections placed shallow enough to disturb
// the most recent, most cache-relevant messages.
func InjectionDepth(p *preset.Preset, opts Options) []findings.Finding {
	n, ok := preset.Normalize(p)
	if !ok {
		return nil
	}

	classifier := opts.classifier()
	var result []findings.Finding

	for _, entry := range p.Prompts {
		if !entry.IsEnabled() || !n.InSequence(entry.Identifier) || entry.InjectionPosition != preset.InjectionInChat {
			continue
		}
		if !entry.InjectionDepth.Valid || entry.InjectionDepth.Value >= safeInjectionDepth {
			continue
		}

		depth := entry.InjectionDepth.Value
		dynamic := classifier.HasDynamicMacro(entry.Content)
		name := entry.DisplayName()

		contentKind := "static"
		if dynamic {
			contentKind = "dynamic"
		}

		result = append(result, findings.Finding{
			ID:       fmt.Sprintf("%s-%d", NameInjectionDepth, len(result)),
			Rule:     NameInjectionDepth,
			Severity: injectionSeverity(depth, dynamic),
			Title:    fmt.Sprintf("%q is injected at depth %d", name, depth),
			Description: fmt.Sprintf(
				"%q inserts %s content %d message(s) from the end of the conversation, inside the region that changes least between turns.",
				name, contentKind, depth),
			AffectedEntry:  entry.Identifier,
			Recommendation: fmt.Sprintf("Increase the injection depth to %d or more, or place the entry in the regular prompt order.", safeInjectionDepth),
			Provider:       findings.All,
			Meta: map[string]interface{}{
				"depth":             depth,
				"injectionPosition": entry.InjectionPosition,
				"dynamic":           dynamic,
			},
		})
	}
	return result
}

func injectionSeverity(depth int, dynamic bool) findings.Severity {
	switch {
	case depth <= 1 && dynamic:
		return findings.SeverityCritical
	case depth <= 1:
		return findings.SeverityWarning
	case dynamic:
		return findings.SeverityWarning
	default:
		return findings.SeverityInfo
	}
}
