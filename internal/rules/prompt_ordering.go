package rules

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/preset"
)

// minStableAfterVolatile is the number of stable entries after a volatile one
// that makes the split worth reporting. A single short closing instruction
// after the chat history is common and cheap.
const minStableAfterVolatile = 2

type classifiedEntry struct {
	identifier string
	name       string
	volatile   bool
}

// PromptOrdering reports volatile entries that precede two or more stable
// entries, fragmenting the cacheable prefix.
func PromptOrdering(p *preset.Preset, opts Options) []findings.Finding {
	n, ok := preset.Normalize(p)
	if !ok {
		return nil
	}

	classifier := opts.classifier()
	entries := make([]classifiedEntry, 0, n.Len())
	for _, record := range n.Sequence {
		entries = append(entries, classifiedEntry{
			identifier: record.Identifier,
			name:       n.Name(record.Identifier),
			volatile:   classifier.IsVolatile(record.Identifier, n.Content(record.Identifier)),
		})
	}

	var result []findings.Finding
	for i, entry := range entries {
		if !entry.volatile {
			continue
		}

		var stableNames, stableIDs []string
		for _, after := range entries[i+1:] {
			if !after.volatile {
				stableNames = append(stableNames, after.name)
				stableIDs = append(stableIDs, after.identifier)
			}
		}
		if len(stableNames) < minStableAfterVolatile {
			continue
		}

		result = append(result, findings.Finding{
			ID:       fmt.Sprintf("%s-%d", NamePromptOrdering, i),
			Rule:     NamePromptOrdering,
			Severity: findings.SeverityWarning,
			Title:    fmt.Sprintf("Volatile entry %q precedes %d stable entries", entry.name, len(stableNames)),
			Description: fmt.Sprintf(
				"%q changes between requests but is placed before %d stable entries (%s). "+
					"Those entries are re-processed on every request instead of being served from cache.",
				entry.name, len(stableNames), strings.Join(stableNames, ", ")),
			AffectedEntry:  entry.identifier,
			Recommendation: "Move the stable entries above the volatile entry so they form one contiguous cacheable prefix.",
			Provider:       findings.All,
			Meta: map[string]interface{}{
				"position":         i,
				"totalEntries":     len(entries),
				"stableAfterCount": len(stableNames),
				"stableAfter":      stableNames,
				"stableAfterIds":   stableIDs,
			},
		})
	}
	return result
}
