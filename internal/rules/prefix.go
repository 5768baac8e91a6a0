package rules

import (
	"strings"

	"github.com/scan-io-git/cachelens/internal/preset"
	"github.com/scan-io-git/cachelens/internal/volatility"
)

// StablePrefix joins the content of every non-empty, non-volatile entry of
// the effective sequence with newlines, in order.
func StablePrefix(n preset.Normalized, classifier *volatility.Classifier) string {
	var parts []string
	for _, record := range n.Sequence {
		content := n.Content(record.Identifier)
		if content == "" || classifier.IsVolatile(record.Identifier, content) {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n")
}

// stablePrefixTokens estimates the size of the stable prefix of n.
func stablePrefixTokens(n preset.Normalized, opts Options) int {
	return opts.tokens(StablePrefix(n, opts.classifier()))
}
