package main

import (
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/scan-io-git/cachelens/pkg/shared"
)

// pieceRe splits text into runs of letters or digits and single punctuation marks.
var pieceRe = regexp.MustCompile(`[\p{L}\p{N}]+|[^\s\p{L}\p{N}]`)

// maxRunesPerToken approximates how BPE vocabularies break long words apart.
const maxRunesPerToken = 6

type TokenizerWordcount struct {
	logger hclog.Logger
}

// CountTokens counts one token per punctuation mark and one per started
// maxRunesPerToken runes of every word.
func (t *TokenizerWordcount) CountTokens(text string) (int, error) {
	tokens := 0
	for _, piece := range pieceRe.FindAllString(text, -1) {
		n := utf8.RuneCountInString(piece)
		tokens += (n + maxRunesPerToken - 1) / maxRunesPerToken
	}
	t.logger.Trace("tokens counted", "runes", utf8.RuneCountInString(text), "tokens", tokens)
	return tokens, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Info,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	tokenizer := &TokenizerWordcount{
		logger: logger,
	}

	var pluginMap = map[string]plugin.Plugin{
		shared.PluginTypeTokenizer: &shared.TokenizerPlugin{Impl: tokenizer},
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins:         pluginMap,
	})
}
