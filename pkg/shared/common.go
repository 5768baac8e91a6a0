package shared

import (
	"github.com/hashicorp/go-plugin"
)

const (
	PluginTypeTokenizer string = "tokenizer"
)

// HandshakeConfig is shared by the host and every tokenizer plugin binary.
var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "CACHELENS",
	MagicCookieValue: "7d1c0e5a9b3f42a8c61e0f2d94b7a3e5c8d1f6a0",
}

var PluginMap = map[string]plugin.Plugin{
	PluginTypeTokenizer: &TokenizerPlugin{},
}
