package tokenizer

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/scan-io-git/cachelens/pkg/shared"
	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

// New resolves a tokenizer by name. The empty name and HeuristicName select
// the built-in estimator; any other name is launched as a plugin binary from
// pluginsFolder (see shared.PluginBinary). The returned closer must be called once the tokenizer is no
// longer needed.
func New(name, pluginsFolder string, logger hclog.Logger) (Func, func(), error) {
	if name == "" || name == HeuristicName {
		return Heuristic, func() {}, nil
	}

	pluginPath := shared.PluginBinary(pluginsFolder, name)
	if err := files.ValidatePath(pluginPath); err != nil {
		return nil, nil, fmt.Errorf("tokenizer plugin %q is not available: %w", name, err)
	}
	return FromPlugin(pluginPath, logger)
}

// FromPlugin starts the tokenizer plugin at pluginPath and dispenses its counter.
func FromPlugin(pluginPath string, logger hclog.Logger) (Func, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  shared.HandshakeConfig,
		Plugins:          shared.PluginMap,
		Cmd:              exec.Command(pluginPath),
		Logger:           logger.Named("tokenizer-plugin"),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to start tokenizer plugin %q: %w", pluginPath, err)
	}

	raw, err := rpcClient.Dispense(shared.PluginTypeTokenizer)
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to dispense tokenizer from %q: %w", pluginPath, err)
	}

	counter, ok := raw.(shared.Tokenizer)
	if !ok {
		client.Kill()
		return nil, nil, fmt.Errorf("plugin %q does not implement a tokenizer", pluginPath)
	}

	return FromCounter(counter, logger), client.Kill, nil
}

// FromCounter adapts a fallible counter to Func. Counting failures are logged
// and answered with the heuristic estimate.
func FromCounter(counter shared.Tokenizer, logger hclog.Logger) Func {
	return func(text string) int {
		n, err := counter.CountTokens(text)
		if err != nil || n < 0 {
			logger.Warn("tokenizer failed, falling back to heuristic", "error", err, "count", n)
			return Heuristic(text)
		}
		return n
	}
}
