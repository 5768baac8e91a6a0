package shared

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Versions holds build information of the core binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// PluginMeta is the content of a plugin's VERSION file.
type PluginMeta struct {
	Version    string `json:"version"`
	PluginType string `json:"plugin_type"`
}

var unknownPlugin = PluginMeta{Version: "unknown", PluginType: "unknown"}

// ReadPluginMeta reads and parses a plugin VERSION file.
func ReadPluginMeta(versionFilePath string) PluginMeta {
	data, err := os.ReadFile(versionFilePath)
	if err != nil {
		return unknownPlugin
	}
	var pm PluginMeta
	if err := json.Unmarshal(data, &pm); err != nil {
		return unknownPlugin
	}
	return pm
}

// GetPluginVersions lists the plugins installed in pluginsDir. Plugins live in
// a folder named after the plugin with a VERSION file next to the binary.
// When pluginType is not empty, only plugins of that type are returned.
func GetPluginVersions(pluginsDir, pluginType string) (map[string]PluginMeta, error) {
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return nil, err
	}

	pluginsMeta := make(map[string]PluginMeta)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta := ReadPluginMeta(filepath.Join(pluginsDir, entry.Name(), "VERSION"))
		if pluginType != "" && meta.PluginType != pluginType {
			continue
		}
		pluginsMeta[entry.Name()] = meta
	}
	return pluginsMeta, nil
}

// PluginBinary returns the executable of plugin name inside pluginsDir. Both
// "<dir>/<name>/<name>" and a bare "<dir>/<name>" binary are accepted.
func PluginBinary(pluginsDir, name string) string {
	path := filepath.Join(pluginsDir, name)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, name)
	}
	return path
}
