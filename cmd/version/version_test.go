package version

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

func TestCollectVersions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wordcount"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordcount", "VERSION"), []byte(`{"version":"1.0.0","plugin_type":"tokenizer"}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "other"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other", "VERSION"), []byte(`{"version":"2.0.0","plugin_type":"exporter"}`), 0o644))

	Init(&config.Config{Analyzer: config.Analyzer{PluginsFolder: dir}})
	t.Cleanup(func() { Init(nil) })

	versions := collectVersions()
	assert.Equal(t, CoreVersion, versions.Versions.Version)
	assert.Equal(t, map[string]shared.PluginMeta{
		"wordcount": {Version: "1.0.0", PluginType: shared.PluginTypeTokenizer},
	}, versions.PluginsMeta)

	var buf bytes.Buffer
	printVersionInfo(&buf, versions)
	assert.Contains(t, buf.String(), "Core Version: v"+CoreVersion)
	assert.Contains(t, buf.String(), "  wordcount: v1.0.0 (Type: tokenizer)")
}

func TestCollectVersionsMissingFolder(t *testing.T) {
	Init(&config.Config{Analyzer: config.Analyzer{PluginsFolder: filepath.Join(t.TempDir(), "missing")}})
	t.Cleanup(func() { Init(nil) })

	versions := collectVersions()
	assert.Empty(t, versions.PluginsMeta)

	var buf bytes.Buffer
	printVersionInfo(&buf, versions)
	assert.Contains(t, buf.String(), "Tokenizer Plugins: none")
}
