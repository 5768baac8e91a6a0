package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icmd "github.com/scan-io-git/cachelens/internal/cmd"
	"github.com/scan-io-git/cachelens/internal/config"
)

const stablePreset = `{
	"prompts": [{"identifier": "main", "content": "You are a helpful assistant.", "role": "system"}],
	"prompt_order": [{"identifier": "main", "enabled": true}]
}`

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAnalyzeOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(stablePreset), 0o644))

	runner, err := icmd.NewRunner(nil, icmd.RunOptions{Path: path}, hclog.NewNullLogger())
	require.NoError(t, err)
	defer runner.Close()

	var out bytes.Buffer
	analyzeOnce(context.Background(), &out, runner, false, hclog.NewNullLogger())
	assert.True(t, strings.HasPrefix(out.String(), "Cache Efficiency Score: "))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))
	out.Reset()
	analyzeOnce(context.Background(), &out, runner, false, hclog.NewNullLogger())
	assert.Equal(t, "No preset to analyze\n", out.String())

	require.NoError(t, os.WriteFile(path, []byte(`{"prompts": [`), 0o644))
	out.Reset()
	analyzeOnce(context.Background(), &out, runner, false, hclog.NewNullLogger())
	assert.Empty(t, out.String())
}

func TestRunWatchCommandReanalyzesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(stablePreset), 0o644))

	Init(&config.Config{Source: config.Source{Debounce: 20 * time.Millisecond}})
	t.Cleanup(func() { Init(nil) })

	out := &syncBuffer{}
	WatchCmd.SetOut(out)
	t.Cleanup(func() { WatchCmd.SetOut(nil) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	WatchCmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() { done <- runWatchCommand(WatchCmd, []string{path}) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Cache Efficiency Score") == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "No preset to analyze")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
