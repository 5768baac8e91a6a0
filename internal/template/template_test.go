package template

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/findings"
)

func TestOrdinalDate(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 31: "31st"}
	for day, want := range tests {
		assert.Equal(t, want, ordinalDate(day))
	}
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "2nd March 2025 3:04:05 pm", formatDateTime(time.Date(2025, 3, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "1st January 2025 12:00:00 am", formatDateTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestScoreClass(t *testing.T) {
	assert.Equal(t, "good", scoreClass(100))
	assert.Equal(t, "good", scoreClass(80))
	assert.Equal(t, "fair", scoreClass(79))
	assert.Equal(t, "fair", scoreClass(50))
	assert.Equal(t, "poor", scoreClass(49))
}

func render(t *testing.T, data ReportData) string {
	t.Helper()
	tmpl, err := NewTemplate("")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tmpl, data))
	return buf.String()
}

func TestRenderResult(t *testing.T) {
	result := &analyzer.Result{
		Provider: "anthropic",
		Score:    70,
		Summary:  findings.Summary{Critical: 1, Info: 1},
		Findings: []findings.Finding{
			{ID: "token-thresholds-anthropic", Rule: "token-thresholds", Severity: findings.SeverityInfo, Title: "Small prefix", AffectedEntry: findings.All},
			{ID: "macro-placement-0-0", Rule: "macro-placement", Severity: findings.SeverityCritical, Title: "Macro <random> first", AffectedEntry: "main"},
		},
	}

	out := render(t, ReportData{Title: "Weekly", Source: "preset.json", Result: result, Time: time.Date(2025, 3, 2, 15, 4, 5, 0, time.UTC)})

	assert.Contains(t, out, "<title>Weekly</title>")
	assert.Contains(t, out, `<div class="score fair">70/100</div>`)
	assert.Contains(t, out, "1 critical")
	assert.Contains(t, out, "Macro &lt;random&gt; first")
	assert.Contains(t, out, "Generated: 2nd March 2025")
	assert.Less(t, strings.Index(out, "macro-placement-0-0"), strings.Index(out, "token-thresholds-anthropic"))
	assert.Contains(t, out, "<td>1</td>")
	assert.NotContains(t, out, "No preset to analyze")
}

func TestRenderEmptyStates(t *testing.T) {
	out := render(t, ReportData{})
	assert.Contains(t, out, "No preset to analyze")
	assert.Contains(t, out, "<title>Cache Efficiency Report</title>")
	assert.NotContains(t, out, "Generated:")

	out = render(t, ReportData{Result: &analyzer.Result{Score: 100, Findings: []findings.Finding{}}})
	assert.Contains(t, out, "No cache-efficiency issues found.")
	assert.Contains(t, out, `<div class="score good">100/100</div>`)
}

func TestNewTemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{with .Result}}{{.Score}} {{add .Summary.Critical 1}}{{end}}`), 0o644))

	tmpl, err := NewTemplate(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tmpl, ReportData{Result: &analyzer.Result{Score: 42, Summary: findings.Summary{Critical: 2}}}))
	assert.Equal(t, "42 3", buf.String())

	_, err = NewTemplate(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
