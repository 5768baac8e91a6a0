package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	list := []Finding{
		{ID: "a", Severity: SeverityInfo},
		{ID: "b", Severity: SeverityCritical},
		{ID: "c", Severity: SeverityWarning},
		{ID: "d", Severity: SeverityInfo},
	}
	s := Summarize(list)
	assert.Equal(t, Summary{Critical: 1, Warning: 1, Info: 2}, s)
	assert.Equal(t, 4, s.Total())
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSortBySeverity(t *testing.T) {
	list := []Finding{
		{ID: "info-1", Severity: SeverityInfo},
		{ID: "warn-1", Severity: SeverityWarning},
		{ID: "crit-1", Severity: SeverityCritical},
		{ID: "warn-2", Severity: SeverityWarning},
		{ID: "info-2", Severity: SeverityInfo},
	}

	sorted := SortBySeverity(list)
	var ids []string
	for _, f := range sorted {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"crit-1", "warn-1", "warn-2", "info-1", "info-2"}, ids)
	assert.Equal(t, "info-1", list[0].ID, "input must not be reordered")
}

func TestIsPresetWide(t *testing.T) {
	assert.True(t, Finding{AffectedEntry: All}.IsPresetWide())
	assert.False(t, Finding{AffectedEntry: "main"}.IsPresetWide())
}
