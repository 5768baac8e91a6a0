package findings

import "sort"

// Severity grades how much cache efficiency a finding costs.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityWarning, SeverityInfo}

// rank orders severities for sorting; lower is more severe.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// All is the sentinel for findings that concern the whole preset or every provider.
const All = "all"

// Finding is one diagnosed cache-efficiency issue.
type Finding struct {
	ID             string                 `json:"id"`
	Rule           string                 `json:"rule"`
	Severity       Severity               `json:"severity"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	AffectedEntry  string                 `json:"affectedEntry"`
	Recommendation string                 `json:"recommendation"`
	Provider       string                 `json:"provider"`
	Meta           map[string]interface{} `json:"meta,omitempty"`
}

// IsPresetWide reports whether the finding concerns the preset as a whole
// rather than a single entry.
func (f Finding) IsPresetWide() bool {
	return f.AffectedEntry == All
}

// Summary counts findings per severity.
type Summary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Total returns the number of counted findings.
func (s Summary) Total() int {
	return s.Critical + s.Warning + s.Info
}

// Summarize counts the findings of every severity.
func Summarize(list []Finding) Summary {
	var s Summary
	for _, f := range list {
		switch f.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warning++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}

// SortBySeverity returns a copy of list ordered critical first. Findings of
// equal severity keep their relative order.
func SortBySeverity(list []Finding) []Finding {
	sorted := make([]Finding, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.rank() < sorted[j].Severity.rank()
	})
	return sorted
}
