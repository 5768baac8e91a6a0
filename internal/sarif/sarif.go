// Package sarif exports analysis results as SARIF 2.1.0 and reads them back.
package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/findings"
	"github.com/scan-io-git/cachelens/internal/rules"
	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

const (
	toolName           = "cachelens"
	toolInformationURI = "https://github.com/scan-io-git/cachelens"
	logicalKindEntry   = "promptEntry"
	logicalKindPreset  = "preset"
)

// result property keys
const (
	propFindingID      = "findingId"
	propTitle          = "title"
	propDescription    = "description"
	propSeverity       = "severity"
	propAffectedEntry  = "affectedEntry"
	propProvider       = "provider"
	propRecommendation = "recommendation"
	propRunID          = "runId"
	propMeta           = "meta"
)

type Report struct {
	*sarif.Report
}

type ToolMetadata struct {
	Name    string
	Version string
}

// Level maps a finding severity onto a SARIF result level.
func Level(s findings.Severity) string {
	switch s {
	case findings.SeverityCritical:
		return "error"
	case findings.SeverityWarning:
		return "warning"
	case findings.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}

func severityFromLevel(level string) findings.Severity {
	switch level {
	case "error":
		return findings.SeverityCritical
	case "warning":
		return findings.SeverityWarning
	default:
		return findings.SeverityInfo
	}
}

// Build converts an analysis result into a SARIF report with a single run.
// Every rule is declared on the driver, whether or not it produced findings.
func Build(result *analyzer.Result, tool ToolMetadata) (*Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	name := tool.Name
	if name == "" {
		name = toolName
	}
	run := sarif.NewRunWithInformationURI(name, toolInformationURI)
	if tool.Version != "" {
		version := tool.Version
		run.Tool.Driver.SemanticVersion = &version
	}

	for _, r := range rules.All {
		run.AddRule(r.Name).WithDescription(r.Description)
	}

	if result != nil {
		for _, f := range result.Findings {
			run.AddResult(buildResult(f, result.RunID))
		}
	}

	report.AddRun(run)
	return &Report{Report: report}, nil
}

func buildResult(f findings.Finding, runID string) *sarif.Result {
	kind := logicalKindEntry
	if f.IsPresetWide() {
		kind = logicalKindPreset
	}
	entry := f.AffectedEntry
	location := &sarif.Location{
		LogicalLocations: []*sarif.LogicalLocation{{
			Name:               &entry,
			FullyQualifiedName: &entry,
			Kind:               &kind,
		}},
	}

	message := f.Title
	if f.Description != "" {
		message = f.Title + ". " + f.Description
	}

	result := sarif.NewRuleResult(f.Rule).
		WithMessage(sarif.NewTextMessage(message)).
		WithLevel(Level(f.Severity)).
		WithLocations([]*sarif.Location{location})

	result.Properties = sarif.Properties{
		propFindingID:      f.ID,
		propTitle:          f.Title,
		propDescription:    f.Description,
		propSeverity:       string(f.Severity),
		propAffectedEntry:  f.AffectedEntry,
		propProvider:       f.Provider,
		propRecommendation: f.Recommendation,
		propRunID:          runID,
	}
	if len(f.Meta) > 0 {
		result.Properties[propMeta] = f.Meta
	}
	return result
}

// Write pretty-prints the report to w.
func (r Report) Write(w io.Writer) error {
	if err := r.Report.PrettyWrite(w); err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, creating parent folders.
func (r Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding SARIF report: %w", err)
	}
	return files.WriteFile(path, data)
}

// ReadReport loads a SARIF report from path.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading SARIF report: %w", err)
	}

	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("error decoding SARIF report: %w", err)
	}
	return &Report{Report: &report}, nil
}

// CollectSeverityInfo counts the results of every run per severity.
func (r Report) CollectSeverityInfo() findings.Summary {
	return findings.Summarize(r.Findings())
}

// Findings reconstructs the findings recorded in the report.
func (r Report) Findings() []findings.Finding {
	list := []findings.Finding{}
	for _, run := range r.Runs {
		for _, res := range run.Results {
			list = append(list, toFinding(res))
		}
	}
	return list
}

// ToResult rebuilds an analysis result from a report written by Build. The
// score is recomputed from the findings.
func (r Report) ToResult() *analyzer.Result {
	list := r.Findings()
	result := &analyzer.Result{
		Findings: list,
		Score:    analyzer.CalculateScore(list),
		Summary:  findings.Summarize(list),
	}
	for _, f := range list {
		if f.Provider != "" && f.Provider != findings.All {
			result.Provider = f.Provider
			break
		}
	}
	for _, run := range r.Runs {
		for _, res := range run.Results {
			if id := stringProp(res.Properties, propRunID); id != "" {
				result.RunID = id
				return result
			}
		}
	}
	return result
}

func toFinding(res *sarif.Result) findings.Finding {
	f := findings.Finding{
		ID:             stringProp(res.Properties, propFindingID),
		Title:          stringProp(res.Properties, propTitle),
		Description:    stringProp(res.Properties, propDescription),
		AffectedEntry:  stringProp(res.Properties, propAffectedEntry),
		Provider:       stringProp(res.Properties, propProvider),
		Recommendation: stringProp(res.Properties, propRecommendation),
	}
	if res.RuleID != nil {
		f.Rule = *res.RuleID
	}

	if severity := stringProp(res.Properties, propSeverity); severity != "" {
		f.Severity = findings.Severity(severity)
	} else if res.Level != nil {
		f.Severity = severityFromLevel(*res.Level)
	} else {
		f.Severity = findings.SeverityInfo
	}

	if f.Description == "" && res.Message.Text != nil {
		f.Description = *res.Message.Text
	}
	if f.Title == "" {
		f.Title = f.Description
	}
	if f.AffectedEntry == "" {
		f.AffectedEntry = logicalName(res)
	}
	if meta, ok := res.Properties[propMeta].(map[string]interface{}); ok {
		f.Meta = meta
	}
	return f
}

func logicalName(res *sarif.Result) string {
	for _, loc := range res.Locations {
		for _, logical := range loc.LogicalLocations {
			if logical != nil && logical.Name != nil {
				return *logical.Name
			}
		}
	}
	return findings.All
}

func stringProp(props map[string]interface{}, key string) string {
	if props == nil {
		return ""
	}
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
