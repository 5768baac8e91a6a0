package template

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/findings"
)

const templateName = "report.html"

//go:embed report.html
var defaultReport string

// ReportData is the model the report template renders. A nil Result renders
// the "nothing to analyze" state.
type ReportData struct {
	Title       string
	Time        time.Time
	Source      string
	ToolVersion string
	Result      *analyzer.Result
}

// SortedFindings returns the findings ordered critical first.
func (d ReportData) SortedFindings() []findings.Finding {
	if d.Result == nil {
		return nil
	}
	return findings.SortBySeverity(d.Result.Findings)
}

// add adds two integers and returns the result.
// helper function for html template
func add(a, b int) int {
	return a + b
}

// ordinalDate returns a string with the ordinal number of the day
// helper function for html template
func ordinalDate(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// formatDateTime formats a time.Time object into the specified string format.
// helper function for html template
func formatDateTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %s %d %d:%02d:%02d %s", ordinalDate(t.Day()), t.Month(), t.Year(), hour, t.Minute(), t.Second(), t.Format("pm"))
}

// severityLabel title-cases a severity for display.
func severityLabel(s findings.Severity) string {
	return cases.Title(language.Und).String(string(s))
}

// scoreClass buckets a score into a css class.
func scoreClass(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":            add,
		"formatDateTime": formatDateTime,
		"severityLabel":  severityLabel,
		"scoreClass":     scoreClass,
	}
}

// NewTemplate parses the report template at templateFile, or the built-in
// dashboard when templateFile is empty.
func NewTemplate(templateFile string) (*template.Template, error) {
	if templateFile == "" {
		return template.New(templateName).Funcs(funcMap()).Parse(defaultReport)
	}
	return template.New(filepath.Base(templateFile)).Funcs(funcMap()).ParseFiles(templateFile)
}

// Render executes tmpl with data.
func Render(w io.Writer, tmpl *template.Template, data ReportData) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("error rendering report: %w", err)
	}
	return nil
}
