// Package report renders analysis results as terminal text and JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/findings"
)

// NoPresetMessage is printed instead of a score when there is nothing to analyze.
const NoPresetMessage = "No preset to analyze"

// ScoreLine formats the one-line score report. A nil result yields NoPresetMessage.
func ScoreLine(r *analyzer.Result) string {
	if r == nil {
		return NoPresetMessage
	}
	return fmt.Sprintf("Cache Efficiency Score: %d/100 (%d critical, %d warnings, %d info)",
		r.Score, r.Summary.Critical, r.Summary.Warning, r.Summary.Info)
}

// SeverityLabel returns the display form of a severity, e.g. "Critical".
func SeverityLabel(s findings.Severity) string {
	return cases.Title(language.Und).String(string(s))
}

type styles struct {
	score    lipgloss.Style
	title    lipgloss.Style
	dim      lipgloss.Style
	severity map[findings.Severity]lipgloss.Style
}

// newStyles binds the styles to w so that colors are only emitted to terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		score: r.NewStyle().Bold(true),
		title: r.NewStyle().Bold(true),
		dim:   r.NewStyle().Foreground(lipgloss.Color("245")),
		severity: map[findings.Severity]lipgloss.Style{
			findings.SeverityCritical: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			findings.SeverityWarning:  r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			findings.SeverityInfo:     r.NewStyle().Foreground(lipgloss.Color("45")),
		},
	}
}

// WriteText writes the score line followed by every finding, most severe first.
func WriteText(w io.Writer, r *analyzer.Result) error {
	st := newStyles(w)

	var b strings.Builder
	b.WriteString(st.score.Render(ScoreLine(r)))
	b.WriteString("\n")

	if r == nil || len(r.Findings) == 0 {
		if r != nil {
			b.WriteString(st.dim.Render("No cache-efficiency issues found."))
			b.WriteString("\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, f := range findings.SortBySeverity(r.Findings) {
		label := fmt.Sprintf("[%s]", SeverityLabel(f.Severity))
		if style, ok := st.severity[f.Severity]; ok {
			label = style.Render(label)
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", label, st.title.Render(f.Title))
		fmt.Fprintf(&b, "  %s\n", st.dim.Render(fmt.Sprintf("rule: %s  entry: %s  provider: %s", f.Rule, f.AffectedEntry, f.Provider)))
		if f.Description != "" {
			fmt.Fprintf(&b, "  %s\n", f.Description)
		}
		if f.Recommendation != "" {
			fmt.Fprintf(&b, "  Recommendation: %s\n", f.Recommendation)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
