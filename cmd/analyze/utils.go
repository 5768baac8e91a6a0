package analyze

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/scan-io-git/cachelens/cmd/version"
	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/report"
	"github.com/scan-io-git/cachelens/internal/sarif"
	"github.com/scan-io-git/cachelens/internal/template"
	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

// Report formats
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
	FormatHTML  = "html"
)

var Formats = []string{FormatText, FormatJSON, FormatSARIF, FormatHTML}

// writeReport renders result in the requested format to the output file, or
// to w when no output file is set. A nil result renders the empty state.
func writeReport(w io.Writer, options *RunOptionsAnalyze, result *analyzer.Result, sourceName string) error {
	var buf bytes.Buffer
	if err := render(&buf, options, result, sourceName); err != nil {
		return err
	}

	if options.OutputPath == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}

	outputFile, _, err := files.DetermineFileFullPath(options.OutputPath, defaultReportName(options.Format))
	if err != nil {
		return err
	}
	if err := files.WriteFile(outputFile, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report to %q: %w", outputFile, err)
	}
	return nil
}

// defaultReportName is the file name used when --output points at a folder.
func defaultReportName(format string) string {
	ext := format
	if format == FormatText {
		ext = "txt"
	}
	return "cachelens-report." + ext
}

func render(w io.Writer, options *RunOptionsAnalyze, result *analyzer.Result, sourceName string) error {
	switch options.Format {
	case FormatJSON:
		return report.WriteJSON(w, result)
	case FormatSARIF:
		sarifReport, err := sarif.Build(result, sarif.ToolMetadata{Version: version.CoreVersion})
		if err != nil {
			return err
		}
		return sarifReport.Write(w)
	case FormatHTML:
		tmpl, err := template.NewTemplate(options.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to load report template: %w", err)
		}
		return template.Render(w, tmpl, template.ReportData{
			Title:       options.Title,
			Time:        time.Now().UTC(),
			Source:      sourceName,
			ToolVersion: version.CoreVersion,
			Result:      result,
		})
	default:
		return report.WriteText(w, result)
	}
}
