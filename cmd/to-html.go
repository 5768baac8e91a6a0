package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/cachelens/cmd/version"
	"github.com/scan-io-git/cachelens/internal/analyzer"
	"github.com/scan-io-git/cachelens/internal/logger"
	"github.com/scan-io-git/cachelens/internal/report"
	"github.com/scan-io-git/cachelens/internal/sarif"
	"github.com/scan-io-git/cachelens/internal/template"
	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

type ToHTMLOptions struct {
	TemplatePath string
	Title        string
	OutputFile   string
	Input        string
}

var allToHTMLOptions ToHTMLOptions

var execExampleToHTML = `  # Generate an html report from a saved JSON result
  cachelens to-html --input /tmp/preset-report.json --output /tmp/preset-report.html

  # Generate an html report from a SARIF report
  cachelens to-html -i /tmp/preset.sarif -o /tmp/preset.html --title "Roleplay preset"`

// toHTMLCmd represents the to-html command
var toHTMLCmd = &cobra.Command{
	Use:     "to-html -i /path/to/input/report.{json,sarif} -o /path/to/output/report.html",
	Short:   "Generate HTML formatted report from a saved analysis result",
	Example: execExampleToHTML,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logger.NewLogger(AppConfig, "core-to-html")
		logger.Debug("to-html called", "input", allToHTMLOptions.Input)

		if allToHTMLOptions.Input == "" {
			return fmt.Errorf("the 'input' flag must be specified")
		}

		result, err := readResult(allToHTMLOptions.Input)
		if err != nil {
			return err
		}

		tmpl, err := template.NewTemplate(allToHTMLOptions.TemplatePath)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		err = template.Render(&buf, tmpl, template.ReportData{
			Title:       allToHTMLOptions.Title,
			Time:        time.Now().UTC(),
			Source:      allToHTMLOptions.Input,
			ToolVersion: version.CoreVersion,
			Result:      result,
		})
		if err != nil {
			return err
		}

		if err := files.WriteFile(allToHTMLOptions.OutputFile, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("html report written", "path", allToHTMLOptions.OutputFile)
		return nil
	},
}

// readResult loads a result saved by 'analyze --format json' or 'analyze --format sarif'.
func readResult(path string) (*analyzer.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".sarif") {
		sarifReport, err := sarif.ReadReport(path)
		if err != nil {
			return nil, err
		}
		return sarifReport.ToResult(), nil
	}
	return report.ReadJSONFile(path)
}

func init() {
	toHTMLCmd.Flags().StringVar(&allToHTMLOptions.TemplatePath, "template", "", "path to a custom html template")
	toHTMLCmd.Flags().StringVar(&allToHTMLOptions.Title, "title", "Cache Efficiency Report", "title for generated html file")
	toHTMLCmd.Flags().StringVarP(&allToHTMLOptions.Input, "input", "i", "", "input file with a json or sarif report")
	toHTMLCmd.Flags().StringVarP(&allToHTMLOptions.OutputFile, "output", "o", "cachelens-report.html", "output file")
}
