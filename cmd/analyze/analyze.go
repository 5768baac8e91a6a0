package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	icmd "github.com/scan-io-git/cachelens/internal/cmd"
	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/internal/logger"
	"github.com/scan-io-git/cachelens/internal/rules"
	"github.com/scan-io-git/cachelens/internal/source"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

// RunOptionsAnalyze holds the arguments for the analyze command.
type RunOptionsAnalyze struct {
	URL          string
	Provider     string
	Format       string
	OutputPath   string
	Rules        string
	Tokenizer    string
	Title        string
	TemplatePath string
	FailUnder    int
	Parallel     bool
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	analyzeOptions      RunOptionsAnalyze
	exampleAnalyzeUsage = `  # Analyzing a preset file
  cachelens analyze /path/to/preset.json

  # Analyzing a preset for a specific provider
  cachelens analyze --provider anthropic /path/to/preset.json

  # Analyzing the preset currently loaded in a running application
  cachelens analyze --url http://127.0.0.1:8000/api/presets/current

  # Writing a SARIF report and failing below a score of 80
  cachelens analyze --format sarif --output /tmp/preset.sarif --fail-under 80 /path/to/preset.json

  # Running only selected rules with a tokenizer plugin
  cachelens analyze --rules macro-placement,prompt-ordering --tokenizer wordcount /path/to/preset.yaml`
)

// AnalyzeCmd represents the analyze command.
var AnalyzeCmd = &cobra.Command{
	Use:                   "analyze [--provider/-p PROVIDER] [--format/-f FORMAT] [--output/-o PATH] [--rules LIST] [--fail-under SCORE] [--tokenizer NAME] {--url URL | PATH}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyzeUsage,
	Short:                 "Runs every cache-efficiency rule against a preset and reports the findings",
	Long: fmt.Sprintf(`Runs every cache-efficiency rule against a preset and reports the findings.

List of available rules:
  %s

Supported providers:
  %s`, strings.Join(rules.Names(), "\n  "), strings.Join(rules.Providers, "\n  ")),
	RunE: runAnalyzeCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runAnalyzeCommand executes the analyze command.
func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) && (AppConfig == nil || AppConfig.Source.URL == "") {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-analyze")

	if err := validateAnalyzeArgs(&analyzeOptions, args); err != nil {
		logger.Error("invalid analyze arguments", "error", err)
		return err
	}

	failUnder := analyzeOptions.FailUnder
	if !cmd.Flags().Changed("fail-under") && AppConfig != nil {
		failUnder = AppConfig.Analyzer.FailUnder
	}

	runOptions := icmd.RunOptions{
		URL:       analyzeOptions.URL,
		Provider:  analyzeOptions.Provider,
		Tokenizer: analyzeOptions.Tokenizer,
		Rules:     shared.SplitList(analyzeOptions.Rules),
		Parallel:  analyzeOptions.Parallel,
	}
	if icmd.DetermineMode(args) == icmd.ModeFile {
		runOptions.Path = args[0]
	}

	runner, err := icmd.NewRunner(AppConfig, runOptions, logger)
	if err != nil {
		logger.Error("failed to prepare analysis", "error", err)
		return err
	}
	defer runner.Close()

	result, runErr := runner.Run(icmd.Context(cmd))
	if runErr != nil && !errors.Is(runErr, source.ErrNoPreset) {
		logger.Error("analysis failed", "source", runner.Source().String(), "error", runErr)
		return icmd.CommandError(runErr)
	}

	if err := writeReport(cmd.OutOrStdout(), &analyzeOptions, result, runner.Source().String()); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	if runErr != nil {
		logger.Info("nothing to analyze", "source", runner.Source().String())
		return icmd.CommandError(runErr)
	}

	logger.Info("analyze command completed successfully", "score", result.Score, "findings", len(result.Findings))
	return icmd.CheckScore(result, failUnder)
}

// Initialize flags for the analyze command.
func init() {
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.URL, "url", "", "URL returning the preset currently loaded in a running application.")
	AnalyzeCmd.Flags().StringVarP(&analyzeOptions.Provider, "provider", "p", "", fmt.Sprintf("Target provider (%s). Selects thresholds and provider-specific checks.", strings.Join(rules.Providers, ", ")))
	AnalyzeCmd.Flags().StringVarP(&analyzeOptions.Format, "format", "f", FormatText, fmt.Sprintf("Report format (%s).", strings.Join(Formats, ", ")))
	AnalyzeCmd.Flags().StringVarP(&analyzeOptions.OutputPath, "output", "o", "", "Path to the output file or folder. The report is printed to stdout when empty.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.Rules, "rules", "", "Comma separated list of rules to run. All rules run when empty.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.Tokenizer, "tokenizer", "", "Tokenizer plugin name, or 'heuristic' for the built-in estimator.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.Title, "title", "", "Title of the HTML report.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.TemplatePath, "template", "", "Path to a custom HTML report template.")
	AnalyzeCmd.Flags().IntVar(&analyzeOptions.FailUnder, "fail-under", 0, "Exit with code 2 when the score is below this value.")
	AnalyzeCmd.Flags().BoolVar(&analyzeOptions.Parallel, "parallel", false, "Run the rules concurrently.")
	AnalyzeCmd.Flags().BoolP("help", "h", false, "Show help for the analyze command.")
}
