package score

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/cachelens/internal/analyzer"
	icmd "github.com/scan-io-git/cachelens/internal/cmd"
	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/internal/logger"
	"github.com/scan-io-git/cachelens/internal/report"
	"github.com/scan-io-git/cachelens/internal/source"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

// RunOptionsScore holds the arguments for the score command.
type RunOptionsScore struct {
	URL       string
	Provider  string
	Tokenizer string
	FailUnder int
}

var (
	AppConfig         *config.Config
	scoreOptions      RunOptionsScore
	exampleScoreUsage = `  # Printing the score of a preset file
  cachelens score /path/to/preset.json

  # Gating a pipeline on the score of the preset loaded in a running application
  cachelens score --url http://127.0.0.1:8000/api/presets/current --fail-under 90`
)

// ScoreCmd represents the score command.
var ScoreCmd = &cobra.Command{
	Use:                   "score [--provider/-p PROVIDER] [--tokenizer NAME] [--fail-under SCORE] {--url URL | PATH}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScoreUsage,
	Short:                 "Prints the one-line cache efficiency score of a preset",
	Args:                  cobra.MaximumNArgs(1),
	RunE:                  runScoreCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runScoreCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) && (AppConfig == nil || AppConfig.Source.URL == "") {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-score")

	if err := config.ValidateFailUnder(scoreOptions.FailUnder); err != nil {
		return err
	}
	if len(args) == 1 && scoreOptions.URL != "" {
		return fmt.Errorf("you cannot use a 'url' flag and a preset path at the same time")
	}

	failUnder := scoreOptions.FailUnder
	if !cmd.Flags().Changed("fail-under") && AppConfig != nil {
		failUnder = AppConfig.Analyzer.FailUnder
	}

	runOptions := icmd.RunOptions{
		URL:       scoreOptions.URL,
		Provider:  scoreOptions.Provider,
		Tokenizer: scoreOptions.Tokenizer,
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

	result, err := runner.Run(icmd.Context(cmd))
	if err != nil && !errors.Is(err, source.ErrNoPreset) {
		logger.Error("analysis failed", "source", runner.Source().String(), "error", err)
		return icmd.CommandError(err)
	}

	printScore(cmd.OutOrStdout(), result)
	if err != nil {
		return icmd.CommandError(err)
	}
	return icmd.CheckScore(result, failUnder)
}

func printScore(w io.Writer, result *analyzer.Result) {
	fmt.Fprintln(w, report.ScoreLine(result))
}

func init() {
	ScoreCmd.Flags().StringVar(&scoreOptions.URL, "url", "", "URL returning the preset currently loaded in a running application.")
	ScoreCmd.Flags().StringVarP(&scoreOptions.Provider, "provider", "p", "", "Target provider.")
	ScoreCmd.Flags().StringVar(&scoreOptions.Tokenizer, "tokenizer", "", "Tokenizer plugin name, or 'heuristic' for the built-in estimator.")
	ScoreCmd.Flags().IntVar(&scoreOptions.FailUnder, "fail-under", 0, "Exit with code 2 when the score is below this value.")
	ScoreCmd.Flags().BoolP("help", "h", false, "Show help for the score command.")
}
