package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	icmd "github.com/scan-io-git/cachelens/internal/cmd"
	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/internal/logger"
	"github.com/scan-io-git/cachelens/internal/report"
	"github.com/scan-io-git/cachelens/internal/source"
	"github.com/scan-io-git/cachelens/internal/watcher"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

// RunOptionsWatch holds the arguments for the watch command.
type RunOptionsWatch struct {
	Provider  string
	Tokenizer string
	Rules     string
	Verbose   bool
}

var (
	AppConfig         *config.Config
	watchOptions      RunOptionsWatch
	exampleWatchUsage = `  # Re-scoring a preset every time it is saved
  cachelens watch /path/to/preset.json

  # Printing every finding on each change
  cachelens watch --verbose --provider openai /path/to/preset.yaml`
)

// WatchCmd represents the watch command.
var WatchCmd = &cobra.Command{
	Use:                   "watch [--provider/-p PROVIDER] [--tokenizer NAME] [--rules LIST] [--verbose/-v] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleWatchUsage,
	Short:                 "Re-analyzes a preset file whenever it changes",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runWatchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-watch")

	runner, err := icmd.NewRunner(AppConfig, icmd.RunOptions{
		Path:      args[0],
		Provider:  watchOptions.Provider,
		Tokenizer: watchOptions.Tokenizer,
		Rules:     shared.SplitList(watchOptions.Rules),
	}, logger)
	if err != nil {
		logger.Error("failed to prepare analysis", "error", err)
		return err
	}
	defer runner.Close()

	w, err := watcher.New(args[0], config.GetDebounce(AppConfig), logger)
	if err != nil {
		logger.Error("failed to start watching", "path", args[0], "error", err)
		return icmd.CommandError(err)
	}

	ctx, stop := signal.NotifyContext(icmd.Context(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	analyze := func(ctx context.Context) {
		analyzeOnce(ctx, out, runner, watchOptions.Verbose, logger)
	}

	analyze(ctx)
	logger.Info("watching preset for changes", "path", w.Path())
	if err := w.Run(ctx, analyze); err != nil {
		return icmd.CommandError(err)
	}
	logger.Info("watch stopped")
	return nil
}

// analyzeOnce runs one analysis and prints its outcome. Failures are logged
// so that a half-written file does not stop the watch.
func analyzeOnce(ctx context.Context, w io.Writer, runner *icmd.Runner, verbose bool, logger hclog.Logger) {
	result, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, source.ErrNoPreset) {
		logger.Warn("analysis failed", "source", runner.Source().String(), "error", err)
		return
	}

	if verbose {
		if err := report.WriteText(w, result); err != nil {
			logger.Warn("failed to print report", "error", err)
		}
		return
	}
	fmt.Fprintln(w, report.ScoreLine(result))
}

func init() {
	WatchCmd.Flags().StringVarP(&watchOptions.Provider, "provider", "p", "", "Target provider.")
	WatchCmd.Flags().StringVar(&watchOptions.Tokenizer, "tokenizer", "", "Tokenizer plugin name, or 'heuristic' for the built-in estimator.")
	WatchCmd.Flags().StringVar(&watchOptions.Rules, "rules", "", "Comma separated list of rules to run. All rules run when empty.")
	WatchCmd.Flags().BoolVarP(&watchOptions.Verbose, "verbose", "v", false, "Print every finding instead of the score line.")
	WatchCmd.Flags().BoolP("help", "h", false, "Show help for the watch command.")
}
