package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/cachelens/cmd/analyze"
	"github.com/scan-io-git/cachelens/cmd/score"
	"github.com/scan-io-git/cachelens/cmd/version"
	"github.com/scan-io-git/cachelens/cmd/watch"
	"github.com/scan-io-git/cachelens/internal/config"
	cerrors "github.com/scan-io-git/cachelens/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "cachelens [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Cachelens analyzes prompt presets for provider prompt-cache efficiency.",
		Long: `Cachelens inspects a prompt preset and reports the configuration choices that
stop providers from reusing a cached prompt prefix: dynamic macros, volatile
entries placed early, prefixes below the caching minimum and shallow injections.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is ./%s, or $%s)", config.DefaultConfigFile, config.EnvConfig))
	rootCmd.AddCommand(analyze.AnalyzeCmd)
	rootCmd.AddCommand(score.ScoreCmd)
	rootCmd.AddCommand(watch.WatchCmd)
	rootCmd.AddCommand(toHTMLCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	err := rootCmd.Execute()
	if err == nil {
		return cerrors.ExitOK
	}

	// commands report the missing preset themselves
	code := cerrors.ExitCode(err)
	if code != cerrors.ExitNoPreset {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
	}
	return code
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		return cerrors.NewCommandError(fmt.Errorf("initializing config failed: %w", err), cerrors.ExitFailure)
	}

	analyze.Init(AppConfig)
	score.Init(AppConfig)
	watch.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
