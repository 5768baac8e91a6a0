package version

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/internal/logger"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// CoreVersions holds version information for the core application and tokenizer plugins.
type CoreVersions struct {
	Versions    shared.Versions              `json:"versions"`
	PluginsMeta map[string]shared.PluginMeta `json:"plugins_meta"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application and tokenizer plugins",
		Run: func(cmd *cobra.Command, args []string) {
			printVersionInfo(cmd.OutOrStdout(), collectVersions())
		},
	}
}

func collectVersions() *CoreVersions {
	pluginsFolder := config.GetPluginsFolder(AppConfig)
	pluginsMeta, err := shared.GetPluginVersions(pluginsFolder, shared.PluginTypeTokenizer)
	if err != nil {
		logger.NewLogger(AppConfig, "core-version").Debug("failed to read plugins directory", "path", pluginsFolder, "error", err)
		pluginsMeta = map[string]shared.PluginMeta{}
	}

	return &CoreVersions{
		Versions: shared.Versions{
			Version:       CoreVersion,
			GolangVersion: GolangVersion,
			BuildTime:     BuildTime,
		},
		PluginsMeta: pluginsMeta,
	}
}

// printVersionInfo prints the version information for the core application and plugins.
func printVersionInfo(w io.Writer, versions *CoreVersions) {
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Versions.Version)
	if len(versions.PluginsMeta) == 0 {
		fmt.Fprintln(w, "Tokenizer Plugins: none")
	} else {
		fmt.Fprintln(w, "Tokenizer Plugins:")
		names := make([]string, 0, len(versions.PluginsMeta))
		for name := range versions.PluginsMeta {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			meta := versions.PluginsMeta[name]
			fmt.Fprintf(w, "  %s: v%s (Type: %s)\n", name, meta.Version, meta.PluginType)
		}
	}
	fmt.Fprintf(w, "Go Version: %s\n", versions.Versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.Versions.BuildTime)
}
