package analyze

import (
	"fmt"
	"os"
	"strings"

	"github.com/scan-io-git/cachelens/internal/config"
	"github.com/scan-io-git/cachelens/pkg/shared"
)

// validateAnalyzeArgs validates the arguments provided to the analyze command.
func validateAnalyzeArgs(options *RunOptionsAnalyze, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("only one preset path can be analyzed at a time, got %d", len(args))
	}

	if len(args) == 1 {
		if options.URL != "" {
			return fmt.Errorf("you cannot use a 'url' flag and a preset path at the same time")
		}
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("the preset path does not exist: %v", args[0])
		}
	}

	options.Format = strings.ToLower(options.Format)
	if options.Format == "" {
		options.Format = FormatText
	}
	if !shared.IsInList(options.Format, Formats) {
		return fmt.Errorf("unsupported format %q, expected one of %s", options.Format, strings.Join(Formats, ", "))
	}

	if options.TemplatePath != "" && options.Format != FormatHTML {
		return fmt.Errorf("the 'template' flag is only supported with the html format")
	}

	return config.ValidateFailUnder(options.FailUnder)
}
