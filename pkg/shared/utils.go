package shared

import (
	"strings"

	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag of the set was set explicitly.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.Visit(func(*pflag.Flag) {
		hasFlags = true
	})
	return hasFlags
}

// IsInList checks if the target string is in the list of strings, ignoring case.
func IsInList(target string, list []string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}

// SplitList splits a comma separated flag value and drops empty items.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
