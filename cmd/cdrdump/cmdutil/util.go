// Package cmdutil provides shared utilities for cdrdump commands.
package cmdutil

import (
	"github.com/marmos91/gocdr/internal/cli/output"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values synced in root.go's
// PersistentPreRun.
type GlobalFlags struct {
	ConfigFile string
	Output     string
	Verbose    bool
}

// GetOutputFormatParsed returns the parsed output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return Flags.Verbose
}
