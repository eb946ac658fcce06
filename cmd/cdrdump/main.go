// Command cdrdump encodes, decodes, and inspects Common Data
// Representation wire frames.
package main

import (
	"fmt"
	"os"

	"github.com/marmos91/gocdr/cmd/cdrdump/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
