// Command modyard manages a mod collection's companion windows: the
// savegame check, the collection notes, and the copy confirmation dialog.
package main

import (
	"os"

	"github.com/farmhand-tools/modyard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
