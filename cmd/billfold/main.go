// Command billfold reconciles extracted bill records from the command
// line. It is a thin shell over pkg/dedupe: file I/O and flags here,
// all reconciliation logic in the library.
package main

import (
	"os"

	"github.com/billfold/billfold/cmd/billfold/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
