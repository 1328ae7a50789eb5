// main is the entry point for the pulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ossmetrics/pulse/cmd"
	"github.com/ossmetrics/pulse/internal/iocache"
)

func main() {
	// Commands reach persistence through the manager so tests can swap it out.
	cmd.SetSeriesManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStore() // os.Exit would skip a defer
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
