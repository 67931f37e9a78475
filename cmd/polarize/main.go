// Polarize computes polarization and competitiveness indices over
// tabular electoral data.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/polarize/cmd"
	"github.com/huangsam/polarize/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Stores and profiles are torn down after the command finishes so
	// that a failed run still flushes what it opened.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", perr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
