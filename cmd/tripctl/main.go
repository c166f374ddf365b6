// Command tripctl is the TripCanvas command-line tool: an interactive planner
// shell, schema migrations and data export against the configured store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
