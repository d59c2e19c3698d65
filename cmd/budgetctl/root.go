// budgetctl scores life decisions from the command line and maintains stored
// decision history.
//
// Usage:
//
//	budgetctl analyze --income 5000 --expenses 3500 --savings 10000 --category rent --rent 1200
//	budgetctl rescore [--workers 4]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "budgetctl",
	Short: "Score the budget impact of life decisions",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rescoreCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
