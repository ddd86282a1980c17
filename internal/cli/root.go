// Package cli implements the bookrec command line tool
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookrec",
	Short: "bookrec - literary book recommendations from the terminal",
	Long: `bookrec asks a language model for lesser-known books matching a genre,
a summary language and an optional literature region.

Titles suggested during one run are excluded from the following
recommendations, the same way the web form remembers them per session.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
