package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xmlcore",
	Short: "Parse, query, and mutate XML documents",
	Long: `xmlcore is a command-line front end over the xmlcore engine:
it parses, serializes, queries, sorts, and mutates XML documents from the
shell without embedding the library in a host program.`,
}

// Execute runs the command tree, exiting the process with a nonzero status
// on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
