package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Maersk Copilot - AI-Powered E-Commerce Analytics",
	Long: `Maersk Copilot answers natural-language questions about the Olist
e-commerce dataset. Known questions are resolved locally against the
in-memory dataset (order lookups, revenue, category rankings, geographic
distributions); everything else is delegated to the configured AI responder.

Run the HTTP API with "copilot run", or chat from the terminal with
"copilot ask".`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
