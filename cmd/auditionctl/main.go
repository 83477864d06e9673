// Package main implements auditionctl, an offline checker that classifies and
// ranks audition data exported from the directory.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "auditionctl",
	Short:         "Classify and rank audition data offline",
	Long:          "auditionctl reads companies or auditions in their raw JSON shape and prints the derived status and upcoming rank, using the same rules as the directory API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
