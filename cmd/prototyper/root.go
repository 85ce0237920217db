package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns a fresh tree so tests
// can run commands in isolation.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prototyper",
		Short: "Idea scoring and prototype generation backend",
		Long: `prototyper turns a free-text product idea into a viability assessment
and a single-file HTML prototype.

Available commands:
  serve   - run the HTTP API
  score   - print the assessment for an idea as JSON
  render  - print the prototype markup for an idea`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newRenderCmd())
	return root
}

// loadEnvFiles overlays variables from .env files found in the working
// directory or its parent.
func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
