package main

import (
	"os"

	"github.com/codewiki-dev/codewiki/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codewiki",
	Short: "Structural analysis for precomputed code graphs",
	Long: `codewiki derives architectural insight from two precomputed artifacts:
a nested module containment tree and a flat component dependency graph.

It reports module hierarchy, dependency direction, cohesion scores,
heuristic component roles and architectural patterns, plus the bottom-up
order in which modules should be documented.`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewModuleCmd())
	rootCmd.AddCommand(NewComponentCmd())
	rootCmd.AddCommand(NewSummaryCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
