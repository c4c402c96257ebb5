// Package main provides the zotpick CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Optional .env in the working directory for ZOTPICK_* overrides.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zotpick",
	Short: "Query-driven access to a Zotero reference library",
	Long: `zotpick reads a Zotero SQLite database through a private snapshot,
caches the normalized reference list, and renders citation and preview
strings for insertion into text documents.

The source database is never opened directly, so it is safe to run
while Zotero itself holds the database locked. All commands output
JSON by default; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
