package main

import (
	"errors"
	"fmt"

	"github.com/matsen/zotpick/internal/cache"
	"github.com/matsen/zotpick/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Look up a reference by its item key",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	a := mustApp()

	ref := mustFindByKey(a, args[0])

	if humanOutput {
		fmt.Printf("%s\n", ref.Title)
		if ref.AuthorsDisplay != "" {
			fmt.Printf("  %s", ref.AuthorsDisplay)
			if ref.Year != "" {
				fmt.Printf(" (%s)", ref.Year)
			}
			fmt.Println()
		}
		if ref.Publication != "" {
			fmt.Printf("  %s\n", ref.Publication)
		}
		fmt.Printf("  %s  %s\n", ref.Type, ref.DeepLink())
		return nil
	}
	return outputJSON(ref)
}

// mustFindByKey resolves an item key through the cache, exiting on load
// failure or when no reference has the key.
func mustFindByKey(a *app, key string) *reference.Reference {
	ref, err := a.cache.ByKey(key)
	if err != nil {
		if errors.Is(err, cache.ErrLoadInProgress) {
			exitWithError(ExitError, "a reference load is already running, try again shortly")
		}
		exitWithError(exitCodeFor(err), "loading references: %v", err)
	}
	if ref == nil {
		exitWithError(ExitDataError, "no reference with key %q", key)
	}
	return ref
}
