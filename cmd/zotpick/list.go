package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/zotpick/internal/cache"
	"github.com/matsen/zotpick/internal/reference"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List references, loading them if the cache is stale",
	Long: `List the cached reference library, running a fresh extraction if the
cache has expired.

Examples:
  zotpick list
  zotpick list --limit 20 --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a := mustApp()

	refs, err := a.cache.GetOrLoad(false)
	if err != nil {
		if errors.Is(err, cache.ErrLoadInProgress) {
			exitWithError(ExitError, "a reference load is already running, try again shortly")
		}
		exitWithError(exitCodeFor(err), "loading references: %v", err)
	}

	// Zero items is a valid outcome; warn, don't fail.
	if len(refs) == 0 {
		fmt.Fprintln(os.Stderr, "warning: the Zotero library is empty")
	}

	if listLimit > 0 && listLimit < len(refs) {
		refs = refs[:listLimit]
	}

	if humanOutput {
		for _, ref := range refs {
			fmt.Printf("  %-10s %-24s %s\n", ref.Key,
				truncateString(ref.AuthorsDisplay+" "+ref.Year, 24),
				truncateString(ref.Title, ListTitleMaxLen))
		}
		return nil
	}

	if refs == nil {
		refs = []reference.Reference{}
	}
	return outputJSON(refs)
}
