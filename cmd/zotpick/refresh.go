package main

import (
	"errors"
	"fmt"

	"github.com/matsen/zotpick/internal/cache"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a reload of the reference cache",
	Long: `Force a reload of the reference cache from the Zotero database,
bypassing the expiration window.

A refresh that finds another load already running reports it and exits
successfully; the running load will produce the same result.`,
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a := mustApp()

	refs, err := a.cache.GetOrLoad(true)
	if err != nil {
		if errors.Is(err, cache.ErrLoadInProgress) {
			if humanOutput {
				fmt.Println("A reference load is already running")
			} else {
				outputJSON(StatusResponse{Status: "already-loading"})
			}
			return nil
		}
		exitWithError(exitCodeFor(err), "refreshing references: %v", err)
	}

	if humanOutput {
		fmt.Printf("Loaded %d references\n", len(refs))
		return nil
	}
	return outputJSON(StatusResponse{Status: "refreshed", Count: len(refs)})
}
