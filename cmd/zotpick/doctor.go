package main

import (
	"fmt"
	"os"

	"github.com/matsen/zotpick/internal/config"
	"github.com/spf13/cobra"
)

// doctorSampleCount is how many sample records the report shows.
const doctorSampleCount = 3

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Print a diagnostic report of the reference pipeline",
	Long: `Print a human-readable diagnostic report: configuration, source
database state, snapshot and cache state, and a sample of loaded
references. Intended for troubleshooting, not for machine parsing.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a := mustApp()

	fmt.Printf("config file:     %s\n", config.Path())
	fmt.Printf("source database: %s\n", a.cfg.ZoteroDB)
	if info, err := os.Stat(a.cfg.ZoteroDB); err != nil {
		fmt.Printf("  MISSING: %v\n", err)
	} else {
		fmt.Printf("  exists, %d bytes, modified %s\n", info.Size(), info.ModTime().Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("snapshot:        %s\n", a.snap.Path())
	if info, err := os.Stat(a.snap.Path()); err != nil {
		fmt.Println("  not yet created")
	} else {
		fmt.Printf("  exists, %d bytes\n", info.Size())
	}

	fmt.Printf("cache ttl:       %s\n", a.cfg.CacheTTL())
	fmt.Printf("cite template:   %s\n", a.cfg.CiteTemplate)

	refs, err := a.cache.GetOrLoad(false)
	if err != nil {
		fmt.Printf("load:            FAILED: %v\n", err)
		return nil
	}

	fmt.Printf("load:            ok, %d references\n", len(refs))
	for i, ref := range refs {
		if i >= doctorSampleCount {
			break
		}
		fmt.Printf("  %-10s %s %s — %s\n", ref.Key, ref.AuthorsDisplay, ref.Year,
			truncateString(ref.Title, ListTitleMaxLen))
	}

	return nil
}
