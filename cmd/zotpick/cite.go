package main

import (
	"fmt"

	"github.com/matsen/zotpick/internal/format"
	"github.com/spf13/cobra"
)

var citeTemplate string

func init() {
	citeCmd.Flags().StringVar(&citeTemplate, "template", "", "Citation template (defaults to the configured cite_template)")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite KEY",
	Short: "Render a citation for a reference",
	Long: `Render the citation string for the reference with the given item key,
wrapped as a link to its zotero:// select URI.

Examples:
  zotpick cite ABCD1234
  zotpick cite ABCD1234 --template "{authors} ({year})"`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

// CiteResponse is the JSON response for the cite command.
type CiteResponse struct {
	Key      string `json:"key"`
	Citation string `json:"citation"`
}

func runCite(cmd *cobra.Command, args []string) error {
	a := mustApp()

	ref := mustFindByKey(a, args[0])

	tmpl := citeTemplate
	if tmpl == "" {
		tmpl = a.cfg.CiteTemplate
	}
	citation := format.Citation(tmpl, ref)

	if humanOutput {
		fmt.Println(citation)
		return nil
	}
	return outputJSON(CiteResponse{Key: ref.Key, Citation: citation})
}
