package main

import (
	"fmt"

	"github.com/matsen/zotpick/internal/format"
	"github.com/spf13/cobra"
)

var previewTemplate string

func init() {
	previewCmd.Flags().StringVar(&previewTemplate, "template", "", "Preview template (defaults to the configured preview_template)")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview KEY",
	Short: "Render preview text for a reference",
	Long: `Render the preview text for the reference with the given item key.

JSON output includes the highlight spans: for every substituted value,
its byte range in the text and a semantic category (title, number,
identifier, plain).`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

// PreviewResponse is the JSON response for the preview command.
type PreviewResponse struct {
	Key     string        `json:"key"`
	Preview format.Result `json:"preview"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	a := mustApp()

	ref := mustFindByKey(a, args[0])

	tmpl := previewTemplate
	if tmpl == "" {
		tmpl = a.cfg.PreviewTemplate
	}
	res := format.Preview(tmpl, ref)

	if humanOutput {
		fmt.Println(res.Text)
		return nil
	}
	return outputJSON(PreviewResponse{Key: ref.Key, Preview: res})
}
