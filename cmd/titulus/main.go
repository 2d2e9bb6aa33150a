package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "titulus",
	Short: "Infer document titles and outlines from text-span geometry",
	Long: `Titulus recovers a document's title and heading outline (H1-H4 with
page numbers) from the geometry and typography of its text spans. No
embedded bookmarks or tags are consulted: headings are inferred from
font-size statistics, boldness, position on the page, and text shape.

Inputs are span dumps (JSON), HTML, or Markdown. Each document
produces a JSON record with the inferred title and outline.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(inspectCmd)
}
