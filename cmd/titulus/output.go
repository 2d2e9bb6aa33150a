package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/titulus/batch"
	"github.com/tsawler/titulus/model"
)

var (
	// titleStyle for the inferred document title
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// levelStyle for heading level tags
	levelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for failure indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the batch summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// printResult renders one document's inferred title and outline,
// indented by heading level.
func printResult(w io.Writer, path string, result *model.Result) {
	fmt.Fprintln(w, dimStyle.Render(path))

	title := strings.TrimSpace(result.Title)
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	if len(result.Outline) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no headings"))
		return
	}

	fmt.Fprintln(w)
	for _, h := range result.Outline {
		indent := strings.Repeat("  ", h.Level.Rank()-1)
		page := dimStyle.Render(fmt.Sprintf("p.%d", h.Page))
		if h.Page == model.DocumentLevelPage {
			page = dimStyle.Render("doc")
		}
		fmt.Fprintf(w, "%s%s %s  %s\n",
			indent, levelStyle.Render(h.Level.String()), h.Text, page)
	}
}

// printBatchSummary renders the completion box after a batch run.
func printBatchSummary(w io.Writer, outputDir string, sum batch.Summary) {
	line1 := fmt.Sprintf("%s %d  %s %d  %s %d",
		dimStyle.Render("Processed:"), sum.Processed,
		dimStyle.Render("Failed:"), sum.Failed,
		dimStyle.Render("Skipped:"), sum.Skipped)

	line2 := fmt.Sprintf("%s %.1fs  %s %s",
		dimStyle.Render("Duration:"), sum.Duration.Seconds(),
		dimStyle.Render("Output:"), outputDir)

	var status string
	if sum.Failed > 0 {
		status = errorStyle.Render(fmt.Sprintf("%d document(s) failed", sum.Failed))
	} else {
		status = successStyle.Render("all documents processed")
	}

	content := titleStyle.Render("Batch Complete") + "\n" + line1 + "\n" + line2 + "\n" + status
	fmt.Fprintln(w, boxStyle.Render(content))
}
