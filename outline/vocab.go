package outline

import (
	"strings"

	"github.com/tsawler/titulus/layout"
)

// Vocabulary defaults shared by the title and heading heuristics. Every
// function returns a fresh slice so callers can modify their copy
// without disturbing other components.

// defaultBoilerplateTerms lists substrings that mark a line as document
// furniture rather than a title or heading: dates, signatures, version
// tracking, copyright lines.
func defaultBoilerplateTerms() []string {
	return []string{
		"date", "signature", "name", "age", "relationship", "s.no",
		"page", "www", "copyright", "notice", "document", "entirety",
		"extracts", "acknowledged", "version", "revision", "history",
		"tracking", "number", "id", "ref",
	}
}

// defaultImportantHeadings lists section names that stay headings even
// when a boilerplate term matches inside them ("references" contains
// "ref") or when they stand alone as a single word.
func defaultImportantHeadings() []string {
	return []string{
		"summary", "background", "timeline", "milestones", "approach",
		"evaluation", "appendix", "introduction", "overview",
		"references", "contents", "acknowledgements",
	}
}

// defaultFormTerms lists the field vocabulary of application forms.
// A document whose text hits enough of these is treated as a fillable
// form with no outline.
func defaultFormTerms() []string {
	return []string{
		"designation", "service", "whether", "employed", "entitled",
		"concession", "availed", "block", "railfare", "busfare",
		"headquarters", "amount", "advance", "date", "signature",
		"name", "age", "relationship",
	}
}

// defaultFieldLabels lists form field labels that get stripped from the
// tail of form-document titles and dropped as standalone headings.
func defaultFieldLabels() []string {
	return []string{"designation", "service", "whether", "employed", "entitled"}
}

// defaultTitleOverrides lists terms that let a form document's title
// through the boilerplate check.
func defaultTitleOverrides() []string {
	return []string{"form", "application", "advance"}
}

// defaultSingleWordHeadings lists the only words allowed to stand alone
// as a one-word heading.
func defaultSingleWordHeadings() []string {
	return []string{"summary", "background", "references", "acknowledgements"}
}

// defaultLowercaseKeywords lists terms that excuse a heading starting
// with a lowercase letter.
func defaultLowercaseKeywords() []string {
	return []string{
		"summary", "background", "references", "acknowledgements",
		"revision", "table", "contents",
	}
}

// defaultAddressTerms lists words that mark a line as a postal address.
func defaultAddressTerms() []string {
	return []string{"street", "avenue", "road", "drive", "lane", "city", "state", "zip"}
}

// defaultAnnouncementTerms lists the words an event-poster banner line
// tends to contain.
func defaultAnnouncementTerms() []string {
	return []string{"hope", "see", "there", "come", "join", "visit", "you"}
}

// containsAny reports whether any needle occurs as a substring of
// haystack. Needles are expected to be lowercase; lowercase the
// haystack before calling.
func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// inList reports whether s is exactly one of the list entries.
func inList(s string, list []string) bool {
	for _, entry := range list {
		if s == entry {
			return true
		}
	}
	return false
}

// joinedLower concatenates every line's text lowercased, separated by
// single spaces. Archetype detection runs substring checks against it.
func joinedLower(lines []layout.Line) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = strings.ToLower(line.Text)
	}
	return strings.Join(parts, " ")
}
