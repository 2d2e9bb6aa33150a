package outline

import (
	"sort"
	"strings"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// PageValidator cross-checks each heading's page number against the
// document's lines and relocates headings whose text does not occur on
// the recorded page.
type PageValidator struct{}

// NewPageValidator creates a page validator.
func NewPageValidator() *PageValidator {
	return &PageValidator{}
}

// Validate confirms or corrects heading page numbers by case-insensitive
// substring search: first on the recorded page, then across all pages in
// ascending order. Headings found nowhere keep their recorded page, and
// document-level headings (page 0) are never touched. No heading is
// dropped.
func (v *PageValidator) Validate(headings []model.Heading, lines []layout.Line) []model.Heading {
	byPage := make(map[int][]layout.Line)
	for _, line := range lines {
		byPage[line.Page] = append(byPage[line.Page], line)
	}
	pageOrder := make([]int, 0, len(byPage))
	for page := range byPage {
		pageOrder = append(pageOrder, page)
	}
	sort.Ints(pageOrder)

	validated := make([]model.Heading, 0, len(headings))
	for _, heading := range headings {
		if heading.Page == model.DocumentLevelPage {
			validated = append(validated, heading)
			continue
		}

		needle := strings.ToLower(heading.Text)
		if pageContains(byPage[heading.Page], needle) {
			validated = append(validated, heading)
			continue
		}

		for _, page := range pageOrder {
			if pageContains(byPage[page], needle) {
				heading.Page = page
				break
			}
		}
		validated = append(validated, heading)
	}
	return validated
}

// pageContains reports whether any line on the page contains needle,
// case-insensitively. needle must already be lowercase.
func pageContains(lines []layout.Line, needle string) bool {
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line.Text), needle) {
			return true
		}
	}
	return false
}

// CapOutline truncates an overlong outline to limit entries, keeping
// those that come first by (page, level) priority. Outlines at or under
// the limit are returned untouched in reading order.
func CapOutline(headings []model.Heading, limit int) []model.Heading {
	if limit <= 0 || len(headings) <= limit {
		return headings
	}
	capped := make([]model.Heading, len(headings))
	copy(capped, headings)
	sort.SliceStable(capped, func(i, j int) bool {
		if capped[i].Page != capped[j].Page {
			return capped[i].Page < capped[j].Page
		}
		return capped[i].Level.Rank() < capped[j].Level.Rank()
	})
	return capped[:limit]
}
