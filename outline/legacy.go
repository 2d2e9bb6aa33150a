package outline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// This file is the compatibility layer for whole-document archetypes:
// documents recognized by literal vocabulary hits whose outline is not
// assembled from scored headings but produced by a fixed strategy.
// Each archetype's fallback behavior is an ordered chain of locators
// tried until one produces a line, ending in a fixed literal.

// Archetype classifies a whole document by its vocabulary.
type Archetype int

const (
	// ArchetypeNone marks a document handled by the normal pipeline.
	ArchetypeNone Archetype = iota
	// ArchetypeForm marks a fillable application form. Forms carry no
	// outline at all.
	ArchetypeForm
	// ArchetypeBrochure marks a program brochure. Its outline is exactly
	// one document-level H1.
	ArchetypeBrochure
	// ArchetypePoster marks an event poster or flyer. Its outline is
	// exactly one document-level H1.
	ArchetypePoster
)

// String returns a short label for the archetype.
func (a Archetype) String() string {
	switch a {
	case ArchetypeForm:
		return "form"
	case ArchetypeBrochure:
		return "brochure"
	case ArchetypePoster:
		return "poster"
	default:
		return "none"
	}
}

// LegacyConfig holds the archetype trigger vocabularies and the fixed
// fallback literals.
type LegacyConfig struct {
	// FormTerms is the field vocabulary counted against FormThreshold.
	FormTerms []string

	// FormThreshold is the number of distinct form terms the document
	// text must contain before the document counts as a form.
	FormThreshold int

	// BrochureTerms must all occur in the document text to trigger the
	// brochure archetype.
	BrochureTerms []string

	// PosterTerms must all occur in the document text to trigger the
	// poster archetype.
	PosterTerms []string

	// AnnouncementTerms mark a banner line on poster documents.
	AnnouncementTerms []string

	// BrochureFallback is emitted when no brochure line qualifies.
	BrochureFallback string

	// PosterFallback is emitted when no poster line qualifies. The
	// trailing space is part of the historical output contract.
	PosterFallback string
}

// DefaultLegacyConfig returns the default archetype configuration.
func DefaultLegacyConfig() LegacyConfig {
	return LegacyConfig{
		FormTerms:         defaultFormTerms(),
		FormThreshold:     8,
		BrochureTerms:     []string{"pathway", "options"},
		PosterTerms:       []string{"hope", "see", "there"},
		AnnouncementTerms: defaultAnnouncementTerms(),
		BrochureFallback:  "PATHWAY OPTIONS",
		PosterFallback:    "HOPE To SEE You THERE! ",
	}
}

// Legacy detects document archetypes and produces their fixed outlines.
type Legacy struct {
	config LegacyConfig
}

// NewLegacy creates an archetype detector with default configuration.
func NewLegacy() *Legacy {
	return NewLegacyWithConfig(DefaultLegacyConfig())
}

// NewLegacyWithConfig creates an archetype detector with custom
// configuration. Zero-valued fields fall back to defaults.
func NewLegacyWithConfig(config LegacyConfig) *Legacy {
	defaults := DefaultLegacyConfig()
	if len(config.FormTerms) == 0 {
		config.FormTerms = defaults.FormTerms
	}
	if config.FormThreshold <= 0 {
		config.FormThreshold = defaults.FormThreshold
	}
	if len(config.BrochureTerms) == 0 {
		config.BrochureTerms = defaults.BrochureTerms
	}
	if len(config.PosterTerms) == 0 {
		config.PosterTerms = defaults.PosterTerms
	}
	if len(config.AnnouncementTerms) == 0 {
		config.AnnouncementTerms = defaults.AnnouncementTerms
	}
	if config.BrochureFallback == "" {
		config.BrochureFallback = defaults.BrochureFallback
	}
	if config.PosterFallback == "" {
		config.PosterFallback = defaults.PosterFallback
	}
	return &Legacy{config: config}
}

// IsForm reports whether the joined lowercase document text hits the
// form vocabulary threshold. Each distinct term counts once no matter
// how often it occurs.
func (l *Legacy) IsForm(allText string) bool {
	hits := 0
	for _, term := range l.config.FormTerms {
		if strings.Contains(allText, term) {
			hits++
		}
	}
	return hits >= l.config.FormThreshold
}

// IsBrochure reports whether the joined lowercase document text
// contains every brochure term.
func (l *Legacy) IsBrochure(allText string) bool {
	return containsAll(allText, l.config.BrochureTerms)
}

// IsPoster reports whether the joined lowercase document text contains
// every poster term.
func (l *Legacy) IsPoster(allText string) bool {
	return containsAll(allText, l.config.PosterTerms)
}

// Detect returns the document archetype, or ArchetypeNone. Form wins
// over brochure, brochure over poster, matching the order the outline
// pass applies them.
func (l *Legacy) Detect(allText string) Archetype {
	switch {
	case l.IsForm(allText):
		return ArchetypeForm
	case l.IsBrochure(allText):
		return ArchetypeBrochure
	case l.IsPoster(allText):
		return ArchetypePoster
	default:
		return ArchetypeNone
	}
}

// locator inspects the document's lines for the text of a
// document-level heading. ok is false when the strategy finds nothing.
type locator func(lines []layout.Line) (string, bool)

// resolveChain tries each locator in priority order and falls back to
// the fixed literal when the chain is exhausted.
func resolveChain(lines []layout.Line, chain []locator, fallback string) string {
	for _, locate := range chain {
		if text, ok := locate(lines); ok {
			return text
		}
	}
	return fallback
}

// BrochureHeading produces the single document-level heading of a
// brochure: the ALL-CAPS line naming the program, or the closest
// prominent substitute.
func (l *Legacy) BrochureHeading(lines []layout.Line) model.Heading {
	chain := []locator{
		l.brochureBannerLine,
		boldCapsLine,
		largestCapsLine(3),
		l.anyBrochureLine,
	}
	return model.Heading{
		Level: model.H1,
		Text:  resolveChain(lines, chain, l.config.BrochureFallback),
		Page:  model.DocumentLevelPage,
	}
}

// PosterHeading produces the single document-level heading of a poster:
// the announcement line, or the closest prominent substitute.
func (l *Legacy) PosterHeading(lines []layout.Line) model.Heading {
	chain := []locator{
		l.exactPosterLine,
		l.announcementLine,
		posterBannerLine,
	}
	return model.Heading{
		Level: model.H1,
		Text:  resolveChain(lines, chain, l.config.PosterFallback),
		Page:  model.DocumentLevelPage,
	}
}

// PosterTitle produces the title of a poster document. The exact
// announcement line keeps the historical two-space title suffix; the
// weaker strategies return the line text verbatim.
func (l *Legacy) PosterTitle(lines []layout.Line) string {
	if text, ok := l.exactPosterLine(lines); ok {
		return text + titleTrailer
	}
	if text, ok := l.announcementLine(lines); ok {
		return text
	}
	if text, ok := posterBannerLine(lines); ok {
		return text
	}
	return l.config.PosterFallback
}

// brochureBannerLine finds an ALL-CAPS line containing every brochure
// term.
func (l *Legacy) brochureBannerLine(lines []layout.Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if containsAll(strings.ToLower(text), l.config.BrochureTerms) &&
			layout.IsAllUpper(text) && utf8.RuneCountInString(text) > 5 {
			return text, true
		}
	}
	return "", false
}

// anyBrochureLine finds any line containing every brochure term.
func (l *Legacy) anyBrochureLine(lines []layout.Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if containsAll(strings.ToLower(text), l.config.BrochureTerms) {
			return text, true
		}
	}
	return "", false
}

// exactPosterLine finds the line containing every poster term and
// returns it whitespace-normalized.
func (l *Legacy) exactPosterLine(lines []layout.Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if containsAll(strings.ToLower(text), l.config.PosterTerms) {
			return spaceRuns.ReplaceAllString(text, " "), true
		}
	}
	return "", false
}

// announcementLine finds a long ALL-CAPS line containing any
// announcement term.
func (l *Legacy) announcementLine(lines []layout.Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if layout.IsAllUpper(text) && utf8.RuneCountInString(text) > 8 &&
			containsAny(strings.ToLower(text), l.config.AnnouncementTerms) {
			return text, true
		}
	}
	return "", false
}

// boldCapsLine finds the first bold ALL-CAPS line longer than 5 runes.
func boldCapsLine(lines []layout.Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if layout.IsAllUpper(text) && utf8.RuneCountInString(text) > 5 && line.Bold {
			return text, true
		}
	}
	return "", false
}

// posterBannerLine finds the largest bold ALL-CAPS line above 12 units.
func posterBannerLine(lines []layout.Line) (string, bool) {
	var (
		best     string
		bestSize float64
		found    bool
	)
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if utf8.RuneCountInString(text) > 5 && layout.IsAllUpper(text) &&
			line.Bold && line.FontSize > 12 {
			if !found || line.FontSize > bestSize {
				best = text
				bestSize = line.FontSize
				found = true
			}
		}
	}
	return best, found
}

// largestCapsLine returns a locator finding the largest-font ALL-CAPS
// line longer than minLength runes.
func largestCapsLine(minLength int) locator {
	return func(lines []layout.Line) (string, bool) {
		var (
			best     string
			bestSize float64
			found    bool
		)
		for _, line := range lines {
			text := strings.TrimSpace(line.Text)
			if utf8.RuneCountInString(text) > minLength && layout.IsAllUpper(text) {
				if !found || line.FontSize > bestSize {
					best = text
					bestSize = line.FontSize
					found = true
				}
			}
		}
		return best, found
	}
}

// containsAll reports whether every needle occurs in haystack.
func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// spaceRuns collapses whitespace runs when normalizing found lines.
var spaceRuns = regexp.MustCompile(`\s+`)
