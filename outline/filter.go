package outline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// QualityConfig is the final acceptance gate applied after
// deduplication.
type QualityConfig struct {
	// MinLength and MaxLength bound the heading's rune count.
	MinLength int
	MaxLength int

	// MaxWords bounds the word count.
	MaxWords int

	// MaxDots and MaxCommas bound punctuation density.
	MaxDots   int
	MaxCommas int

	// MinAlphaRatio is the minimum share of letter runes.
	MinAlphaRatio float64

	// NumberedConvention is the histogram count of numbered lines above
	// which only numbered headings pass. CapsConvention is the same for
	// all-caps lines.
	NumberedConvention int
	CapsConvention     int
}

// DefaultQualityConfig returns the standard quality gate.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		MinLength:          3,
		MaxLength:          200,
		MaxWords:           15,
		MaxDots:            5,
		MaxCommas:          3,
		MinAlphaRatio:      0.3,
		NumberedConvention: 5,
		CapsConvention:     3,
	}
}

// FilterConfig holds the vocabularies and limits of the heading filter.
type FilterConfig struct {
	// NoiseTerms drop a heading on lowercase substring match.
	NoiseTerms []string

	// SingleWordHeadings are the only words that may stand alone.
	SingleWordHeadings []string

	// LowercaseKeywords excuse a lowercase first letter.
	LowercaseKeywords []string

	// AddressTerms drop postal address lines.
	AddressTerms []string

	// FieldLabels drop standalone form field labels.
	FieldLabels []string

	// MaxLength drops likely body text.
	MaxLength int

	// PromoteCapsLength is the rune count above which an ALL-CAPS
	// heading is promoted to H1.
	PromoteCapsLength int

	Quality QualityConfig
}

// DefaultFilterConfig returns the default filter settings.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		NoiseTerms:         []string{"copyright", "all rights reserved", "page", "confidential"},
		SingleWordHeadings: defaultSingleWordHeadings(),
		LowercaseKeywords:  defaultLowercaseKeywords(),
		AddressTerms:       defaultAddressTerms(),
		FieldLabels:        defaultFieldLabels(),
		MaxLength:          100,
		PromoteCapsLength:  5,
		Quality:            DefaultQualityConfig(),
	}
}

// Filter drops non-heading noise from classified candidates, promotes
// prominent all-caps headings, deduplicates, and applies the quality
// gate. Order is preserved.
type Filter struct {
	config FilterConfig
}

// NewFilter creates a filter with default configuration.
func NewFilter() *Filter {
	return NewFilterWithConfig(DefaultFilterConfig())
}

// NewFilterWithConfig creates a filter with custom configuration.
// Zero-valued fields fall back to defaults.
func NewFilterWithConfig(config FilterConfig) *Filter {
	defaults := DefaultFilterConfig()
	if len(config.NoiseTerms) == 0 {
		config.NoiseTerms = defaults.NoiseTerms
	}
	if len(config.SingleWordHeadings) == 0 {
		config.SingleWordHeadings = defaults.SingleWordHeadings
	}
	if len(config.LowercaseKeywords) == 0 {
		config.LowercaseKeywords = defaults.LowercaseKeywords
	}
	if len(config.AddressTerms) == 0 {
		config.AddressTerms = defaults.AddressTerms
	}
	if len(config.FieldLabels) == 0 {
		config.FieldLabels = defaults.FieldLabels
	}
	if config.MaxLength <= 0 {
		config.MaxLength = defaults.MaxLength
	}
	if config.PromoteCapsLength <= 0 {
		config.PromoteCapsLength = defaults.PromoteCapsLength
	}
	if config.Quality == (QualityConfig{}) {
		config.Quality = defaults.Quality
	}
	return &Filter{config: config}
}

var (
	properNameText    = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	slashDateText     = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	revisionEntryText = regexp.MustCompile(`^\d+\.\d+\s+\d{4}`)
	cityStateZipText  = regexp.MustCompile(`^[A-Z\s]+,?\s+[A-Z]{2}\s+\d{5}$`)
	yearText          = regexp.MustCompile(`\d{4}`)
	revisionRowText   = regexp.MustCompile(`^\d+\.\d+\s+\d+\s+[A-Z]`)
	revisionLabelText = regexp.MustCompile(`^\d+\.\d+\s+[A-Z]+\s+\d+`)
	leadingDigitsText = regexp.MustCompile(`^\d+`)
)

// Apply runs the drop rules, the all-caps promotion, deduplication, and
// the quality gate over classified headings, in that order.
func (f *Filter) Apply(headings []model.Heading, structure *layout.Structure) []model.Heading {
	if structure == nil {
		structure = &layout.Structure{}
	}

	kept := make([]model.Heading, 0, len(headings))
	for _, heading := range headings {
		if keep, promoted := f.examine(heading); keep {
			kept = append(kept, promoted)
		}
	}

	return f.dedup(kept, structure.Patterns)
}

// examine applies the drop rules to one heading and returns it with the
// all-caps promotion applied.
func (f *Filter) examine(heading model.Heading) (bool, model.Heading) {
	text := heading.Text
	lower := strings.ToLower(text)
	length := utf8.RuneCountInString(text)

	switch {
	case containsAny(lower, f.config.NoiseTerms):
		return false, heading
	case properNameText.MatchString(text) || slashDateText.MatchString(text):
		return false, heading
	case len(strings.Fields(text)) == 1 && !inList(lower, f.config.SingleWordHeadings):
		return false, heading
	case length > f.config.MaxLength:
		return false, heading
	case hasBulletPrefix(text):
		return false, heading
	case revisionEntryText.MatchString(text):
		return false, heading
	case containsAny(lower, f.config.AddressTerms):
		return false, heading
	case cityStateZipText.MatchString(text):
		return false, heading
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		return false, heading
	case strings.Contains(text, "PLEASE VISIT") || strings.Contains(text, "REQUIRED FOR"):
		return false, heading
	case strings.Contains(text, "PARENTS") && strings.Contains(text, "GUARDIANS"):
		return false, heading
	case inList(lower, f.config.FieldLabels):
		return false, heading
	case firstRuneLower(text) && !containsAny(lower, f.config.LowercaseKeywords):
		return false, heading
	case yearText.MatchString(text) && length < 15:
		return false, heading
	case revisionRowText.MatchString(text) || revisionLabelText.MatchString(text):
		return false, heading
	case strings.Count(text, ",") >= 2:
		return false, heading
	case strings.Contains(text, "©"):
		return false, heading
	}

	// Prominent shouted headings outrank their scored level.
	if layout.IsAllUpper(text) && length > f.config.PromoteCapsLength {
		heading.Level = model.H1
	}
	return true, heading
}

// dedup removes repeated headings by folded, whitespace-normalized key
// and applies the quality gate. The first accepted occurrence wins; a
// rejected heading does not reserve its key.
func (f *Filter) dedup(headings []model.Heading, patterns layout.TextPatterns) []model.Heading {
	folder := cases.Fold()
	seen := make(map[string]struct{}, len(headings))
	final := make([]model.Heading, 0, len(headings))

	for _, heading := range headings {
		key := spaceRuns.ReplaceAllString(folder.String(strings.TrimSpace(heading.Text)), " ")
		if _, dup := seen[key]; dup {
			continue
		}
		if !f.qualityHeading(heading, patterns) {
			continue
		}
		seen[key] = struct{}{}
		final = append(final, heading)
	}
	return final
}

// qualityHeading is the final acceptance gate: structural sanity plus
// conformance to the document's dominant conventions.
func (f *Filter) qualityHeading(heading model.Heading, patterns layout.TextPatterns) bool {
	q := f.config.Quality
	text := strings.TrimSpace(heading.Text)
	length := utf8.RuneCountInString(text)

	if length < q.MinLength || length > q.MaxLength {
		return false
	}
	words := len(strings.Fields(text))
	if words < 1 || words > q.MaxWords {
		return false
	}
	if firstRuneLower(text) {
		return false
	}
	if strings.Count(text, ".") > q.MaxDots || strings.Count(text, ",") > q.MaxCommas {
		return false
	}

	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if float64(letters) < float64(length)*q.MinAlphaRatio {
		return false
	}

	// Documents with a strong numbering or capitalization convention
	// only keep headings that follow it.
	if patterns.NumberedSections > q.NumberedConvention && !leadingDigitsText.MatchString(text) {
		return false
	}
	if patterns.AllCapsLines > q.CapsConvention && !layout.IsAllUpper(text) {
		return false
	}
	return true
}

// hasBulletPrefix reports whether text starts with a list marker.
func hasBulletPrefix(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r == '●' || r == '•' || r == '-' || r == '*'
}

// firstRuneLower reports whether the first rune of s is lowercase.
func firstRuneLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsLower(r)
}
