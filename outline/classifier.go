package outline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// HeadingWeights is the additive scoring table for heading candidates.
// Rows grouped as a tier award only their highest matching entry;
// everything else accumulates.
type HeadingWeights struct {
	// Font size against the whole document, tiered.
	GlobalNearMax   int // within 98% of the document maximum
	GlobalTop       int // at or above the 90th percentile
	GlobalHigh      int // at or above mean + 1.5 std dev
	GlobalProminent int // at or above mean + one std dev
	GlobalAboveMean int // at or above the mean

	// Font size against the line's page, tiered.
	PageTop       int // at or above the page 90th percentile
	PageUpper     int // at or above the page 75th percentile
	PageProminent int // at or above page mean + std dev

	Bold int

	// Leading section markers on the raw text, tiered.
	NumberedSection int // "1. ..." without sub-numbering
	SubNumbered     int // "2.1 ..."
	RomanNumeral    int // "IV. ..."
	CapsHeading     int // ALL CAPS longer than 5 runes
	LetterSection   int // "A. ..."

	// Whole-line format on the cleaned text, tiered.
	NumberedFormat    int // "1. Introduction"
	SubNumberedFormat int // "2.1 Audience"
	CapsFormat        int // "GLOSSARY TERMS"
	ColonFormat       int // "Background:"
	CapsColonFormat   int // "BACKGROUND:"

	// Word count of the cleaned text, tiered.
	IdealWords      int // 2..8 words
	AcceptableWords int // 1..12 words

	NoLeadingDigit int // no digit in the first three cleaned runes

	// Vertical position, tiered. Relative rows apply when the page has
	// layout statistics, absolute rows when it does not.
	NearTop      int // top 15% of the page
	UpperQuarter int // top 25%
	UpperHalf    int // top 40%
	AbsoluteHigh int // above y=200 without layout statistics
	AbsoluteMid  int // above y=400
	AbsoluteLow  int // above y=600

	NoBrackets int // raw text free of (), [], {}

	// Casing shapes on the cleaned text. These stack with each other
	// and with the format tier.
	TitleCaseShape      int // "Introduction"
	CapsShape           int // "GLOSSARY TERMS"
	ColonShape          int // "Background:"
	CapsColonShape      int // "BACKGROUND:"
	MultiTitleCaseShape int // "Revision History"

	// Document-adaptive rewards: the line matches a convention the
	// pattern histogram shows the document uses.
	AdaptiveNumbered int
	AdaptiveCaps     int
	AdaptiveColon    int

	// CleanOpening rewards lines that open uppercase and do not end in
	// a period.
	CleanOpening int
}

// DefaultHeadingWeights returns the standard heading scoring table.
func DefaultHeadingWeights() HeadingWeights {
	return HeadingWeights{
		GlobalNearMax:       50,
		GlobalTop:           40,
		GlobalHigh:          35,
		GlobalProminent:     25,
		GlobalAboveMean:     15,
		PageTop:             30,
		PageUpper:           20,
		PageProminent:       15,
		Bold:                35,
		NumberedSection:     40,
		SubNumbered:         35,
		RomanNumeral:        30,
		CapsHeading:         30,
		LetterSection:       25,
		NumberedFormat:      45,
		SubNumberedFormat:   40,
		CapsFormat:          35,
		ColonFormat:         30,
		CapsColonFormat:     35,
		IdealWords:          20,
		AcceptableWords:     15,
		NoLeadingDigit:      15,
		NearTop:             20,
		UpperQuarter:        15,
		UpperHalf:           10,
		AbsoluteHigh:        20,
		AbsoluteMid:         15,
		AbsoluteLow:         10,
		NoBrackets:          15,
		TitleCaseShape:      25,
		CapsShape:           30,
		ColonShape:          35,
		CapsColonShape:      40,
		MultiTitleCaseShape: 30,
		AdaptiveNumbered:    15,
		AdaptiveCaps:        15,
		AdaptiveColon:       15,
		CleanOpening:        25,
	}
}

// HeadingThresholds are the score cut-offs for each outline level.
// A score at or above H1 classifies as H1, and so on down to H4;
// anything below H4 is not a heading.
type HeadingThresholds struct {
	H1 int
	H2 int
	H3 int
	H4 int
}

// DefaultHeadingThresholds returns the standard level cut-offs.
func DefaultHeadingThresholds() HeadingThresholds {
	return HeadingThresholds{H1: 95, H2: 75, H3: 60, H4: 50}
}

// HeadingConfig holds the vocabularies, weights, and cut-offs of
// heading classification.
type HeadingConfig struct {
	// BoilerplateTerms reject a candidate on substring match.
	BoilerplateTerms []string

	// ImportantHeadings bypass the boilerplate check when the whole
	// lowercased line equals one of them ("References" survives the
	// "ref" boilerplate term).
	ImportantHeadings []string

	Weights    HeadingWeights
	Thresholds HeadingThresholds

	// MaxDots and MaxUnderscores reject dot leaders and fill-in blanks.
	MaxDots        int
	MaxUnderscores int
}

// DefaultHeadingConfig returns the default classification settings.
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		BoilerplateTerms:  defaultBoilerplateTerms(),
		ImportantHeadings: defaultImportantHeadings(),
		Weights:           DefaultHeadingWeights(),
		Thresholds:        DefaultHeadingThresholds(),
		MaxDots:           10,
		MaxUnderscores:    5,
	}
}

// HeadingClassifier scores lines and assigns outline levels.
type HeadingClassifier struct {
	config HeadingConfig
}

// NewHeadingClassifier creates a classifier with default configuration.
func NewHeadingClassifier() *HeadingClassifier {
	return NewHeadingClassifierWithConfig(DefaultHeadingConfig())
}

// NewHeadingClassifierWithConfig creates a classifier with custom
// configuration. Zero-valued fields fall back to defaults.
func NewHeadingClassifierWithConfig(config HeadingConfig) *HeadingClassifier {
	defaults := DefaultHeadingConfig()
	if len(config.BoilerplateTerms) == 0 {
		config.BoilerplateTerms = defaults.BoilerplateTerms
	}
	if len(config.ImportantHeadings) == 0 {
		config.ImportantHeadings = defaults.ImportantHeadings
	}
	if config.Weights == (HeadingWeights{}) {
		config.Weights = defaults.Weights
	}
	if config.Thresholds == (HeadingThresholds{}) {
		config.Thresholds = defaults.Thresholds
	}
	if config.MaxDots <= 0 {
		config.MaxDots = defaults.MaxDots
	}
	if config.MaxUnderscores <= 0 {
		config.MaxUnderscores = defaults.MaxUnderscores
	}
	return &HeadingClassifier{config: config}
}

var (
	numberedText             = regexp.MustCompile(`^\d+\.`)
	subNumberedText          = regexp.MustCompile(`^\d+\.\d+`)
	subSubNumberedText       = regexp.MustCompile(`^\d+\.\d+\.\d+`)
	romanNumeralText         = regexp.MustCompile(`^[IVX]+\.`)
	letterSectionText        = regexp.MustCompile(`^[A-Z]\.`)
	numberedHeadingFormat    = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	subNumberedHeadingFormat = regexp.MustCompile(`^\d+\.\d+\s+[A-Z]`)
	colonHeadingFormat       = regexp.MustCompile(`^[A-Z][a-z\s]+:$`)
	capsColonHeadingFormat   = regexp.MustCompile(`^[A-Z][A-Z\s]+:$`)
)

// Classify assigns an outline level to a line, or reports false when
// the line is not a heading. Sub-numbered text is capped below H1 no
// matter how strongly it scores: "2.1 Audience" is structurally an H2.
func (c *HeadingClassifier) Classify(line layout.Line, structure *layout.Structure) (model.HeadingLevel, bool) {
	text := strings.TrimSpace(line.Text)
	if c.rejected(text) {
		return 0, false
	}
	if structure == nil {
		structure = &layout.Structure{}
	}

	clean := cleanHeadingText(text)
	score := c.scoreText(line, text, clean, structure)
	t := c.config.Thresholds

	switch {
	case score >= t.H1:
		if subNumberedText.MatchString(clean) {
			return model.H2, true
		}
		return model.H1, true
	case score >= t.H2:
		if subSubNumberedText.MatchString(clean) {
			return model.H3, true
		}
		return model.H2, true
	case score >= t.H3:
		return model.H3, true
	case score >= t.H4:
		return model.H4, true
	default:
		return 0, false
	}
}

// Score returns the additive heading score of a line, or 0 for lines
// rejected outright.
func (c *HeadingClassifier) Score(line layout.Line, structure *layout.Structure) int {
	text := strings.TrimSpace(line.Text)
	if c.rejected(text) {
		return 0
	}
	if structure == nil {
		structure = &layout.Structure{}
	}
	return c.scoreText(line, text, cleanHeadingText(text), structure)
}

// rejected applies the hard pre-rejects that no score can overcome.
func (c *HeadingClassifier) rejected(text string) bool {
	if utf8.RuneCountInString(text) < 3 || allDigits(text) {
		return true
	}
	lower := strings.ToLower(text)
	if containsAny(lower, c.config.BoilerplateTerms) && !inList(lower, c.config.ImportantHeadings) {
		return true
	}
	if strings.Count(text, ".") > c.config.MaxDots || strings.Count(text, "_") > c.config.MaxUnderscores {
		return true
	}
	return false
}

// scoreText accumulates every feature of the scoring table. text is the
// trimmed raw line, clean its cleaned form.
func (c *HeadingClassifier) scoreText(line layout.Line, text, clean string, structure *layout.Structure) int {
	w := c.config.Weights
	score := 0

	isAllCaps := layout.IsAllUpper(text)
	hasNumbering := numberedText.MatchString(text)
	hasSubNumbering := subNumberedText.MatchString(text)
	cleanLength := utf8.RuneCountInString(clean)

	// Font size against the document.
	if structure.HasGlobalFonts() {
		g := structure.GlobalFonts
		switch {
		case line.FontSize >= g.Max*0.98:
			score += w.GlobalNearMax
		case line.FontSize >= g.P90:
			score += w.GlobalTop
		case line.FontSize >= g.Mean+g.Std*1.5:
			score += w.GlobalHigh
		case line.FontSize >= g.Mean+g.Std:
			score += w.GlobalProminent
		case line.FontSize >= g.Mean:
			score += w.GlobalAboveMean
		}
	}

	// Font size against the page.
	if page, ok := structure.PageFonts[line.Page]; ok {
		switch {
		case line.FontSize >= page.P90:
			score += w.PageTop
		case line.FontSize >= page.P75:
			score += w.PageUpper
		case line.FontSize >= page.Mean+page.Std:
			score += w.PageProminent
		}
	}

	if line.Bold {
		score += w.Bold
	}

	// Leading section markers.
	switch {
	case hasNumbering && !hasSubNumbering:
		score += w.NumberedSection
	case hasSubNumbering:
		score += w.SubNumbered
	case romanNumeralText.MatchString(text):
		score += w.RomanNumeral
	case isAllCaps && cleanLength > 5:
		score += w.CapsHeading
	case letterSectionText.MatchString(text):
		score += w.LetterSection
	}

	// Whole-line format.
	switch {
	case numberedHeadingFormat.MatchString(clean):
		score += w.NumberedFormat
	case subNumberedHeadingFormat.MatchString(clean):
		score += w.SubNumberedFormat
	case allCapsText.MatchString(clean) && cleanLength > 5:
		score += w.CapsFormat
	case colonHeadingFormat.MatchString(clean):
		score += w.ColonFormat
	case capsColonHeadingFormat.MatchString(clean):
		score += w.CapsColonFormat
	}

	// Word count.
	words := len(strings.Fields(clean))
	switch {
	case words >= 2 && words <= 8:
		score += w.IdealWords
	case words >= 1 && words <= 12:
		score += w.AcceptableWords
	}

	if !digitInPrefix(clean, 3) {
		score += w.NoLeadingDigit
	}

	// Vertical position.
	if rel, ok := structure.RelativeY(line.Page, line.YKey); ok {
		switch {
		case rel < 0.15:
			score += w.NearTop
		case rel < 0.25:
			score += w.UpperQuarter
		case rel < 0.4:
			score += w.UpperHalf
		}
	} else {
		switch {
		case line.YKey < 200:
			score += w.AbsoluteHigh
		case line.YKey < 400:
			score += w.AbsoluteMid
		case line.YKey < 600:
			score += w.AbsoluteLow
		}
	}

	if !strings.ContainsAny(text, "()[]{}") {
		score += w.NoBrackets
	}

	// Casing shapes, cumulative.
	if titleCaseText.MatchString(clean) && cleanLength > 3 {
		score += w.TitleCaseShape
	}
	if allCapsText.MatchString(clean) && cleanLength > 5 {
		score += w.CapsShape
	}
	if colonHeadingFormat.MatchString(clean) {
		score += w.ColonShape
	}
	if capsColonHeadingFormat.MatchString(clean) {
		score += w.CapsColonShape
	}
	if multiTitleCaseText.MatchString(clean) {
		score += w.MultiTitleCaseShape
	}

	// Document-adaptive rewards.
	patterns := structure.Patterns
	if patterns.NumberedSections > 0 && hasNumbering {
		score += w.AdaptiveNumbered
	}
	if patterns.AllCapsLines > 0 && isAllCaps {
		score += w.AdaptiveCaps
	}
	if patterns.ColonEndings > 0 && strings.HasSuffix(text, ":") {
		score += w.AdaptiveColon
	}

	if utf8.RuneCountInString(text) > 3 && firstRuneUpper(text) && !strings.HasSuffix(text, ".") {
		score += w.CleanOpening
	}

	return score
}

// cleanHeadingText prepares a line for shape analysis: trailing dots
// removed, whitespace runs collapsed, and every character outside
// word characters, whitespace, hyphen, dot, and colon dropped. Colons
// survive so the colon-format shapes can match.
func cleanHeadingText(s string) string {
	s = trailingDots.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			r == '_' || r == '-' || r == '.' || r == ':' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// firstRuneUpper reports whether the first rune of s is uppercase.
func firstRuneUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
