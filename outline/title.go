package outline

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/titulus/layout"
)

// UntitledTitle is returned when no line scores well enough to be a
// title.
const UntitledTitle = "Untitled Document"

// titleTrailer is appended to every extracted title. Consumers compare
// against the historical output byte for byte, double trailing spaces
// included, so the suffix is part of the output contract.
const titleTrailer = "  "

// TitleWeights is the additive scoring table for title candidates.
// Features are independent except where a comment notes a tier: tiers
// award only their highest matching row.
type TitleWeights struct {
	// Font size against the whole document, tiered.
	GlobalNearMax   int // within 95% of the document maximum
	GlobalTop       int // at or above the 90th percentile
	GlobalProminent int // at or above mean + one std dev
	GlobalAboveMean int // at or above the mean

	// Font size against the candidate's page, tiered.
	PageTop   int // at or above the page 90th percentile
	PageUpper int // at or above the page 75th percentile

	Bold int

	// Vertical position, tiered. The relative rows apply when the page
	// has layout statistics, the absolute rows when it does not.
	NearTop      int // top 10% of the page
	UpperFifth   int // top 20%
	UpperThird   int // top 30%
	AbsoluteHigh int // above y=200 without layout statistics
	AbsoluteMid  int // above y=400 without layout statistics

	FirstPage  int
	SecondPage int

	// Word count of the cleaned candidate, tiered.
	IdealWords      int // 3..15 words
	AcceptableWords int // 2..20 words

	NoLeadingDigit int // no digit in the first three runes

	// Casing shape, tiered.
	MultiTitleCase int // two capitalized words of lowercase
	TitleCase      int // one leading capital, longer than 5 runes
	AllCaps        int // all uppercase, longer than 5 runes

	// HouseStyle rewards title-cased candidates in documents whose
	// pattern histogram shows title-cased lines.
	HouseStyle int
}

// DefaultTitleWeights returns the standard title scoring table.
func DefaultTitleWeights() TitleWeights {
	return TitleWeights{
		GlobalNearMax:   50,
		GlobalTop:       40,
		GlobalProminent: 30,
		GlobalAboveMean: 20,
		PageTop:         25,
		PageUpper:       15,
		Bold:            30,
		NearTop:         25,
		UpperFifth:      15,
		UpperThird:      10,
		AbsoluteHigh:    20,
		AbsoluteMid:     10,
		FirstPage:       20,
		SecondPage:      5,
		IdealWords:      20,
		AcceptableWords: 15,
		NoLeadingDigit:  15,
		MultiTitleCase:  30,
		TitleCase:       25,
		AllCaps:         20,
		HouseStyle:      10,
	}
}

// ContinuationConfig controls how a second top-of-page candidate is
// joined onto the best one to form a multi-line title.
type ContinuationConfig struct {
	// MaxLeadRelY is how far down the page the best candidate may sit
	// before continuation search is skipped entirely.
	MaxLeadRelY float64

	// MaxRelY is how far down the page a continuation may sit.
	MaxRelY float64

	// MaxRelYDelta is the largest vertical distance, in relative page
	// units, between the best candidate and a continuation.
	MaxRelYDelta float64

	// FontSlack is how many units smaller than the best candidate a
	// continuation's font may be.
	FontSlack float64

	// MaxWords caps the continuation's word count.
	MaxWords int

	// MinScore is the minimum stored score of a continuation.
	MinScore int

	// Damping scales a continuation's score before the proximity factor
	// is applied.
	Damping float64
}

// DefaultContinuationConfig returns the standard continuation rules.
func DefaultContinuationConfig() ContinuationConfig {
	return ContinuationConfig{
		MaxLeadRelY:  0.3,
		MaxRelY:      0.5,
		MaxRelYDelta: 0.2,
		FontSlack:    4,
		MaxWords:     10,
		MinScore:     30,
		Damping:      0.7,
	}
}

// TitleConfig holds the vocabularies, weights, and acceptance
// thresholds of title extraction.
type TitleConfig struct {
	// SkipWords are boilerplate substrings that disqualify a candidate.
	SkipWords []string

	// OverrideTerms let form-document titles through the SkipWords
	// check.
	OverrideTerms []string

	// FieldLabels are stripped from the tail of form-document titles.
	FieldLabels []string

	Weights      TitleWeights
	Continuation ContinuationConfig

	// MinScore and MinLength gate the normal acceptance path: a
	// candidate needs a score above MinScore and more than MinLength
	// runes.
	MinScore  int
	MinLength int

	// RelaxedScore, RelaxedLength, and RelaxedWords gate the long-title
	// path for descriptive titles that score lower per word; accepted
	// candidates gain RelaxedBonus.
	RelaxedScore  int
	RelaxedLength int
	RelaxedWords  int
	RelaxedBonus  int
}

// DefaultTitleConfig returns the default title extraction settings.
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		SkipWords:     defaultBoilerplateTerms(),
		OverrideTerms: defaultTitleOverrides(),
		FieldLabels:   defaultFieldLabels(),
		Weights:       DefaultTitleWeights(),
		Continuation:  DefaultContinuationConfig(),
		MinScore:      50,
		MinLength:     5,
		RelaxedScore:  30,
		RelaxedLength: 20,
		RelaxedWords:  5,
		RelaxedBonus:  20,
	}
}

// TitleExtractor scores lines for title likelihood and assembles the
// document title, including multi-line titles and poster overrides.
type TitleExtractor struct {
	config TitleConfig
	legacy *Legacy
}

// NewTitleExtractor creates a title extractor with default
// configuration.
func NewTitleExtractor() *TitleExtractor {
	return NewTitleExtractorWithConfig(DefaultTitleConfig())
}

// NewTitleExtractorWithConfig creates a title extractor with custom
// configuration. Zero-valued fields fall back to defaults.
func NewTitleExtractorWithConfig(config TitleConfig) *TitleExtractor {
	defaults := DefaultTitleConfig()
	if len(config.SkipWords) == 0 {
		config.SkipWords = defaults.SkipWords
	}
	if len(config.OverrideTerms) == 0 {
		config.OverrideTerms = defaults.OverrideTerms
	}
	if len(config.FieldLabels) == 0 {
		config.FieldLabels = defaults.FieldLabels
	}
	if config.Weights == (TitleWeights{}) {
		config.Weights = defaults.Weights
	}
	if config.Continuation == (ContinuationConfig{}) {
		config.Continuation = defaults.Continuation
	}
	if config.MinScore <= 0 {
		config.MinScore = defaults.MinScore
	}
	if config.MinLength <= 0 {
		config.MinLength = defaults.MinLength
	}
	if config.RelaxedScore <= 0 {
		config.RelaxedScore = defaults.RelaxedScore
	}
	if config.RelaxedLength <= 0 {
		config.RelaxedLength = defaults.RelaxedLength
	}
	if config.RelaxedWords <= 0 {
		config.RelaxedWords = defaults.RelaxedWords
	}
	if config.RelaxedBonus <= 0 {
		config.RelaxedBonus = defaults.RelaxedBonus
	}
	return &TitleExtractor{config: config, legacy: NewLegacy()}
}

// WithLegacy replaces the archetype detector consulted for poster
// documents. Returns the extractor for chaining.
func (e *TitleExtractor) WithLegacy(legacy *Legacy) *TitleExtractor {
	if legacy != nil {
		e.legacy = legacy
	}
	return e
}

// titleCandidate is one scored line.
type titleCandidate struct {
	text      string
	score     int
	page      int
	fontSize  float64
	wordCount int
	relY      float64
}

var (
	trailingDots       = regexp.MustCompile(`\.+$`)
	multiTitleCaseText = regexp.MustCompile(`^[A-Z][a-z\s]+[A-Z][a-z\s]+$`)
	titleCaseText      = regexp.MustCompile(`^[A-Z][a-z\s]+$`)
	allCapsText        = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
)

// Extract returns the document title with its trailing marker, or
// [UntitledTitle] when nothing qualifies. Lines are evaluated in
// reading order regardless of input order.
func (e *TitleExtractor) Extract(lines []layout.Line, structure *layout.Structure) string {
	if structure == nil {
		structure = &layout.Structure{}
	}
	ordered := orderedCopy(lines)
	candidates := e.collect(ordered, structure)
	if len(candidates) == 0 {
		return UntitledTitle
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	best := candidates[0]

	// Multi-line titles: a second strong candidate just below the best
	// one on the first page continues the title.
	if best.page == 1 && best.relY < e.config.Continuation.MaxLeadRelY {
		if cont, ok := e.bestContinuation(best, candidates[1:]); ok {
			combined := best.text + "  " + cont.text
			return e.stripFieldSuffix(combined) + titleTrailer
		}
	}

	final := e.stripFieldSuffix(best.text)

	// Poster documents title on their announcement line, not the
	// highest-scoring one.
	if e.legacy.IsPoster(joinedLower(ordered)) {
		return e.legacy.PosterTitle(ordered)
	}

	return final + titleTrailer
}

// collect scores every line and returns the acceptable candidates in
// reading order.
func (e *TitleExtractor) collect(lines []layout.Line, structure *layout.Structure) []titleCandidate {
	var candidates []titleCandidate
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || utf8.RuneCountInString(text) <= 3 || allDigits(text) {
			continue
		}

		title := cleanTitleText(text)
		lower := strings.ToLower(title)
		if containsAny(lower, e.config.SkipWords) && !containsAny(lower, e.config.OverrideTerms) {
			continue
		}

		score := e.score(line, title, structure)
		length := utf8.RuneCountInString(title)
		words := len(strings.Fields(title))

		accepted := false
		switch {
		case score > e.config.MinScore && length > e.config.MinLength:
			accepted = true
		case score > e.config.RelaxedScore && length > e.config.RelaxedLength && words >= e.config.RelaxedWords:
			// Long descriptive titles score lower per word; boost them
			// onto the same scale.
			score += e.config.RelaxedBonus
			accepted = true
		}
		if !accepted {
			continue
		}

		rel, ok := structure.RelativeY(line.Page, line.YKey)
		if !ok {
			rel = 0
		}
		candidates = append(candidates, titleCandidate{
			text:      title,
			score:     score,
			page:      line.Page,
			fontSize:  line.FontSize,
			wordCount: words,
			relY:      rel,
		})
	}
	return candidates
}

// score computes the additive title score of one cleaned candidate.
func (e *TitleExtractor) score(line layout.Line, title string, structure *layout.Structure) int {
	w := e.config.Weights
	score := 0

	if structure.HasGlobalFonts() {
		g := structure.GlobalFonts
		switch {
		case line.FontSize >= g.Max*0.95:
			score += w.GlobalNearMax
		case line.FontSize >= g.P90:
			score += w.GlobalTop
		case line.FontSize >= g.Mean+g.Std:
			score += w.GlobalProminent
		case line.FontSize >= g.Mean:
			score += w.GlobalAboveMean
		}
	}

	if page, ok := structure.PageFonts[line.Page]; ok {
		switch {
		case line.FontSize >= page.P90:
			score += w.PageTop
		case line.FontSize >= page.P75:
			score += w.PageUpper
		}
	}

	if line.Bold {
		score += w.Bold
	}

	if rel, ok := structure.RelativeY(line.Page, line.YKey); ok {
		switch {
		case rel < 0.1:
			score += w.NearTop
		case rel < 0.2:
			score += w.UpperFifth
		case rel < 0.3:
			score += w.UpperThird
		}
	} else {
		switch {
		case line.YKey < 200:
			score += w.AbsoluteHigh
		case line.YKey < 400:
			score += w.AbsoluteMid
		}
	}

	switch line.Page {
	case 1:
		score += w.FirstPage
	case 2:
		score += w.SecondPage
	}

	words := len(strings.Fields(title))
	switch {
	case words >= 3 && words <= 15:
		score += w.IdealWords
	case words >= 2 && words <= 20:
		score += w.AcceptableWords
	}

	if !digitInPrefix(title, 3) {
		score += w.NoLeadingDigit
	}

	length := utf8.RuneCountInString(title)
	switch {
	case multiTitleCaseText.MatchString(title):
		score += w.MultiTitleCase
	case titleCaseText.MatchString(title) && length > 5:
		score += w.TitleCase
	case allCapsText.MatchString(title) && length > 5:
		score += w.AllCaps
	}

	if structure.Patterns.TitleCaseLines > 0 && titleCaseText.MatchString(title) {
		score += w.HouseStyle
	}

	return score
}

// bestContinuation picks the strongest continuation for the best
// candidate, weighting stored scores by vertical proximity. The first
// candidate in score order wins ties.
func (e *TitleExtractor) bestContinuation(best titleCandidate, rest []titleCandidate) (titleCandidate, bool) {
	rules := e.config.Continuation
	var (
		winner    titleCandidate
		winnerVal float64
		found     bool
	)
	for _, cand := range rest {
		if cand.page != 1 || cand.relY >= rules.MaxRelY {
			continue
		}
		delta := math.Abs(cand.relY - best.relY)
		if delta >= rules.MaxRelYDelta {
			continue
		}
		if cand.fontSize < best.fontSize-rules.FontSlack {
			continue
		}
		if cand.text == best.text {
			continue
		}
		if cand.wordCount > rules.MaxWords {
			continue
		}
		if cand.score <= rules.MinScore {
			continue
		}

		val := float64(cand.score) * rules.Damping * (1 - delta)
		if !found || val > winnerVal {
			winner = cand
			winnerVal = val
			found = true
		}
	}
	return winner, found
}

// stripFieldSuffix removes one trailing form field label from a form or
// application title.
func (e *TitleExtractor) stripFieldSuffix(title string) string {
	lower := strings.ToLower(title)
	if !strings.Contains(lower, "form") && !strings.Contains(lower, "application") {
		return title
	}
	for _, label := range e.config.FieldLabels {
		if strings.HasSuffix(lower, label) {
			return strings.TrimSpace(title[:len(title)-len(label)])
		}
	}
	return title
}

// cleanTitleText normalizes a candidate: newlines to spaces, doubled
// spaces collapsed, trailing dots removed, whitespace runs collapsed.
func cleanTitleText(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "  ", " "))
	s = trailingDots.ReplaceAllString(s, "")
	return spaceRuns.ReplaceAllString(s, " ")
}

// allDigits reports whether s is non-empty and entirely digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// digitInPrefix reports whether any of the first n runes is a digit.
func digitInPrefix(s string, n int) bool {
	count := 0
	for _, r := range s {
		if count >= n {
			break
		}
		if unicode.IsDigit(r) {
			return true
		}
		count++
	}
	return false
}

// orderedCopy sorts a copy of lines into reading order, leaving the
// caller's slice untouched.
func orderedCopy(lines []layout.Line) []layout.Line {
	ordered := make([]layout.Line, len(lines))
	copy(ordered, lines)
	layout.SortLines(ordered)
	return ordered
}
