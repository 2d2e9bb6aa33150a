package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FontStats summarizes the font sizes observed in one scope (a single
// page or the whole document).
type FontStats struct {
	Max    float64
	Min    float64
	Mean   float64
	Std    float64
	Median float64
	P75    float64
	P90    float64
}

// TextPatterns counts structural conventions across a document's lines.
// The counts drive document-adaptive scoring: a document that numbers
// its sections rewards numbered lines, one that shouts in capitals
// rewards capitals.
type TextPatterns struct {
	NumberedSections int // lines starting "<digits>."
	AllCapsLines     int // fully uppercase lines above the length floor
	TitleCaseLines   int // single-capital lines above the length floor
	ColonEndings     int // lines ending with a colon
	ShortLines       int // lines under the short limit
	LongLines        int // lines over the long limit
}

// PageLayout records the observed content extent of one page. Margins
// are taken from line positions, not the physical page box, so a page
// with a single line has zero height.
type PageLayout struct {
	TopMargin    float64 // smallest line y
	BottomMargin float64 // largest line y
	LeftMargin   float64 // smallest line x
	RightMargin  float64 // largest line x
	MeanY        float64
	StdY         float64
}

// Structure is the document-level profile every downstream scoring pass
// reads from: font-size distributions, text-pattern counts, and page
// content extents.
type Structure struct {
	// PageFonts holds per-page font statistics over all lines on the
	// page, including lines with no recorded size.
	PageFonts map[int]FontStats

	// GlobalFonts holds document-wide font statistics over lines with a
	// positive font size. Zero-valued when no line carries a size; use
	// [Structure.HasGlobalFonts] to distinguish.
	GlobalFonts FontStats

	// Patterns is the document-wide text-pattern histogram.
	Patterns TextPatterns

	// PageLayouts holds per-page content extents keyed by page number.
	PageLayouts map[int]PageLayout
}

// HasGlobalFonts reports whether any line carried a positive font size,
// i.e. whether GlobalFonts is meaningful.
func (s *Structure) HasGlobalFonts() bool {
	return s != nil && s.GlobalFonts.Max > 0
}

// RelativeY maps a vertical position to the 0..1 range of the page's
// observed content extent: 0 is the topmost line, 1 the bottommost.
// ok is false when the page has no layout entry; a page whose content
// extent has zero height reports 0 for every position.
func (s *Structure) RelativeY(page int, y float64) (rel float64, ok bool) {
	if s == nil {
		return 0, false
	}
	pl, found := s.PageLayouts[page]
	if !found {
		return 0, false
	}
	height := pl.BottomMargin - pl.TopMargin
	if height <= 0 {
		return 0, true
	}
	return (y - pl.TopMargin) / height, true
}

// AnalyzerConfig holds the thresholds for the text-pattern histogram.
type AnalyzerConfig struct {
	// ShortLineLimit is the rune count below which a line counts as short.
	ShortLineLimit int

	// LongLineLimit is the rune count above which a line counts as long.
	LongLineLimit int

	// MinPatternLength is the rune count a line must exceed before it
	// counts toward the all-caps or title-case buckets.
	MinPatternLength int
}

// DefaultAnalyzerConfig returns the default histogram thresholds.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		ShortLineLimit:   20,
		LongLineLimit:    100,
		MinPatternLength: 3,
	}
}

// Analyzer profiles a document's lines into a [Structure].
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates an analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration.
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	if config.ShortLineLimit <= 0 {
		config.ShortLineLimit = 20
	}
	if config.LongLineLimit <= 0 {
		config.LongLineLimit = 100
	}
	if config.MinPatternLength <= 0 {
		config.MinPatternLength = 3
	}
	return &Analyzer{config: config}
}

var (
	numberedLinePattern  = regexp.MustCompile(`^\d+\.`)
	titleCaseLinePattern = regexp.MustCompile(`^[A-Z][a-z\s]+$`)
)

// Analyze profiles lines into font statistics, text patterns, and page
// layouts. The result is never nil, even for an empty slice.
func (a *Analyzer) Analyze(lines []Line) *Structure {
	structure := &Structure{
		PageFonts:   make(map[int]FontStats),
		PageLayouts: make(map[int]PageLayout),
	}

	byPage := make(map[int][]Line)
	for _, line := range lines {
		byPage[line.Page] = append(byPage[line.Page], line)
	}

	for page, pageLines := range byPage {
		sizes := make([]float64, 0, len(pageLines))
		ys := make([]float64, 0, len(pageLines))
		xs := make([]float64, 0, len(pageLines))
		for _, line := range pageLines {
			sizes = append(sizes, line.FontSize)
			ys = append(ys, line.YKey)
			xs = append(xs, line.BBox.Left())
		}
		structure.PageFonts[page] = fontStatsOf(sizes)
		structure.PageLayouts[page] = PageLayout{
			TopMargin:    minOf(ys),
			BottomMargin: maxOf(ys),
			LeftMargin:   minOf(xs),
			RightMargin:  maxOf(xs),
			MeanY:        mean(ys),
			StdY:         stdDev(ys),
		}
	}

	var globalSizes []float64
	for _, line := range lines {
		if line.FontSize > 0 {
			globalSizes = append(globalSizes, line.FontSize)
		}
	}
	if len(globalSizes) > 0 {
		structure.GlobalFonts = fontStatsOf(globalSizes)
	}

	structure.Patterns = a.analyzePatterns(lines)
	return structure
}

// fontStatsOf summarizes one non-empty size sample.
func fontStatsOf(sizes []float64) FontStats {
	return FontStats{
		Max:    maxOf(sizes),
		Min:    minOf(sizes),
		Mean:   mean(sizes),
		Std:    stdDev(sizes),
		Median: median(sizes),
		P75:    percentile(sizes, 75),
		P90:    percentile(sizes, 90),
	}
}

// analyzePatterns counts the structural conventions of the document.
// A line can land in several buckets at once.
func (a *Analyzer) analyzePatterns(lines []Line) TextPatterns {
	var patterns TextPatterns
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		length := utf8.RuneCountInString(text)

		if numberedLinePattern.MatchString(text) {
			patterns.NumberedSections++
		}
		if IsAllUpper(text) && length > a.config.MinPatternLength {
			patterns.AllCapsLines++
		}
		if titleCaseLinePattern.MatchString(text) && length > a.config.MinPatternLength {
			patterns.TitleCaseLines++
		}
		if strings.HasSuffix(text, ":") {
			patterns.ColonEndings++
		}
		if length < a.config.ShortLineLimit {
			patterns.ShortLines++
		}
		if length > a.config.LongLineLimit {
			patterns.LongLines++
		}
	}
	return patterns
}

// IsAllUpper reports whether s contains at least one uppercase letter
// and no lowercase letters. Digits, spaces, and punctuation are
// ignored, so "SECTION 2.1" qualifies while "SECTION 2a" does not.
func IsAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
