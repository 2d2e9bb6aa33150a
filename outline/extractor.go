package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// ExtractorConfig aggregates the configuration of every outline stage.
type ExtractorConfig struct {
	Title   TitleConfig
	Heading HeadingConfig
	Filter  FilterConfig
	Legacy  LegacyConfig

	// MaxHeadings caps the final outline length.
	MaxHeadings int
}

// DefaultExtractorConfig returns the default settings for the full
// outline pipeline.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Title:       DefaultTitleConfig(),
		Heading:     DefaultHeadingConfig(),
		Filter:      DefaultFilterConfig(),
		Legacy:      DefaultLegacyConfig(),
		MaxHeadings: 40,
	}
}

// Extractor runs the outline pipeline: title extraction, archetype
// detection, heading classification, filtering, page validation, and
// the final cap.
type Extractor struct {
	config     ExtractorConfig
	title      *TitleExtractor
	classifier *HeadingClassifier
	filter     *Filter
	legacy     *Legacy
	validator  *PageValidator
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultExtractorConfig())
}

// NewExtractorWithConfig creates an extractor with custom
// configuration. Zero-valued fields fall back to defaults.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	if config.MaxHeadings <= 0 {
		config.MaxHeadings = 40
	}
	legacy := NewLegacyWithConfig(config.Legacy)
	return &Extractor{
		config:     config,
		legacy:     legacy,
		title:      NewTitleExtractorWithConfig(config.Title).WithLegacy(legacy),
		classifier: NewHeadingClassifierWithConfig(config.Heading),
		filter:     NewFilterWithConfig(config.Filter),
		validator:  NewPageValidator(),
	}
}

// Extract runs the full pipeline over merged lines. The result always
// carries a title and a non-nil outline; extraction itself cannot fail,
// only degrade.
func (e *Extractor) Extract(lines []layout.Line, structure *layout.Structure) *model.Result {
	if structure == nil {
		structure = &layout.Structure{}
	}
	ordered := orderedCopy(lines)

	title := e.title.Extract(ordered, structure)
	allText := joinedLower(ordered)

	// Fillable forms have field labels, not structure: no outline.
	if e.legacy.IsForm(allText) {
		return &model.Result{Title: title, Outline: []model.Heading{}}
	}

	potential := e.collect(ordered, structure, title)
	final := e.filter.Apply(potential, structure)

	// Archetype documents replace the scored outline with a single
	// document-level heading. Poster wins when both match.
	if e.legacy.IsBrochure(allText) {
		final = []model.Heading{e.legacy.BrochureHeading(ordered)}
	}
	if e.legacy.IsPoster(allText) {
		final = []model.Heading{e.legacy.PosterHeading(ordered)}
	}

	final = e.validator.Validate(final, ordered)
	final = CapOutline(final, e.config.MaxHeadings)

	return &model.Result{Title: title, Outline: final}
}

// collect classifies every line that is not the title or one of its
// segments, in reading order.
func (e *Extractor) collect(lines []layout.Line, structure *layout.Structure, title string) []model.Heading {
	titleText := strings.TrimSpace(title)
	segments := titleSegments(title)

	var potential []model.Heading
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || utf8.RuneCountInString(text) < 3 {
			continue
		}
		if text == titleText || inList(text, segments) {
			continue
		}

		level, ok := e.classifier.Classify(line, structure)
		if !ok {
			continue
		}
		potential = append(potential, model.Heading{
			Level: level,
			Text:  cleanOutlineText(text),
			Page:  line.Page,
		})
	}
	return potential
}

// titleSegments splits a multi-line title into its double-space
// separated parts, trimmed, blanks dropped.
func titleSegments(title string) []string {
	var segments []string
	for _, part := range strings.Split(title, "  ") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

// cleanOutlineText normalizes heading output text: trailing dots
// removed, whitespace runs collapsed, surrounding space trimmed.
func cleanOutlineText(s string) string {
	s = trailingDots.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
}
