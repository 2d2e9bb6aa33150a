package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

// Line is a single reading-order text unit: every span sharing one page
// and one quantized vertical position, merged left to right. Lines are
// immutable once built and are the unit of all downstream analysis.
type Line struct {
	Page        int     // 1-based page index
	YKey        float64 // quantized vertical grid position
	Text        string  // merged, space-normalized text
	FontSize    float64 // max over constituent spans
	AvgFontSize float64 // mean over constituent spans
	Bold        bool    // OR over constituent spans
	Italic      bool    // OR over constituent spans
	Length      int     // rune count of Text
	WordCount   int     // whitespace-delimited words in Text
	BBox        model.BBox
}

// MergerConfig holds the tolerances for span-to-line clustering.
type MergerConfig struct {
	// YTolerance is the vertical grid step: spans whose top edges fall
	// in the same cell of a grid with this step merge into one line.
	YTolerance float64

	// XGapTolerance is the horizontal distance between the right edge of
	// one span and the left edge of the next beyond which a word break
	// is assumed and a single space inserted.
	XGapTolerance float64
}

// DefaultMergerConfig returns the default merging tolerances.
func DefaultMergerConfig() MergerConfig {
	return MergerConfig{
		YTolerance:    3.0,
		XGapTolerance: 15.0,
	}
}

// Merger clusters decoded spans into reading-order lines.
type Merger struct {
	config MergerConfig
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return NewMergerWithConfig(DefaultMergerConfig())
}

// NewMergerWithConfig creates a merger with custom configuration.
func NewMergerWithConfig(config MergerConfig) *Merger {
	if config.YTolerance <= 0 {
		config.YTolerance = 3.0
	}
	if config.XGapTolerance <= 0 {
		config.XGapTolerance = 15.0
	}
	return &Merger{config: config}
}

// lineKey identifies one merge group: a page and a quantized y position.
type lineKey struct {
	page int
	yKey float64
}

// Merge clusters spans into lines. Spans with blank text are skipped.
// The returned order is unspecified; use SortLines before any pass that
// depends on reading order.
func (m *Merger) Merge(spans []span.TextSpan) []Line {
	groups := make(map[lineKey][]span.TextSpan)
	for _, s := range spans {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		key := lineKey{
			page: s.Page,
			yKey: math.Floor(s.BBox.Top()/m.config.YTolerance) * m.config.YTolerance,
		}
		groups[key] = append(groups[key], s)
	}

	lines := make([]Line, 0, len(groups))
	for key, group := range groups {
		if line, ok := m.assemble(key, group); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// assemble builds one line from the spans of a merge group.
func (m *Merger) assemble(key lineKey, group []span.TextSpan) (Line, bool) {
	sort.Slice(group, func(i, j int) bool {
		return group[i].BBox.Left() < group[j].BBox.Left()
	})

	var (
		text     strings.Builder
		bbox     model.BBox
		maxSize  float64
		sizeSum  float64
		bold     bool
		italic   bool
		currentX = -1.0
	)

	for i, s := range group {
		if currentX >= 0 && math.Abs(s.BBox.Left()-currentX) > m.config.XGapTolerance {
			text.WriteByte(' ')
		}
		text.WriteString(s.Text)
		currentX = s.BBox.Right()

		if s.FontSize > maxSize {
			maxSize = s.FontSize
		}
		sizeSum += s.FontSize
		bold = bold || s.Bold
		italic = italic || s.Italic

		if i == 0 {
			bbox = s.BBox
		} else {
			bbox = bbox.Union(s.BBox)
		}
	}

	merged := normalizeLineText(text.String())
	if merged == "" {
		return Line{}, false
	}

	return Line{
		Page:        key.page,
		YKey:        key.yKey,
		Text:        merged,
		FontSize:    maxSize,
		AvgFontSize: sizeSum / float64(len(group)),
		Bold:        bold,
		Italic:      italic,
		Length:      utf8.RuneCountInString(merged),
		WordCount:   len(strings.Fields(merged)),
		BBox:        bbox,
	}, true
}

// normalizeLineText applies the merged-text cleanup: one pass of
// double-space collapse, a trim, and NFC normalization so that decoders
// emitting combining sequences compare equal to precomposed text.
func normalizeLineText(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "  ", " "))
	return norm.NFC.String(s)
}

// SortLines orders lines by (page, y, x) reading order in place.
func SortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Page != lines[j].Page {
			return lines[i].Page < lines[j].Page
		}
		if lines[i].BBox.Top() != lines[j].BBox.Top() {
			return lines[i].BBox.Top() < lines[j].BBox.Top()
		}
		return lines[i].BBox.Left() < lines[j].BBox.Left()
	})
}
