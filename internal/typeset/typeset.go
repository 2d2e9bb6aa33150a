// Package typeset lays text blocks onto synthetic US-Letter pages. The
// HTML and Markdown decoders have no real geometry to report, so they
// share this cursor: it assigns each block a position, a font size, and
// a page number the way a simple single-column renderer would.
package typeset

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

// Page geometry in points: US Letter with one-inch margins.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 72.0
)

// Style is the typographic treatment of one block kind.
type Style struct {
	Size float64
	Bold bool
	Font string
}

// HeadingStyle returns the synthetic style for a heading level 1
// through 6. Levels beyond 6 clamp to 6, levels below 1 to 1.
func HeadingStyle(level int) Style {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	sizes := [6]float64{24, 20, 16, 14, 12, 12}
	return Style{Size: sizes[level-1], Bold: true, Font: "Helvetica-Bold"}
}

// BodyStyle returns the synthetic style for paragraph and list text.
func BodyStyle() Style {
	return Style{Size: 11, Font: "Helvetica"}
}

// Cursor places blocks top to bottom, breaking to a new page when a
// block would cross the bottom margin. Line advance is one and a half
// times the font size.
type Cursor struct {
	page  int
	y     float64
	spans []span.TextSpan
}

// NewCursor returns a cursor at the top of page one.
func NewCursor() *Cursor {
	return &Cursor{page: 1, y: Margin}
}

// Place appends one block of flattened text in the given style. Blocks
// that flatten to nothing are ignored.
func (c *Cursor) Place(text string, style Style) {
	text = Flatten(text)
	if text == "" {
		return
	}

	if c.y+style.Size > PageHeight-Margin {
		c.page++
		c.y = Margin
	}

	width := 0.5 * style.Size * float64(utf8.RuneCountInString(text))
	if width > PageWidth-2*Margin {
		width = PageWidth - 2*Margin
	}

	c.spans = append(c.spans, span.TextSpan{
		Text:     text,
		FontSize: style.Size,
		Bold:     style.Bold,
		FontName: style.Font,
		Page:     c.page,
		BBox:     model.NewBBox(Margin, c.y, width, style.Size),
	})
	c.y += style.Size * 1.5
}

// PageBreak moves the cursor to the top of the next page. A break at
// the top of an empty page does nothing.
func (c *Cursor) PageBreak() {
	if c.y == Margin {
		return
	}
	c.page++
	c.y = Margin
}

// Spans returns the accumulated spans in placement order.
func (c *Cursor) Spans() []span.TextSpan {
	return c.spans
}

// Flatten collapses all whitespace runs in s to single spaces and trims
// the ends, turning multi-line block content into one span text.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
