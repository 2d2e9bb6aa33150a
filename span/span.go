package span

import (
	"strings"

	"github.com/tsawler/titulus/model"
)

// TextSpan is the smallest unit of decoded text: a run of characters with
// uniform font attributes at a fixed position on one page. Page decoders
// produce spans; this library only consumes them.
type TextSpan struct {
	Text     string
	FontSize float64
	Bold     bool
	Italic   bool
	FontName string
	Page     int // 1-based page index
	BBox     model.BBox
}

// boldIndicators are font-name substrings that mark a bold face.
var boldIndicators = []string{"bold", "black", "heavy", "demibold"}

// BoldFontName reports whether a font name denotes a bold face.
// Matching is case-insensitive substring search, the convention used by
// PDF font descriptors ("Helvetica-Bold", "ArialBlack").
func BoldFontName(name string) bool {
	lower := strings.ToLower(name)
	for _, indicator := range boldIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// ItalicFontName reports whether a font name denotes an italic face.
func ItalicFontName(name string) bool {
	return strings.Contains(strings.ToLower(name), "italic")
}

// New creates a TextSpan, deriving the bold and italic flags from the
// font name. Decoders that carry explicit style flags can set the struct
// fields directly instead.
func New(text string, fontSize float64, fontName string, page int, bbox model.BBox) TextSpan {
	return TextSpan{
		Text:     text,
		FontSize: fontSize,
		Bold:     BoldFontName(fontName),
		Italic:   ItalicFontName(fontName),
		FontName: fontName,
		Page:     page,
		BBox:     bbox,
	}
}

// Usable reports whether a span carries enough signal to participate in
// line merging: non-empty trimmed text, a positive font size, and a
// positive page index.
func (s TextSpan) Usable() bool {
	return strings.TrimSpace(s.Text) != "" && s.FontSize > 0 && s.Page > 0
}
