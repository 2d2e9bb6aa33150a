package layout

import (
	"testing"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

// makeSpan builds a span whose width is proportional to its text length,
// roughly half an em per character.
func makeSpan(text string, size float64, page int, x, y float64) span.TextSpan {
	width := 0.5 * size * float64(len(text))
	return span.New(text, size, "Helvetica", page, model.NewBBox(x, y, width, size))
}

func TestMergerSingleLine(t *testing.T) {
	merger := NewMerger()
	spans := []span.TextSpan{
		makeSpan("Hello", 12, 1, 72, 100),
		makeSpan("World", 12, 1, 102, 100),
	}

	lines := merger.Merge(spans)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Page != 1 {
		t.Errorf("Expected page 1, got %d", lines[0].Page)
	}
	if lines[0].WordCount != 2 {
		t.Errorf("Expected 2 words, got %d", lines[0].WordCount)
	}
}

func TestMergerGapInsertsSpace(t *testing.T) {
	// Two spans on slightly different baselines with a 20-unit
	// horizontal gap: one line, one inserted space.
	merger := NewMerger()
	left := makeSpan("Hello", 12, 1, 72, 100.0)
	right := makeSpan("World", 12, 1, left.BBox.Right()+20, 100.5)

	lines := merger.Merge([]span.TextSpan{left, right})
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("Expected %q, got %q", "Hello World", lines[0].Text)
	}
}

func TestMergerAdjacentSpansNoSpace(t *testing.T) {
	merger := NewMerger()
	left := makeSpan("Hel", 12, 1, 72, 100)
	right := makeSpan("lo", 12, 1, left.BBox.Right(), 100)

	lines := merger.Merge([]span.TextSpan{left, right})
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello" {
		t.Errorf("Expected %q, got %q", "Hello", lines[0].Text)
	}
}

func TestMergerSeparatesPages(t *testing.T) {
	merger := NewMerger()
	spans := []span.TextSpan{
		makeSpan("First", 12, 1, 72, 100),
		makeSpan("Second", 12, 2, 72, 100),
	}

	lines := merger.Merge(spans)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
}

func TestMergerSeparatesDistantBaselines(t *testing.T) {
	merger := NewMerger()
	spans := []span.TextSpan{
		makeSpan("Upper", 12, 1, 72, 100),
		makeSpan("Lower", 12, 1, 72, 120),
	}

	lines := merger.Merge(spans)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
}

func TestMergerSkipsBlankSpans(t *testing.T) {
	merger := NewMerger()
	spans := []span.TextSpan{
		makeSpan("   ", 12, 1, 72, 100),
		makeSpan("Visible", 12, 1, 120, 100),
	}

	lines := merger.Merge(spans)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Visible" {
		t.Errorf("Expected %q, got %q", "Visible", lines[0].Text)
	}

	if got := merger.Merge([]span.TextSpan{makeSpan("  ", 12, 1, 72, 100)}); len(got) != 0 {
		t.Errorf("Expected no lines from blank spans, got %d", len(got))
	}
}

func TestMergerFontAttributes(t *testing.T) {
	merger := NewMerger()
	regular := makeSpan("Chapter", 12, 1, 72, 100)
	big := span.New("One", 18, "Helvetica-Bold", 1, model.NewBBox(120, 100, 27, 18))

	lines := merger.Merge([]span.TextSpan{regular, big})
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line.FontSize != 18 {
		t.Errorf("Expected max font size 18, got %v", line.FontSize)
	}
	if line.AvgFontSize != 15 {
		t.Errorf("Expected average font size 15, got %v", line.AvgFontSize)
	}
	if !line.Bold {
		t.Error("Expected bold to propagate from any constituent span")
	}
	if line.Italic {
		t.Error("Expected italic to stay false")
	}
}

func TestMergerOrdersSpansLeftToRight(t *testing.T) {
	// Spans arrive in decoder order, not reading order.
	merger := NewMerger()
	spans := []span.TextSpan{
		makeSpan("World", 12, 1, 140, 100),
		makeSpan("Hello", 12, 1, 72, 100),
	}

	lines := merger.Merge(spans)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("Expected %q, got %q", "Hello World", lines[0].Text)
	}
}

func TestNormalizeLineText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double space collapse", "Annual  Report", "Annual Report"},
		{"trim", "  Title  ", "Title"},
		{"combining accent to NFC", "Café", "Café"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLineText(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewMergerWithConfigDefaults(t *testing.T) {
	merger := NewMergerWithConfig(MergerConfig{YTolerance: -1, XGapTolerance: 0})
	if merger.config.YTolerance != 3.0 {
		t.Errorf("Expected default y tolerance 3.0, got %v", merger.config.YTolerance)
	}
	if merger.config.XGapTolerance != 15.0 {
		t.Errorf("Expected default x gap tolerance 15.0, got %v", merger.config.XGapTolerance)
	}
}

func TestSortLines(t *testing.T) {
	lines := []Line{
		{Page: 2, BBox: model.NewBBox(72, 100, 50, 12)},
		{Page: 1, BBox: model.NewBBox(200, 300, 50, 12)},
		{Page: 1, BBox: model.NewBBox(72, 300, 50, 12)},
		{Page: 1, BBox: model.NewBBox(72, 100, 50, 12)},
	}

	SortLines(lines)

	if lines[0].Page != 1 || lines[0].BBox.Top() != 100 {
		t.Errorf("Expected page 1 y=100 first, got page %d y=%v", lines[0].Page, lines[0].BBox.Top())
	}
	if lines[1].BBox.Top() != 300 || lines[1].BBox.Left() != 72 {
		t.Errorf("Expected x tie-break within equal y, got x=%v", lines[1].BBox.Left())
	}
	if lines[3].Page != 2 {
		t.Errorf("Expected page 2 last, got page %d", lines[3].Page)
	}
}

func BenchmarkMergerMerge(b *testing.B) {
	spans := make([]span.TextSpan, 0, 500)
	for page := 1; page <= 5; page++ {
		for row := 0; row < 50; row++ {
			y := 72 + float64(row)*14
			spans = append(spans, makeSpan("Lorem ipsum dolor", 11, page, 72, y))
			spans = append(spans, makeSpan("sit amet", 11, page, 220, y))
		}
	}
	merger := NewMerger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		merger.Merge(spans)
	}
}
