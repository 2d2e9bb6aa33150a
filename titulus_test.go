package titulus

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

// makeSpan builds a span at the left margin with a width proportional
// to its text length.
func makeSpan(text string, size float64, bold bool, page int, y float64) span.TextSpan {
	return makeSpanAt(text, size, bold, page, 72, y)
}

// makeSpanAt builds a span at an explicit horizontal position.
func makeSpanAt(text string, size float64, bold bool, page int, x, y float64) span.TextSpan {
	return span.TextSpan{
		Text:     text,
		FontSize: size,
		Bold:     bold,
		Page:     page,
		BBox:     model.NewBBox(x, y, 0.5*size*float64(len(text)), size),
	}
}

// reportSpans is a small two-page document with a prominent first-page
// title, three numbered headings, and body sentences.
func reportSpans() []span.TextSpan {
	return []span.TextSpan{
		makeSpan("Annual Report 2023", 24, true, 1, 72),
		makeSpan("1. Introduction", 14, true, 1, 150),
		makeSpan("The company grew steadily, expanded hiring, and opened two offices.", 11, false, 1, 200),
		makeSpan("2. Financial Results", 14, true, 1, 320),
		makeSpan("Revenue rose in services, software, and hardware markets.", 11, false, 1, 380),
		makeSpan("3. Outlook", 14, true, 2, 100),
		makeSpan("We expect moderate growth, new hires, and wider margins.", 11, false, 2, 160),
	}
}

func TestResultTitleAndOutline(t *testing.T) {
	result, err := FromSpans(reportSpans()).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if result.Title != "Annual Report 2023  " {
		t.Errorf("Title = %q, want %q", result.Title, "Annual Report 2023  ")
	}

	want := []model.Heading{
		{Level: model.H1, Text: "1. Introduction", Page: 1},
		{Level: model.H1, Text: "2. Financial Results", Page: 1},
		{Level: model.H1, Text: "3. Outlook", Page: 2},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestTitleLineExcludedFromOutline(t *testing.T) {
	result, err := FromSpans(reportSpans()).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	for _, h := range result.Outline {
		if strings.Contains(h.Text, "Annual Report") {
			t.Errorf("outline contains the title line: %+v", h)
		}
	}
}

func TestBodySentencesExcludedFromOutline(t *testing.T) {
	outline, err := FromSpans(reportSpans()).Outline()
	if err != nil {
		t.Fatalf("Outline returned error: %v", err)
	}

	for _, h := range outline {
		if strings.Contains(h.Text, ",") {
			t.Errorf("outline contains a body sentence: %+v", h)
		}
	}
}

// TestSingleWordHeadingWhitelist pins the asymmetry between whitelisted
// and arbitrary single-word headings: "References" survives both the
// boilerplate check and the single-word rule, while an equally
// prominent "Overview2" is dropped.
func TestSingleWordHeadingWhitelist(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("Field Notes Compendium", 22, true, 1, 72),
		makeSpan("References", 16, true, 1, 200),
		makeSpan("Smith, J. (2019). Field methods in north meadows.", 10, false, 1, 240),
		makeSpan("Overview2", 16, true, 1, 320),
		makeSpan("Crews mapped the terrain, sampled soils, and logged data.", 10, false, 1, 360),
	}

	result, err := FromSpans(spans).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if result.Title != "Field Notes Compendium  " {
		t.Errorf("Title = %q, want %q", result.Title, "Field Notes Compendium  ")
	}
	want := []model.Heading{
		{Level: model.H1, Text: "References", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

// TestSpanMergeTolerance feeds spans whose top edges differ by half a
// point, which must merge into one heading, next to headings four
// points apart, which must stay separate.
func TestSpanMergeTolerance(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("Machine Shop Handbook", 22, true, 1, 40),
		makeSpanAt("Safety", 16, true, 1, 72, 160),
		makeSpanAt("Procedures Overview", 16, true, 1, 140, 160.5),
		makeSpan("1. Bench Rules", 16, true, 1, 200),
		makeSpan("2. Bench Tools", 16, true, 1, 204),
		makeSpan("Wear eye protection near the lathe, grinder, and saw.", 10, false, 1, 500),
	}

	result, err := FromSpans(spans).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if result.Title != "Machine Shop Handbook  " {
		t.Errorf("Title = %q, want %q", result.Title, "Machine Shop Handbook  ")
	}
	want := []model.Heading{
		{Level: model.H1, Text: "Safety Procedures Overview", Page: 1},
		{Level: model.H1, Text: "1. Bench Rules", Page: 1},
		{Level: model.H1, Text: "2. Bench Tools", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestFormDocumentHasNoOutline(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("Application for Travel Concession Advance", 18, true, 1, 50),
		makeSpan("Name and designation of the applicant", 11, false, 1, 100),
		makeSpan("Date of entering service and block year availed", 11, false, 1, 150),
		makeSpan("Whether spouse is employed and entitled to concession", 11, false, 1, 201),
	}

	result, err := FromSpans(spans).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if result.Title != "Application for Travel Concession Advance  " {
		t.Errorf("Title = %q, want %q", result.Title, "Application for Travel Concession Advance  ")
	}
	if result.Outline == nil {
		t.Fatal("expected empty outline, got nil")
	}
	if len(result.Outline) != 0 {
		t.Errorf("Outline has %d entries, want 0: %+v", len(result.Outline), result.Outline)
	}
}

func TestFromSourceMatchesFromSpans(t *testing.T) {
	spans := reportSpans()

	fromSpans, err := FromSpans(spans).Result()
	if err != nil {
		t.Fatalf("FromSpans Result returned error: %v", err)
	}
	fromSource, err := FromSource(span.NewSliceSource(spans)).Result()
	if err != nil {
		t.Fatalf("FromSource Result returned error: %v", err)
	}

	if !reflect.DeepEqual(fromSpans, fromSource) {
		t.Errorf("FromSource result = %+v, want %+v", fromSource, fromSpans)
	}
}

// failingSource simulates a decoder error partway through a document.
type failingSource struct{}

func (failingSource) NextPage() ([]span.TextSpan, error) {
	return nil, errors.New("decode failed")
}

func TestFromSourceDecodeError(t *testing.T) {
	doc := FromSource(failingSource{})

	if _, err := doc.Result(); err == nil || err.Error() != "decode failed" {
		t.Errorf("Result error = %v, want decode failed", err)
	}
	if _, err := doc.Title(); err == nil {
		t.Error("expected Title to propagate the source error")
	}
	if _, err := doc.Outline(); err == nil {
		t.Error("expected Outline to propagate the source error")
	}
}

func TestNoUsableSpans(t *testing.T) {
	cases := []struct {
		name  string
		spans []span.TextSpan
	}{
		{"nil slice", nil},
		{"empty slice", []span.TextSpan{}},
		{"blank text", []span.TextSpan{makeSpan("   ", 12, false, 1, 100)}},
		{"zero font size", []span.TextSpan{makeSpan("Heading", 0, false, 1, 100)}},
		{"zero page", []span.TextSpan{makeSpan("Heading", 12, false, 0, 100)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromSpans(tc.spans).Result()
			if !errors.Is(err, ErrNoSpans) {
				t.Errorf("Result error = %v, want ErrNoSpans", err)
			}
		})
	}
}

func TestWithConfigHeadingCap(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("Machine Shop Handbook", 22, true, 1, 40),
		makeSpanAt("Safety", 16, true, 1, 72, 160),
		makeSpanAt("Procedures Overview", 16, true, 1, 140, 160.5),
		makeSpan("1. Bench Rules", 16, true, 1, 200),
		makeSpan("2. Bench Tools", 16, true, 1, 204),
	}

	cfg := DefaultConfig()
	cfg.Outline.MaxHeadings = 2
	outline, err := FromSpans(spans).WithConfig(cfg).Outline()
	if err != nil {
		t.Fatalf("Outline returned error: %v", err)
	}

	want := []model.Heading{
		{Level: model.H1, Text: "Safety Procedures Overview", Page: 1},
		{Level: model.H1, Text: "1. Bench Rules", Page: 1},
	}
	if !reflect.DeepEqual(outline, want) {
		t.Errorf("Outline = %+v, want %+v", outline, want)
	}
}

func TestChainImmutability(t *testing.T) {
	doc := FromSpans(reportSpans())

	cfg := DefaultConfig()
	cfg.Outline.MaxHeadings = 1
	capped := doc.WithConfig(cfg)

	original, err := doc.Outline()
	if err != nil {
		t.Fatalf("Outline returned error: %v", err)
	}
	if len(original) != 3 {
		t.Errorf("original chain outline has %d entries, want 3", len(original))
	}

	short, err := capped.Outline()
	if err != nil {
		t.Fatalf("Outline returned error: %v", err)
	}
	if len(short) != 1 {
		t.Errorf("configured chain outline has %d entries, want 1", len(short))
	}
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	spans := reportSpans()

	def, err := FromSpans(spans).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}
	zero, err := FromSpans(spans).WithConfig(Config{}).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if !reflect.DeepEqual(def, zero) {
		t.Errorf("zero config result = %+v, want %+v", zero, def)
	}
}

func TestResultDoesNotMutateInput(t *testing.T) {
	spans := reportSpans()
	original := make([]span.TextSpan, len(spans))
	copy(original, spans)

	if _, err := FromSpans(spans).Result(); err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if !reflect.DeepEqual(spans, original) {
		t.Error("Result modified the input span slice")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
