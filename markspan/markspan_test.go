package markspan

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

func drainSource(t *testing.T, src span.Source) []span.TextSpan {
	t.Helper()
	var all []span.TextSpan
	for {
		page, err := src.NextPage()
		if err == io.EOF {
			return all
		}
		if err != nil {
			t.Fatalf("NextPage returned error: %v", err)
		}
		all = append(all, page...)
	}
}

func TestFromBytesPlacesBlocks(t *testing.T) {
	doc := "# Field Manual\n\nKeep tools clean.\n\n## Care\n\nOil the hinges.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 4 {
		t.Fatalf("Expected 4 spans, got %d: %+v", len(spans), spans)
	}

	wantText := []string{"Field Manual", "Keep tools clean.", "Care", "Oil the hinges."}
	wantSize := []float64{24, 11, 20, 11}
	wantBold := []bool{true, false, true, false}
	wantTop := []float64{72, 108, 124.5, 154.5}
	for i := range spans {
		if spans[i].Text != wantText[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, wantText[i])
		}
		if spans[i].FontSize != wantSize[i] {
			t.Errorf("span %d size = %v, want %v", i, spans[i].FontSize, wantSize[i])
		}
		if spans[i].Bold != wantBold[i] {
			t.Errorf("span %d bold = %v, want %v", i, spans[i].Bold, wantBold[i])
		}
		if spans[i].BBox.Top() != wantTop[i] {
			t.Errorf("span %d top = %v, want %v", i, spans[i].BBox.Top(), wantTop[i])
		}
	}
}

func TestSetextHeadings(t *testing.T) {
	doc := "Main Title\n==========\n\nSection Name\n------------\n\nBody prose.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Main Title" || spans[0].FontSize != 24 {
		t.Errorf("span 0 = %q at %v, want Main Title at 24", spans[0].Text, spans[0].FontSize)
	}
	if spans[1].Text != "Section Name" || spans[1].FontSize != 20 {
		t.Errorf("span 1 = %q at %v, want Section Name at 20", spans[1].Text, spans[1].FontSize)
	}
	if spans[2].Text != "Body prose." || spans[2].FontSize != 11 {
		t.Errorf("span 2 = %q at %v, want Body prose. at 11", spans[2].Text, spans[2].FontSize)
	}
}

func TestFrontmatterStripped(t *testing.T) {
	doc := "---\ntitle: Hidden Meta\nauthor: nobody\n---\n\n# Visible Heading\n\nBody prose here.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Visible Heading" {
		t.Errorf("span 0 text = %q, want %q", spans[0].Text, "Visible Heading")
	}
	for _, s := range spans {
		if strings.Contains(s.Text, "Hidden") || strings.Contains(s.Text, "nobody") {
			t.Errorf("frontmatter leaked into spans: %q", s.Text)
		}
	}
}

func TestMalformedFrontmatterKeptAsContent(t *testing.T) {
	doc := "---\n{{invalid yaml\n---\n\n# Later Heading\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	// The opening dashes become a thematic break and the failed block
	// reads as a setext heading, but nothing is silently dropped.
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "{{invalid yaml" {
		t.Errorf("span 0 text = %q, want %q", spans[0].Text, "{{invalid yaml")
	}
	if spans[1].Text != "Later Heading" || spans[1].FontSize != 24 {
		t.Errorf("span 1 = %q at %v, want Later Heading at 24", spans[1].Text, spans[1].FontSize)
	}
}

func TestSoftWrappedParagraphJoins(t *testing.T) {
	doc := "First line\nsecond line continues.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d: %+v", len(spans), spans)
	}
	want := "First line second line continues."
	if spans[0].Text != want {
		t.Errorf("span text = %q, want %q", spans[0].Text, want)
	}
}

func TestEmphasisInHeading(t *testing.T) {
	doc := "# Heading *with* flair\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Heading with flair" {
		t.Errorf("span text = %q, want %q", spans[0].Text, "Heading with flair")
	}
}

func TestListItemsPlaceSeparately(t *testing.T) {
	doc := "# Inventory\n\n- Rope, twenty meters\n- Lantern oil\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	want := []string{"Inventory", "Rope, twenty meters", "Lantern oil"}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
	}
	if spans[1].FontSize != 11 || spans[2].FontSize != 11 {
		t.Errorf("list item sizes = %v, %v, want 11, 11", spans[1].FontSize, spans[2].FontSize)
	}
}

func TestBlockquoteAsBody(t *testing.T) {
	doc := "> Quoted wisdom here.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Quoted wisdom here." || spans[0].FontSize != 11 {
		t.Errorf("span = %q at %v, want Quoted wisdom here. at 11", spans[0].Text, spans[0].FontSize)
	}
}

func TestThematicBreakStartsNewPage(t *testing.T) {
	doc := "Front cover blurb.\n\n---\n\n# Chapter One\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Page != 1 {
		t.Errorf("first span page = %d, want 1", spans[0].Page)
	}
	if spans[1].Page != 2 {
		t.Errorf("second span page = %d, want 2", spans[1].Page)
	}
	if spans[1].Text != "Chapter One" || spans[1].BBox.Top() != 72 {
		t.Errorf("second span = %q at top %v, want Chapter One at 72", spans[1].Text, spans[1].BBox.Top())
	}
}

func TestFencedCodeAsBody(t *testing.T) {
	doc := "# Tools\n\n```\nmake install\n```\n\nProse after code.\n"
	spans := drainSource(t, FromBytes([]byte(doc)))

	want := []string{"Tools", "make install", "Prose after code."}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
	}
	if spans[1].FontSize != 11 || spans[1].Bold {
		t.Errorf("code span = %v bold=%v, want 11 regular", spans[1].FontSize, spans[1].Bold)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	doc := "# Harbour Rules\n\nMoor only at assigned berths, fenders out, lines doubled.\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	spans := drainSource(t, src)

	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "Harbour Rules" || spans[0].FontSize != 24 {
		t.Errorf("first span = %q at %v, want Harbour Rules at 24", spans[0].Text, spans[0].FontSize)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "markspan") {
		t.Errorf("error = %q, want markspan prefix", err)
	}
}

func TestOutlineFromMarkdown(t *testing.T) {
	doc := "# Annual Report 2023\n\n" +
		"## 1. Introduction\n\n" +
		"The company grew steadily, expanded hiring, and opened two offices.\n\n" +
		"## 2. Financial Results\n\n" +
		"Revenue rose in services, software, and hardware markets.\n"

	result, err := titulus.FromSource(FromBytes([]byte(doc))).Result()
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	if result.Title != "Annual Report 2023  " {
		t.Errorf("Title = %q, want %q", result.Title, "Annual Report 2023  ")
	}
	want := []model.Heading{
		{Level: model.H1, Text: "1. Introduction", Page: 1},
		{Level: model.H1, Text: "2. Financial Results", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}
