package htmlspan

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

func TestOpenReaderPlacesBlocks(t *testing.T) {
	const page = `<!DOCTYPE html>
<html>
<head><title>Site Title</title><style>p { color: red; }</style></head>
<body>
<h1>Coastal Navigation Manual</h1>
<p>Plotting a course requires charts, dividers, and patience.</p>
<h2>1. Dead Reckoning</h2>
<p>Position is advanced from a fix, using speed, heading, and time.</p>
</body>
</html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	if len(spans) != 4 {
		t.Fatalf("Expected 4 spans, got %d: %+v", len(spans), spans)
	}

	wantText := []string{
		"Coastal Navigation Manual",
		"Plotting a course requires charts, dividers, and patience.",
		"1. Dead Reckoning",
		"Position is advanced from a fix, using speed, heading, and time.",
	}
	for i, want := range wantText {
		if spans[i].Text != want {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want)
		}
	}

	wantSize := []float64{24, 11, 20, 11}
	wantBold := []bool{true, false, true, false}
	wantTop := []float64{72, 108, 124.5, 154.5}
	for i := range spans {
		if spans[i].FontSize != wantSize[i] {
			t.Errorf("span %d size = %v, want %v", i, spans[i].FontSize, wantSize[i])
		}
		if spans[i].Bold != wantBold[i] {
			t.Errorf("span %d bold = %v, want %v", i, spans[i].Bold, wantBold[i])
		}
		if spans[i].BBox.Top() != wantTop[i] {
			t.Errorf("span %d top = %v, want %v", i, spans[i].BBox.Top(), wantTop[i])
		}
		if spans[i].Page != 1 {
			t.Errorf("span %d page = %d, want 1", i, spans[i].Page)
		}
	}

	for _, s := range spans {
		if strings.Contains(s.Text, "Site Title") || strings.Contains(s.Text, "color") {
			t.Errorf("head content leaked into spans: %q", s.Text)
		}
	}
}

func TestListItemsPlaceSeparately(t *testing.T) {
	const page = `<html><body>
<ul>
<li>Rope, twenty meters</li>
<li>Lanterns<ul><li>Spare wicks</li></ul></li>
</ul>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	want := []string{"Rope, twenty meters", "Lanterns", "Spare wicks"}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
		if spans[i].FontSize != 11 {
			t.Errorf("span %d size = %v, want 11", i, spans[i].FontSize)
		}
	}
}

func TestDivContainerVersusLeaf(t *testing.T) {
	const page = `<html><body>
<div><p>Inner paragraph text.</p></div>
<div>Leaf division text.</div>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	want := []string{"Inner paragraph text.", "Leaf division text."}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
	}
}

func TestHorizontalRuleBreaksPage(t *testing.T) {
	const page = `<html><body><p>Front matter text.</p><hr><p>Second page text.</p></body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].Page != 1 {
		t.Errorf("first span page = %d, want 1", spans[0].Page)
	}
	if spans[1].Page != 2 {
		t.Errorf("second span page = %d, want 2", spans[1].Page)
	}
	if spans[1].BBox.Top() != 72 {
		t.Errorf("second span top = %v, want 72", spans[1].BBox.Top())
	}
}

func TestLeadingHorizontalRuleIsNoop(t *testing.T) {
	const page = `<html><body><hr><p>Opening text.</p></body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Page != 1 {
		t.Errorf("span page = %d, want 1", spans[0].Page)
	}
}

func TestSkipsNonContentElements(t *testing.T) {
	const page = `<html><body>
<script>var tracker = 1;</script>
<noscript>Enable scripts.</noscript>
<svg><text>vector label</text></svg>
<p>Visible prose only.</p>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Visible prose only." {
		t.Errorf("span text = %q, want %q", spans[0].Text, "Visible prose only.")
	}
}

func TestInlineMarkupFlattens(t *testing.T) {
	const page = `<html><body>
<p>Mix of <strong>bold</strong> and <em>italic</em> runs.</p>
<p>Line<br>break</p>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	want := []string{"Mix of bold and italic runs.", "Line break"}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
	}
}

func TestTableCellsPlaceAsBody(t *testing.T) {
	const page = `<html><body>
<table>
<tr><th>Port</th><th>Depth</th></tr>
<tr><td>Harwich</td><td>Four meters</td></tr>
</table>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	spans := drainSource(t, src)

	want := []string{"Port", "Depth", "Harwich", "Four meters"}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i := range want {
		if spans[i].Text != want[i] {
			t.Errorf("span %d text = %q, want %q", i, spans[i].Text, want[i])
		}
		if spans[i].FontSize != 11 {
			t.Errorf("span %d size = %v, want 11", i, spans[i].FontSize)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	content := `<html><body><h1>Harbour Rules</h1><p>Moor only at assigned berths, fenders out, lines doubled.</p></body></html>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
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
	_, err := Open(filepath.Join(t.TempDir(), "absent.html"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "htmlspan") {
		t.Errorf("error = %q, want htmlspan prefix", err)
	}
}

func TestOutlineFromHTML(t *testing.T) {
	const page = `<html><body>
<h1>Annual Report 2023</h1>
<h2>1. Introduction</h2>
<p>The company grew steadily, expanded hiring, and opened two offices.</p>
<h2>2. Financial Results</h2>
<p>Revenue rose in services, software, and hardware markets.</p>
</body></html>`

	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}

	result, err := titulus.FromSource(src).Result()
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
