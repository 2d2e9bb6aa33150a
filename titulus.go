// Package titulus infers a document title and a hierarchical outline
// (H1-H4 headings with page numbers) from positioned text spans.
//
// The library never reads document content semantically: every decision
// is driven by geometry and typography (font sizes, boldness, position
// on the page) plus a small amount of lexical pattern matching. Page
// decoders produce [span.TextSpan] values; titulus turns them into a
// [model.Result].
//
// Basic usage:
//
//	result, err := titulus.FromSpans(spans).Result()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Title)
//	for _, h := range result.Outline {
//	    fmt.Printf("%s %s (page %d)\n", h.Level, h.Text, h.Page)
//	}
//
// With a span source and custom configuration:
//
//	src, err := spanio.Open("document.json")
//	if err != nil {
//	    // handle error
//	}
//	cfg := titulus.DefaultConfig()
//	cfg.Outline.MaxHeadings = 20
//	outline, err := titulus.FromSource(src).WithConfig(cfg).Outline()
//
// For fine-grained control the lower-level layout and outline packages
// are also available.
package titulus

import (
	"errors"

	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/outline"
	"github.com/tsawler/titulus/span"
)

// ErrNoSpans is returned by terminal operations when the document
// contains no usable spans: every span is empty, has a non-positive
// font size, or sits on a non-positive page. Decode-level failures are
// reported by the span source instead.
var ErrNoSpans = errors.New("titulus: document contains no usable spans")

// Config aggregates the configuration of every pipeline stage. The
// zero value of any field falls back to that stage's defaults, so
// callers can set only what they need.
type Config struct {
	Merger   layout.MergerConfig
	Analyzer layout.AnalyzerConfig
	Outline  outline.ExtractorConfig
}

// DefaultConfig returns the default configuration for the full
// pipeline.
func DefaultConfig() Config {
	return Config{
		Merger:   layout.DefaultMergerConfig(),
		Analyzer: layout.DefaultAnalyzerConfig(),
		Outline:  outline.DefaultExtractorConfig(),
	}
}

// Document is a fluent handle over a decoded document's spans. Each
// configuration method returns a new Document instance, making it safe
// to fork a chain and allowing method chaining. Terminal operations
// ([Document.Result], [Document.Title], [Document.Outline]) may be
// called any number of times; the pipeline is pure and re-runnable.
type Document struct {
	spans  []span.TextSpan
	config Config

	// Accumulated error (fail-fast)
	err error
}

// FromSpans creates a Document over an in-memory span slice. The slice
// is not modified.
//
// Example:
//
//	result, err := titulus.FromSpans(spans).Result()
func FromSpans(spans []span.TextSpan) *Document {
	return &Document{
		spans:  spans,
		config: DefaultConfig(),
	}
}

// FromSource drains a span source and returns a Document over its
// spans. Decode errors from the source surface on the first terminal
// operation.
//
// Example:
//
//	src, err := spanio.Open("document.json")
//	if err != nil {
//	    // handle error
//	}
//	title, err := titulus.FromSource(src).Title()
func FromSource(src span.Source) *Document {
	spans, err := span.Collect(src)
	return &Document{
		spans:  spans,
		config: DefaultConfig(),
		err:    err,
	}
}

// WithConfig returns a new Document using cfg. Zero-valued fields in
// cfg fall back to stage defaults.
func (d *Document) WithConfig(cfg Config) *Document {
	return &Document{
		spans:  d.spans,
		config: cfg,
		err:    d.err,
	}
}

// Result runs the full pipeline and returns the inferred title and
// outline. It returns [ErrNoSpans] when no usable spans exist; a
// document whose spans merge into lines that never qualify as title or
// headings still succeeds, with [outline.UntitledTitle] and an empty
// outline.
func (d *Document) Result() (*model.Result, error) {
	if d.err != nil {
		return nil, d.err
	}
	usable := usableSpans(d.spans)
	if len(usable) == 0 {
		return nil, ErrNoSpans
	}

	lines := layout.NewMergerWithConfig(d.config.Merger).Merge(usable)
	structure := layout.NewAnalyzerWithConfig(d.config.Analyzer).Analyze(lines)
	result := outline.NewExtractorWithConfig(d.config.Outline).Extract(lines, structure)
	return result, nil
}

// Title runs the pipeline and returns just the inferred title.
func (d *Document) Title() (string, error) {
	result, err := d.Result()
	if err != nil {
		return "", err
	}
	return result.Title, nil
}

// Outline runs the pipeline and returns just the inferred outline.
func (d *Document) Outline() ([]model.Heading, error) {
	result, err := d.Result()
	if err != nil {
		return nil, err
	}
	return result.Outline, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := titulus.Must(titulus.FromSpans(spans).Result())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// usableSpans filters out spans that cannot participate in line
// merging.
func usableSpans(spans []span.TextSpan) []span.TextSpan {
	usable := make([]span.TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Usable() {
			usable = append(usable, s)
		}
	}
	return usable
}
