// Package spanio reads and writes the span-dump interchange format: a
// JSON document carrying the positioned text spans of one source
// document, one object per span.
//
// The format is the flat dump most page decoders can emit without
// knowing anything about titles or outlines:
//
//	{
//	  "spans": [
//	    {
//	      "text": "1. Introduction",
//	      "size": 14,
//	      "bold": true,
//	      "italic": false,
//	      "font": "Helvetica-Bold",
//	      "page": 1,
//	      "bbox": [72, 150, 177, 164]
//	    }
//	  ]
//	}
//
// bbox is the (x0, y0, x1, y1) corner quadruple of the span. Spans may
// appear in any order; [Open] serves them back one page at a time in
// ascending page order. A span whose style flags are absent still gets
// bold and italic inferred from its font name.
package spanio

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
)

// spanRecord is the wire form of one span.
type spanRecord struct {
	Text   string     `json:"text"`
	Size   float64    `json:"size"`
	Bold   bool       `json:"bold"`
	Italic bool       `json:"italic"`
	Font   string     `json:"font"`
	Page   int        `json:"page"`
	BBox   [4]float64 `json:"bbox"`
}

// document is the wire form of a span dump.
type document struct {
	Spans []spanRecord `json:"spans"`
}

// Decode parses a span dump and returns its spans in file order. Style
// flags are ORed with what the font name implies, so dumps that only
// carry font names still get bold detection.
func Decode(data []byte) ([]span.TextSpan, error) {
	spans, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("spanio: %w", err)
	}
	return spans, nil
}

func decode(data []byte) ([]span.TextSpan, error) {
	var doc document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding span dump: %w", err)
	}

	spans := make([]span.TextSpan, 0, len(doc.Spans))
	for _, rec := range doc.Spans {
		spans = append(spans, span.TextSpan{
			Text:     rec.Text,
			FontSize: rec.Size,
			Bold:     rec.Bold || span.BoldFontName(rec.Font),
			Italic:   rec.Italic || span.ItalicFontName(rec.Font),
			FontName: rec.Font,
			Page:     rec.Page,
			BBox:     model.FromCorners(rec.BBox[0], rec.BBox[1], rec.BBox[2], rec.BBox[3]),
		})
	}
	return spans, nil
}

// Open reads a span-dump file and returns a source serving its spans
// one page at a time, in ascending page order.
func Open(path string) (span.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spanio: %w", err)
	}
	spans, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("spanio: %s: %w", path, err)
	}
	return span.NewSliceSource(spans), nil
}
