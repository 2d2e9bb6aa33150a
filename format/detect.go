// Package format provides input format detection for the batch
// processor.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// SpanDump indicates a JSON span dump.
	SpanDump
	// HTML indicates an HTML document.
	HTML
	// Markdown indicates a Markdown document.
	Markdown
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case SpanDump:
		return "SpanDump"
	case HTML:
		return "HTML"
	case Markdown:
		return "Markdown"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case SpanDump:
		return ".json"
	case HTML:
		return ".html"
	case Markdown:
		return ".md"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return SpanDump
	case ".html", ".htm":
		return HTML
	case ".md", ".markdown":
		return Markdown
	default:
		return Unknown
	}
}

// DetectFromMagic sniffs content to determine format, for inputs whose
// extension is missing or misleading. Returns Unknown if the content is
// ambiguous.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	// Span dumps are JSON objects with a top-level "spans" key.
	if data[0] == '{' && bytes.Contains(data[:min(512, len(data))], []byte(`"spans"`)) {
		return SpanDump
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	if detectMarkdownMagic(data) {
		return Markdown
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

// detectMarkdownMagic checks for the two unambiguous Markdown openings:
// an ATX heading or a YAML frontmatter fence.
func detectMarkdownMagic(data []byte) bool {
	if bytes.HasPrefix(data, []byte("# ")) || bytes.HasPrefix(data, []byte("## ")) {
		return true
	}
	return bytes.HasPrefix(data, []byte("---\n")) || bytes.HasPrefix(data, []byte("---\r\n"))
}
