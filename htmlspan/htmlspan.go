// Package htmlspan decodes HTML documents into text spans. HTML carries
// no page geometry, so block elements are laid onto synthetic pages: a
// heading tag sets the font size for its level, paragraphs and list
// items use body size, and <hr> forces a page break. The resulting
// spans feed the same inference pipeline as spans measured from real
// page renderers.
package htmlspan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/titulus/internal/typeset"
	"github.com/tsawler/titulus/span"
)

// Open parses an HTML file and returns its spans as a source.
func Open(filename string) (span.Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("htmlspan: %w", err)
	}
	defer f.Close()

	spans, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("htmlspan: %s: %w", filename, err)
	}
	return span.NewSliceSource(spans), nil
}

// OpenReader parses HTML from an io.Reader and returns its spans as a
// source.
func OpenReader(r io.Reader) (span.Source, error) {
	spans, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("htmlspan: %w", err)
	}
	return span.NewSliceSource(spans), nil
}

func decode(r io.Reader) ([]span.TextSpan, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		// No body tag, extract from the root instead.
		body = doc
	}

	cursor := typeset.NewCursor()
	walk(body, cursor)
	return cursor.Spans(), nil
}

// walk recursively places block-level elements on the cursor. Heading
// and paragraph elements are placed whole; container elements are
// descended into.
func walk(n *html.Node, cursor *typeset.Cursor) {
	if n.Type == html.ElementNode {
		// Skip non-content elements
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			cursor.Place(getTextContent(n), typeset.HeadingStyle(level))
			return

		case "p", "blockquote", "pre", "figcaption", "caption", "dt", "dd":
			cursor.Place(getTextContent(n), typeset.BodyStyle())
			return

		case "div":
			// A div wrapping other blocks is a container; a leaf div is
			// a paragraph in disguise.
			if isBlockContainer(n) {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, cursor)
				}
				return
			}
			cursor.Place(getTextContent(n), typeset.BodyStyle())
			return

		case "li":
			// Place direct text, then descend only into nested lists so
			// sub-items land on their own lines.
			cursor.Place(getDirectTextContent(n), typeset.BodyStyle())
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
					walk(c, cursor)
				}
			}
			return

		case "td", "th":
			cursor.Place(getTextContent(n), typeset.BodyStyle())
			return

		case "hr":
			cursor.PageBreak()
			return

		case "br":
			return
		}
	}

	// Default: traverse children
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, cursor)
	}
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	// Separate block elements so their texts do not run together.
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			result.WriteString(" ")
		}
	}
}

// getDirectTextContent gets text content from a node, excluding nested block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			result.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
				// Block elements get their own placements.
			default:
				result.WriteString(getTextContent(c))
			}
		}
	}
	return strings.TrimSpace(result.String())
}
