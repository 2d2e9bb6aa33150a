// Package markspan decodes Markdown documents into text spans. Like
// HTML, Markdown has no page geometry, so blocks are laid onto
// synthetic pages: ATX and setext headings set the font size for their
// level, paragraphs and list items use body size, and a thematic break
// forces a page break. A leading YAML frontmatter block is metadata,
// not content, and is stripped before parsing.
package markspan

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/titulus/internal/typeset"
	"github.com/tsawler/titulus/span"
)

// Open reads a Markdown file and returns its spans as a source.
func Open(filename string) (span.Source, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("markspan: %w", err)
	}
	return FromBytes(content), nil
}

// FromBytes decodes Markdown source into a span source. Every byte
// sequence is valid Markdown, so there is no error to return.
func FromBytes(content []byte) span.Source {
	content = stripFrontmatter(content)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	cursor := typeset.NewCursor()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			cursor.Place(extractText(node, content), typeset.HeadingStyle(node.Level))
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			cursor.Place(blockText(node, content), typeset.BodyStyle())
			return ast.WalkSkipChildren, nil

		case *ast.TextBlock:
			// Tight list items carry their text in a TextBlock rather
			// than a Paragraph.
			cursor.Place(blockText(node, content), typeset.BodyStyle())
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			cursor.Place(segmentsText(node.Lines(), content), typeset.BodyStyle())
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			cursor.Place(segmentsText(node.Lines(), content), typeset.BodyStyle())
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			cursor.PageBreak()
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock:
			// Raw HTML inside Markdown carries markup, not prose.
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return span.NewSliceSource(cursor.Spans())
}

// extractText extracts text content from an AST node's children.
func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		buf.Write(child.Text(source))
	}
	return strings.TrimSpace(buf.String())
}

// blockText collects the text of a block's leaf nodes, keeping the
// line structure of soft-wrapped paragraphs.
func blockText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := n.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				buf.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// segmentsText joins the raw source lines of a code block.
func segmentsText(lines *text.Segments, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

// stripFrontmatter removes a leading YAML frontmatter block. A block
// that does not parse as YAML is kept: it is content, not metadata.
func stripFrontmatter(content []byte) []byte {
	var opener []byte
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		opener = []byte("---\n")
	case bytes.HasPrefix(content, []byte("---\r\n")):
		opener = []byte("---\r\n")
	default:
		return content
	}

	rest := content[len(opener):]
	end := bytes.Index(rest, []byte("\n---\n"))
	closerLen := len("\n---\n")
	if end == -1 {
		end = bytes.Index(rest, []byte("\n---\r\n"))
		closerLen = len("\n---\r\n")
		if end == -1 {
			return content
		}
	}

	var meta map[string]any
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return content
	}
	return rest[end+closerLen:]
}
