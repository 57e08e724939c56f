package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. The AST is rendered
// back in the PRD dialect: setext headings become ATX, any bullet marker
// becomes "-", nested lists are flattened, and code blocks, HTML blocks and
// thematic breaks are dropped.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	src = []byte(normalizeNewlines(string(src)))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var w textWriter
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		renderBlock(&w, n, src)
	}
	return w.String(), nil
}

func renderBlock(w *textWriter, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		w.heading(node.Level, inlineText(node, src))
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(inlineText(node, src))
	case *ast.List:
		renderList(w, node, src)
		w.endList()
	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			renderBlock(w, c, src)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
		// Not part of the requirements text.
	default:
		w.paragraph(inlineText(node, src))
	}
}

// renderList writes one item per list item. Text blocks inside an item are
// joined into the item; nested lists follow as their own items.
func renderList(w *textWriter, list *ast.List, src []byte) {
	i := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []ast.Node
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.List:
				nested = append(nested, c)
			case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
				if t := inlineText(c, src); t != "" {
					parts = append(parts, t)
				}
			}
		}
		itemText := strings.Join(parts, " ")
		if list.IsOrdered() {
			w.numbered(list.Start+i, itemText)
		} else {
			w.bullet(itemText)
		}
		for _, sub := range nested {
			renderList(w, sub.(*ast.List), src)
		}
		i++
	}
}

// inlineText gets the text content of a goldmark node, keeping soft and
// hard line breaks as newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeInline(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeInline(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
			// Dropped.
		default:
			writeInline(buf, c, src)
		}
	}
}
