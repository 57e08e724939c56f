package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading and Title styles become headings,
// list styles become bullets or numbered items, everything else is a
// paragraph.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (string, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "prdgest-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var w textWriter
	number := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		style := docxStyle(para)
		if level := styleHeadingLevel(style); level > 0 {
			w.heading(level, text)
			number = 0
			continue
		}
		switch styleListKind(style) {
		case listNumbered:
			number++
			w.numbered(number, text)
		case listBullet:
			w.bullet(text)
		default:
			number = 0
			w.paragraph(text)
		}
	}
	return w.String(), nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// normalizeStyle lowercases a style name and drops spaces, so "Heading 1"
// and "Heading1" compare equal.
func normalizeStyle(style string) string {
	return strings.ReplaceAll(strings.ToLower(style), " ", "")
}

func styleHeadingLevel(style string) int {
	s := normalizeStyle(style)
	if s == "title" {
		return 1
	}
	if len(s) == len("heading")+1 && strings.HasPrefix(s, "heading") {
		if d := s[len(s)-1]; d >= '1' && d <= '6' {
			return int(d - '0')
		}
	}
	return 0
}

type listKind int

const (
	listNone listKind = iota
	listBullet
	listNumbered
)

func styleListKind(style string) listKind {
	s := normalizeStyle(style)
	switch {
	case strings.HasPrefix(s, "listnumber"):
		return listNumbered
	case strings.HasPrefix(s, "list"):
		return listBullet
	}
	return listNone
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
