package prd

import (
	"regexp"
	"strings"
)

// Section boundaries. A heading section ends at the next 1-3 level heading;
// a plain-label section ends at the next line that looks like a label.
var (
	headingBoundary = regexp.MustCompile(`\n#{1,3}\s`)
	labelBoundary   = regexp.MustCompile(`\n[A-Z][a-zA-Z\s]+[:\n]`)
)

// section locates the body of one logical section. The label is a regular
// expression matched case-insensitively.
type section struct {
	heading *regexp.Regexp
	plain   *regexp.Regexp
}

func newSection(label string) *section {
	return &section{
		heading: regexp.MustCompile(`(?:^|\n)#{1,3}\s*(?i:` + label + `)[:\s]*\n`),
		plain:   regexp.MustCompile(`(?:^|\n)(?i:` + label + `)[:\s]*\n`),
	}
}

// Extract returns the trimmed body of the section, or "" when the document
// has no such section. The heading form is tried first; whichever form
// matches first wins, even if its body is empty.
func (s *section) Extract(doc string) string {
	if body, ok := capture(doc, s.heading, headingBoundary); ok {
		return body
	}
	if body, ok := capture(doc, s.plain, labelBoundary); ok {
		return body
	}
	return ""
}

// capture finds the first header match and returns the text between it and
// the first boundary after it. The first body line is never a boundary.
func capture(doc string, header, boundary *regexp.Regexp) (string, bool) {
	loc := header.FindStringIndex(doc)
	if loc == nil {
		return "", false
	}
	rest := doc[loc[1]:]
	end := len(rest)
	if b := boundary.FindStringIndex(rest); b != nil {
		end = b[0]
	}
	return strings.TrimSpace(rest[:end]), true
}
