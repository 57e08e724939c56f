package prd

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var listMarker = regexp.MustCompile(`^(?:[-*•]|\d+\.)\s+(.+)$`)

// minLooseItem is the length a line without a list marker must exceed to
// count as an item.
const minLooseItem = 3

type listItem struct {
	text   string
	marked bool // came from a bullet or numbered marker
}

// ListItems splits text into item strings, one per qualifying line, in line
// order. Bulleted and numbered lines yield their content; other lines longer
// than three characters that are not headings yield themselves.
func ListItems(text string) []string {
	items := listItems(text)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.text)
	}
	return out
}

func listItems(text string) []listItem {
	var items []listItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := listMarker.FindStringSubmatch(line); m != nil {
			items = append(items, listItem{text: strings.TrimSpace(m[1]), marked: true})
			continue
		}
		if line != "" && !strings.HasPrefix(line, "#") && utf8.RuneCountInString(line) > minLooseItem {
			items = append(items, listItem{text: line})
		}
	}
	return items
}
