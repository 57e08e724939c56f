package parser

import (
	"strconv"
	"strings"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockHeading
	blockParagraph
	blockItem
	blockListEnd
)

// textWriter accumulates blocks in the PRD text dialect. Consecutive list
// items stay on adjacent lines; every other block is separated by a blank
// line.
type textWriter struct {
	b    strings.Builder
	last blockKind
}

func (w *textWriter) start(kind blockKind) {
	if w.last != blockNone {
		if kind == blockItem && w.last == blockItem {
			w.b.WriteByte('\n')
		} else {
			w.b.WriteString("\n\n")
		}
	}
	w.last = kind
}

// endList separates the next list item from the previous list.
func (w *textWriter) endList() {
	if w.last == blockItem {
		w.last = blockListEnd
	}
}

func (w *textWriter) heading(level int, text string) {
	text = collapseSpace(text)
	if text == "" {
		return
	}
	level = min(max(level, 1), 6)
	w.start(blockHeading)
	w.b.WriteString(strings.Repeat("#", level))
	w.b.WriteByte(' ')
	w.b.WriteString(text)
}

func (w *textWriter) bullet(text string) {
	text = collapseSpace(text)
	if text == "" {
		return
	}
	w.start(blockItem)
	w.b.WriteString("- ")
	w.b.WriteString(text)
}

func (w *textWriter) numbered(n int, text string) {
	text = collapseSpace(text)
	if text == "" {
		return
	}
	w.start(blockItem)
	w.b.WriteString(strconv.Itoa(n))
	w.b.WriteString(". ")
	w.b.WriteString(text)
}

// paragraph keeps line breaks but trims each line and drops blank ones.
func (w *textWriter) paragraph(text string) {
	var lines []string
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return
	}
	w.start(blockParagraph)
	w.b.WriteString(strings.Join(lines, "\n"))
}

func (w *textWriter) String() string {
	if w.b.Len() == 0 {
		return ""
	}
	return w.b.String() + "\n"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeNewlines strips a UTF-8 BOM and converts CRLF and CR to LF.
func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
