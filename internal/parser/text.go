package parser

import (
	"fmt"
	"io"
)

// TextParser handles plain text files. The text is already in the PRD
// dialect, so only line endings are normalized.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return normalizeNewlines(string(data)), nil
}
