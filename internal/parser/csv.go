package parser

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser handles CSV files. The first row names the sections; every
// non-empty cell below becomes a bullet under its column's heading, so a
// spreadsheet with a "Features" column reads as a Features section.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var w textWriter
	for col, header := range headers {
		w.heading(2, header)
		for _, row := range records[1:] {
			if col < len(row) {
				w.bullet(row[col])
			}
		}
	}
	return w.String(), nil
}
