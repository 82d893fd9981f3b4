package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// emptyCell stands in for blank fields. Without it the cell, or a row of blank
// cells, would be elided and later columns and rows would shift.
const emptyCell = "&nbsp;"

// CSVParser handles CSV files. Every record, the header included, becomes a
// table row, so row n of the table is record n of the file.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	w := newLineWriter()
	if len(records) == 0 {
		return w.Lines(), nil
	}

	w.Open("table")
	for _, row := range records {
		w.Open("tr")
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				w.Open("td")
				w.Raw(emptyCell)
				w.Close("td")
				continue
			}
			w.Block("td", cell)
		}
		w.Close("tr")
	}
	w.Close("table")

	return w.Lines(), nil
}
