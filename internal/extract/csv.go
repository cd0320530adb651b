package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// maxCSVRows caps the number of data rows rendered after the header.
const maxCSVRows = 200

// CSVExtractor renders a CSV upload as a header line followed by
// numbered data rows.
type CSVExtractor struct{}

func (CSVExtractor) Extract(data []byte) (string, error) {
	// Lossy decode: invalid bytes become the replacement rune.
	text := strings.ToValidUTF8(string(data), string(utf8.RuneError))

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []string
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse csv: %w", err)
		}

		if i == 0 {
			lines = append(lines, "Header: "+strings.Join(record, ", "))
		} else {
			lines = append(lines, fmt.Sprintf("Row %d: %s", i, strings.Join(record, ", ")))
		}
		if i >= maxCSVRows {
			break
		}
	}

	return NormalizeLines(lines), nil
}
