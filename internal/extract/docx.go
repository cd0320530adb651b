package extract

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// DocxExtractor extracts paragraph text in document order, then table
// rows rendered as pipe-joined cell text.
type DocxExtractor struct{}

func (DocxExtractor) Extract(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(it.String()); text != "" {
				parts = append(parts, text)
			}
		case *docx.Table:
			for _, row := range it.TableRows {
				if line := renderRow(row); line != "" {
					parts = append(parts, line)
				}
			}
		}
	}

	return NormalizeLines(parts), nil
}

// renderRow joins a table row's non-empty cells with " | ".
func renderRow(row *docx.WTableRow) string {
	var cells []string
	for _, cell := range row.TableCells {
		var cellParts []string
		for _, p := range cell.Paragraphs {
			if t := strings.TrimSpace(p.String()); t != "" {
				cellParts = append(cellParts, t)
			}
		}
		if joined := strings.Join(cellParts, " "); joined != "" {
			cells = append(cells, joined)
		}
	}
	return strings.Join(cells, " | ")
}
