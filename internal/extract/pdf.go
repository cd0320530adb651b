package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the plain text of a whole PDF document,
// whitespace collapsed to single spaces.
type PDFExtractor struct{}

func (PDFExtractor) Extract(data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents; surface
	// those as errors like any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf extraction panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return Truncate(CollapseWhitespace(buf.String())), nil
}
