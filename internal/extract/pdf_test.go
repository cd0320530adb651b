package extract

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtract_Document(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.pdf")
	require.NoError(t, err)

	text, err := PDFExtractor{}.Extract(data)

	require.NoError(t, err)
	// Whitespace runs and line breaks collapse to single spaces.
	assert.Equal(t, "Hello world across lines", text)
}

func TestPDFExtract_Malformed(t *testing.T) {
	_, err := PDFExtractor{}.Extract([]byte("not a pdf"))

	assert.Error(t, err)
}

func TestPDFExtract_Empty(t *testing.T) {
	_, err := PDFExtractor{}.Extract(nil)

	assert.Error(t, err)
}
