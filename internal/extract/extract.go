package extract

import (
	"strings"
)

// maxTextLength caps extracted text so it stays usable as prompt
// context.
const maxTextLength = 20000

// Extractor turns an uploaded document into plain text. An empty
// result means the document contained no extractable text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// CollapseWhitespace reduces every whitespace run, newlines included,
// to a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLines collapses whitespace within each line, drops lines
// that end up empty, joins the rest with newlines and truncates the
// result to maxTextLength characters.
func NormalizeLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		l = CollapseWhitespace(l)
		if l != "" {
			parts = append(parts, l)
		}
	}
	return Truncate(strings.Join(parts, "\n"))
}

// Truncate limits s to maxTextLength characters.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextLength {
		return string(r[:maxTextLength])
	}
	return s
}
