package evaluator

import (
	"strings"

	"github.com/jlauro/jsonspan/internal/scanner"
)

// StripSpace removes whitespace between JSON tokens while leaving
// string content untouched, so `{"a": " x "}` becomes `{"a":" x "}`.
// Callers use it to compare extraction results without being sensitive
// to the source document's formatting; extraction itself always emits
// the matched span verbatim. The quote mode must match the one the
// text was extracted under so string boundaries are recognized the
// same way.
func StripSpace(text string, mode scanner.QuoteMode) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			i++
		case '"', '\'':
			if c == '\'' && mode != scanner.AllowSingleQuotes {
				b.WriteByte(c)
				i++
				continue
			}
			end := stringEnd(text, i, c)
			b.WriteString(text[i:end])
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// stringEnd returns the offset just past the string literal opening at
// i, or the end of text when the literal is unterminated.
func stringEnd(text string, i int, delim byte) int {
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			j += 2
		case delim:
			return j + 1
		default:
			j++
		}
	}
	return len(text)
}
