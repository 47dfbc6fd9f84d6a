// Package strings holds small text normalization helpers.
package strings

import "strings"

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// NormalizeLowerTrimSpace trims surrounding whitespace and lowercases the input.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// TidyPunctuation collapses whitespace and removes any space left directly
// before one of . , ! ? ; :
func TidyPunctuation(value string) string {
	value = NormalizeWhitespace(value)
	if value == "" {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == ' ' && i+1 < len(value) && isClosingPunctuation(value[i+1]) {
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

func isClosingPunctuation(c byte) bool {
	switch c {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

// ContainsFold reports whether substr is within value, ignoring case.
func ContainsFold(value, substr string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

// NormalizeNewlines converts CRLF and CR line endings to LF.
func NormalizeNewlines(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// TrimTrailingNewlines removes trailing line breaks.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}
