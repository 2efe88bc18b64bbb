package strutil

import (
	"strings"
	"unicode/utf8"
)

// spaceMarkers are the explicit whitespace expressions JSX formatters emit
// at line ends.
var spaceMarkers = strings.NewReplacer(`{" "}`, " ", `{' '}`, " ")

// ConsolidateMultiLine folds a multi-line selection into one line the way JSX
// renders it: lines are trimmed, explicit space markers become spaces and
// line breaks collapse to a single space except around tags.
func ConsolidateMultiLine(s string) string {
	lines := strings.Split(s, "\n")

	var b strings.Builder
	previous := ""
	for i, line := range lines {
		current := spaceMarkers.Replace(strings.TrimSpace(line))

		joinWithoutSpace := i == 0 ||
			strings.HasPrefix(current, "<") ||
			strings.HasSuffix(previous, " ") ||
			strings.HasSuffix(previous, ">")
		if !joinWithoutSpace {
			b.WriteString(" ")
		}
		b.WriteString(current)

		// The join rule looks at the accumulated text, not just the last line
		previous = b.String()
	}
	return b.String()
}

// Truncate shortens s to at most maxLen runes followed by Ellipsis.
// The cut never leaves a trailing space before the marker. A maxLen of zero
// or less disables truncation.
//
// Any s that ends in Ellipsis and has at most maxLen+3 runes is treated as
// already truncated and returned unchanged, whether or not Truncate produced
// it. "abcdefgh..." with maxLen 9 stays "abcdefgh...". This keeps Truncate
// idempotent.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if strings.HasSuffix(s, Ellipsis) && utf8.RuneCountInString(s) <= maxLen+len(Ellipsis) {
		return s
	}

	runes := []rune(s)
	end := maxLen
	if runes[end-1] == ' ' {
		end--
	}
	cut := strings.TrimRight(string(runes[:end]), " ")
	return cut + Ellipsis
}
