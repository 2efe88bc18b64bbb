// Package strutil holds the string helpers shared by the selection classifier,
// the markup transform and the code generator.
package strutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	singleQuote = "'"
	doubleQuote = `"`
	backtick    = "`"

	// Ellipsis is appended to truncated translation keys.
	Ellipsis = "..."

	// TransformWrapper is the synthetic root element used to make a mixed
	// text/element sequence parse as a single tree.
	TransformWrapper = "VocabTransform"
)

var (
	wrapperOpen  = "<" + TransformWrapper + ">"
	wrapperClose = "</" + TransformWrapper + ">"
)

// IsSingleQuoted reports whether s starts and ends with a single quote.
func IsSingleQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, singleQuote) && strings.HasSuffix(s, singleQuote)
}

// IsDoubleQuoted reports whether s starts and ends with a double quote.
func IsDoubleQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, doubleQuote) && strings.HasSuffix(s, doubleQuote)
}

// IsQuoted reports whether s is single or double quoted.
func IsQuoted(s string) bool {
	return IsSingleQuoted(s) || IsDoubleQuoted(s)
}

// IsTemplateLiteral reports whether s starts with a back-tick.
func IsTemplateLiteral(s string) bool {
	return strings.HasPrefix(s, backtick)
}

// ContainsExpression reports whether s has both an opening and a closing
// curly bracket, i.e. it probably embeds a JSX expression.
func ContainsExpression(s string) bool {
	return strings.Contains(s, "{") && strings.Contains(s, "}")
}

// ContainsMarkup reports whether s has both an opening and a closing angle bracket.
func ContainsMarkup(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// StripFirstLast removes the first and last characters of s.
// Strings shorter than two characters are returned unchanged.
func StripFirstLast(s string) string {
	if len(s) < 2 {
		return s
	}
	_, first := utf8.DecodeRuneInString(s)
	_, last := utf8.DecodeLastRuneInString(s)
	if first+last > len(s) {
		return s
	}
	return s[first : len(s)-last]
}

// StripQuotes removes surrounding quotes from s, if any.
func StripQuotes(s string) string {
	if IsQuoted(s) {
		return StripFirstLast(s)
	}
	return s
}

// Capitalise upper-cases the first rune of s.
func Capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// WrapDoubleQuotes returns s between double quotes, without escaping.
func WrapDoubleQuotes(s string) string {
	return doubleQuote + s + doubleQuote
}

// WrapCurly returns s between curly brackets.
func WrapCurly(s string) string {
	return "{" + s + "}"
}

// WrapTranslationCall returns the call of fn with the already-rendered argument list.
func WrapTranslationCall(fn, args string) string {
	return fn + "(" + args + ")"
}

// QuoteKey renders s as a double-quoted JS string literal. Only escapes that
// JavaScript reads the same way are emitted: backslash, double quote, \n, \r
// and \t, with \uXXXX for other control characters and the line and
// paragraph separators. Invalid UTF-8 becomes U+FFFD.
func QuoteKey(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteString(doubleQuote)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteString(doubleQuote)
	return b.String()
}

// RemoveCurlyBrackets deletes every curly bracket from s.
func RemoveCurlyBrackets(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// ArgumentsFromJSXText returns the names written between curly brackets in s,
// in order of appearance.
func ArgumentsFromJSXText(s string) []string {
	var (
		args    []string
		current strings.Builder
		inside  bool
	)
	for _, r := range s {
		switch {
		case r == '{':
			inside = true
		case r == '}':
			inside = false
			args = append(args, current.String())
			current.Reset()
		case inside:
			current.WriteRune(r)
		}
	}
	return args
}

// IsIdentifier reports whether s can be used as a bare JS property name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '$' || r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// WrapWithTransformWrapper surrounds s with the synthetic root element.
func WrapWithTransformWrapper(s string) string {
	return wrapperOpen + s + wrapperClose
}

// RemoveTransformWrapper strips the synthetic root element's tags from s.
func RemoveTransformWrapper(s string) string {
	s = strings.TrimPrefix(s, wrapperOpen)
	return strings.TrimSuffix(s, wrapperClose)
}

// TrimTrailingSemicolon drops one trailing statement terminator.
func TrimTrailingSemicolon(s string) string {
	return strings.TrimSuffix(s, ";")
}
