// Package highlight decides what kind of literal an editor selection covers.
package highlight

import (
	"strings"

	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/internal/strutil"
)

// Source gives read access to the buffer a selection was made in.
type Source interface {
	TextInRange(r position.Range) string
	ValidatePosition(p position.Position) position.Position
}

// Classification is the kind of a selection and the range to operate on,
// which may be wider than the selection itself.
type Classification struct {
	Selection position.Range
	Kind      Kind
}

// Expand widens r by one character on each side, clamped to the buffer.
func Expand(src Source, r position.Range) position.Range {
	return position.Range{
		Start: src.ValidatePosition(position.Position{Line: r.Start.Line, Character: r.Start.Character - 1}),
		End:   src.ValidatePosition(position.Position{Line: r.End.Line, Character: r.End.Character + 1}),
	}
}

// Classify labels a selection. The first matching rule wins:
//
//  1. the text is a template string
//  2. the text widened by one character is a template string
//  3. the text contains tags or an expression
//  4. the character before the selection is "="
//  5. the text widened by two characters starts with "=": a prop value in
//     quotes, unless the widened text starts with a space (code assignment)
//  6. quoted text is a string literal, anything else is JSX text
//
// It never fails.
func Classify(src Source, sel position.Range) Classification {
	sel = sel.Normalize()
	text := src.TextInRange(sel)

	if strutil.IsTemplateLiteral(text) {
		return Classification{Selection: sel, Kind: PropValueTemplateLiteral}
	}

	expanded := Expand(src, sel)
	expandedText := src.TextInRange(expanded)

	if strutil.IsTemplateLiteral(expandedText) {
		return Classification{Selection: expanded, Kind: PropValueTemplateLiteral}
	}

	if strutil.ContainsMarkup(text) || strutil.ContainsExpression(text) {
		return Classification{Selection: sel, Kind: ComplexJSX}
	}

	if strings.HasPrefix(expandedText, "=") {
		return Classification{Selection: sel, Kind: PropValueStringLiteral}
	}

	doubleExpandedText := src.TextInRange(Expand(src, expanded))
	if strings.HasPrefix(doubleExpandedText, "=") {
		if strings.HasPrefix(expandedText, " ") {
			return Classification{Selection: sel, Kind: StringLiteral}
		}
		return Classification{Selection: expanded, Kind: PropValueStringLiteral}
	}

	switch {
	case strutil.IsQuoted(text):
		return Classification{Selection: sel, Kind: StringLiteral}
	case strutil.IsQuoted(expandedText):
		return Classification{Selection: expanded, Kind: StringLiteral}
	default:
		return Classification{Selection: sel, Kind: JSXStringLiteral}
	}
}
