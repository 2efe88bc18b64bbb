package highlight

import (
	"fmt"

	"bennypowers.dev/vhls/internal/collections"
)

// Kind is the classification of a selection.
type Kind int

const (
	// StringLiteral is a quoted string in code, e.g. const a = "Hello".
	StringLiteral Kind = iota
	// JSXStringLiteral is bare text between tags.
	JSXStringLiteral
	// PropValueStringLiteral is a quoted attribute value, e.g. label="Hello".
	PropValueStringLiteral
	// PropValueTemplateLiteral is a template string, usually an attribute value.
	PropValueTemplateLiteral
	// ComplexJSX is text mixing elements or expressions.
	ComplexJSX
)

var kindNames = map[Kind]string{
	StringLiteral:            "stringLiteral",
	JSXStringLiteral:         "jsxStringLiteral",
	PropValueStringLiteral:   "propValueStringLiteral",
	PropValueTemplateLiteral: "propValueTemplateLiteral",
	ComplexJSX:               "complexJsx",
}

var (
	transformKinds  = collections.NewSet(ComplexJSX, PropValueTemplateLiteral)
	quoteStripKinds = collections.NewSet(StringLiteral, PropValueStringLiteral)
	expressionKinds = collections.NewSet(JSXStringLiteral, PropValueStringLiteral)
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown selection kind %q", text)
}

// NeedsTransform reports whether the selection must go through the markup
// transform rather than being wrapped as a literal.
func (k Kind) NeedsTransform() bool {
	return transformKinds.Has(k)
}

// StripsQuotes reports whether the selected text carries quotes that are not
// part of the message.
func (k Kind) StripsQuotes() bool {
	return quoteStripKinds.Has(k)
}

// NeedsExpressionContainer reports whether a replacement call must be wrapped
// in curly brackets because it sits in JSX text or an attribute.
func (k Kind) NeedsExpressionContainer() bool {
	return expressionKinds.Has(k)
}
