// Package extract turns an editor selection into a translation: the
// replacement code, the catalog entry and the edits that wire the
// translation hook into the component.
package extract

import (
	"fmt"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/highlight"
	"bennypowers.dev/vhls/internal/markup"
	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/internal/strutil"
)

// Options configures an extraction.
type Options struct {
	Dialect markup.Dialect
	// Callee is the translation function name; empty means "t".
	Callee string
	// MaxKeyLength truncates keys of plain strings; zero or less disables it.
	MaxKeyLength int
	CatalogDir   string
	CatalogFile  string
}

func (o Options) callee() string {
	if o.Callee == "" {
		return markup.DefaultCallee
	}
	return o.Callee
}

// Highlight is an analysed selection.
type Highlight struct {
	Kind      highlight.Kind
	Selection position.Range
	// Value is the selected text folded onto one line, without quotes for
	// kinds that carry them.
	Value string
	// Transform is set for kinds rewritten by the markup engine.
	Transform *markup.Result
}

// Analyse classifies sel and derives its value, running the markup or
// template transform where the kind needs one. Transform failures are
// returned unchanged so callers can match them with errors.Is.
func Analyse(src highlight.Source, sel position.Range, opts Options) (*Highlight, error) {
	c := highlight.Classify(src, sel)
	if c.Selection.IsEmpty() {
		return nil, fmt.Errorf("nothing selected at %s", c.Selection.Start)
	}

	h := &Highlight{
		Kind:      c.Kind,
		Selection: c.Selection,
		Value:     strutil.ConsolidateMultiLine(src.TextInRange(c.Selection)),
	}
	if c.Kind.StripsQuotes() {
		h.Value = strutil.StripQuotes(h.Value)
	}

	transformOpts := markup.Options{Dialect: opts.Dialect, Callee: opts.callee()}
	switch c.Kind {
	case highlight.ComplexJSX:
		result, err := markup.TransformMarkup(h.Value, transformOpts)
		if err != nil {
			return nil, err
		}
		h.Transform = &result
	case highlight.PropValueTemplateLiteral:
		result, err := markup.TransformTemplate(h.Value, transformOpts)
		if err != nil {
			return nil, err
		}
		h.Transform = &result
	}

	if h.Transform == nil && h.Value == "" {
		return nil, fmt.Errorf("selection %s holds no text to translate", c.Selection)
	}
	return h, nil
}

// Arguments returns the placeholder names written in JSX text.
func (h *Highlight) Arguments() []string {
	if h.Kind != highlight.JSXStringLiteral {
		return nil
	}
	return strutil.ArgumentsFromJSXText(h.Value)
}

// Key returns the catalog key. Keys of plain strings without arguments are
// truncated to maxLen.
func (h *Highlight) Key(maxLen int) string {
	if h.Transform != nil {
		return h.Transform.Key
	}
	key := h.Value
	if h.Kind == highlight.JSXStringLiteral {
		key = strutil.RemoveCurlyBrackets(key)
	}
	if len(h.Arguments()) == 0 {
		key = strutil.Truncate(key, maxLen)
	}
	return key
}

// Message returns the catalog message.
func (h *Highlight) Message() string {
	if h.Transform != nil {
		return h.Transform.Message
	}
	return h.Value
}

// CatalogEntry returns the key and entry to record in the catalog.
func (h *Highlight) CatalogEntry(maxLen int) (string, catalog.Entry) {
	return h.Key(maxLen), catalog.Entry{Message: h.Message()}
}

// Replacement returns the code replacing the selection. JSX text and
// attribute values are wrapped in an expression container.
func (h *Highlight) Replacement(callee string, maxLen int) string {
	if h.Transform != nil {
		return h.Transform.Code
	}
	if callee == "" {
		callee = markup.DefaultCallee
	}
	code := strutil.WrapTranslationCall(callee, strutil.QuoteKey(h.Key(maxLen)))
	if h.Kind.NeedsExpressionContainer() {
		code = strutil.WrapCurly(code)
	}
	return code
}
