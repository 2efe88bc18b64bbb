package markup

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Parser wraps a tree-sitter parser bound to one dialect.
type Parser struct {
	parser  *sitter.Parser
	dialect Dialect
}

var (
	jsLang  = sitter.NewLanguage(tree_sitter_javascript.Language())
	tsxLang = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// parserPools holds reusable parsers per dialect
var parserPools = map[Dialect]*sync.Pool{
	DialectJSX: newParserPool(DialectJSX, jsLang),
	DialectTSX: newParserPool(DialectTSX, tsxLang),
}

func newParserPool(dialect Dialect, lang *sitter.Language) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			parser := sitter.NewParser()
			if err := parser.SetLanguage(lang); err != nil {
				panic(fmt.Sprintf("failed to set %s language: %v", dialect, err))
			}
			return &Parser{parser: parser, dialect: dialect}
		},
	}
}

func poolFor(dialect Dialect) *sync.Pool {
	if pool, ok := parserPools[dialect]; ok {
		return pool
	}
	return parserPools[DialectJSX]
}

// AcquireParser gets a parser for dialect from the pool
func AcquireParser(dialect Dialect) *Parser {
	p := poolFor(dialect).Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		poolFor(p.dialect).Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all pooled parsers
func ClosePool() {
	for _, pool := range parserPools {
		for range 100 {
			if p, ok := pool.Get().(*Parser); ok && p != nil {
				p.Close()
			}
		}
	}
}

// ParseFragment parses src as a single markup element spanning the whole
// input, such as "<VocabTransform>Hello <b>you</b></VocabTransform>".
func ParseFragment(dialect Dialect, src string) (*Element, error) {
	p := AcquireParser(dialect)
	defer ReleaseParser(p)

	source := []byte(src)
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Source: src, Offset: -1, Reason: "parser produced no tree"}
	}
	defer tree.Close()

	expr, err := soleExpression(tree.RootNode(), source)
	if err != nil {
		return nil, err
	}
	if expr.Kind() != "jsx_element" && expr.Kind() != "jsx_self_closing_element" {
		return nil, &SyntaxError{Source: src, Offset: int(expr.StartByte()), Reason: "expected a single element, found " + expr.Kind()}
	}

	b := &builder{src: source}
	return b.element(expr)
}

// ParseTemplate parses src as a single template string.
func ParseTemplate(dialect Dialect, src string) (*Template, error) {
	p := AcquireParser(dialect)
	defer ReleaseParser(p)

	source := []byte(src)
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Source: src, Offset: -1, Reason: "parser produced no tree"}
	}
	defer tree.Close()

	expr, err := soleExpression(tree.RootNode(), source)
	if err != nil {
		return nil, err
	}
	if expr.Kind() != "template_string" {
		return nil, &TransformError{Construct: expr.Kind(), Source: src, Reason: "only plain template strings can be extracted"}
	}

	b := &builder{src: source}
	return b.template(expr), nil
}

// soleExpression returns the one expression statement that spans the whole
// (trimmed) source.
func soleExpression(root *sitter.Node, source []byte) (*sitter.Node, error) {
	if root.HasError() {
		offset := -1
		if n := firstError(root); n != nil {
			offset = int(n.StartByte())
		}
		return nil, &SyntaxError{Source: string(source), Offset: offset, Reason: "unexpected token"}
	}

	var stmt *sitter.Node
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		if stmt != nil {
			return nil, &SyntaxError{Source: string(source), Offset: int(child.StartByte()), Reason: "more than one statement"}
		}
		stmt = child
	}
	if stmt == nil || stmt.Kind() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return nil, &SyntaxError{Source: string(source), Offset: -1, Reason: "expected an expression"}
	}

	expr := stmt.NamedChild(0)
	trimmed := strings.TrimRight(string(source), " \t\r\n;")
	if int(expr.EndByte()) != len(trimmed) {
		return nil, &SyntaxError{Source: string(source), Offset: int(expr.EndByte()), Reason: "trailing input"}
	}
	return expr, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.HasError() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// builder converts a tree-sitter subtree into markup nodes.
type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

func (b *builder) element(n *sitter.Node) (*Element, error) {
	switch n.Kind() {
	case "jsx_self_closing_element":
		el := &Element{OpenTag: b.text(n), SelfClosing: true}
		b.name(el, n.ChildByFieldName("name"))
		return el, nil

	case "jsx_element":
		open := n.ChildByFieldName("open_tag")
		closing := n.ChildByFieldName("close_tag")
		if open == nil || closing == nil {
			return nil, &SyntaxError{Source: b.text(n), Offset: int(n.StartByte()), Reason: "element without matching tags"}
		}
		el := &Element{OpenTag: b.text(open), CloseTag: b.text(closing)}
		if name := open.ChildByFieldName("name"); name != nil {
			b.name(el, name)
		} else {
			el.fragment = true
		}
		children, err := b.children(n, open.EndByte(), closing.StartByte())
		if err != nil {
			return nil, err
		}
		el.Children = children
		return el, nil
	}
	return nil, &SyntaxError{Source: b.text(n), Offset: int(n.StartByte()), Reason: "expected an element, found " + n.Kind()}
}

func (b *builder) name(el *Element, n *sitter.Node) {
	if n == nil {
		return
	}
	el.Name = b.text(n)
	switch n.Kind() {
	case "member_expression", "nested_identifier":
		el.Name = strings.Join(strings.Fields(el.Name), "")
		el.NameKind = NameDotted
	case "jsx_namespace_name":
		el.NameKind = NameNamespaced
	default:
		el.NameKind = NamePlain
	}
}

// children reads the children of n between from and to. Text is taken from
// the gaps between structural children so whitespace and entities survive
// exactly as written.
func (b *builder) children(n *sitter.Node, from, to uint) ([]Node, error) {
	var out []Node
	cursor := from
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.StartByte() < from || child.EndByte() > to {
			continue
		}
		switch child.Kind() {
		case "jsx_element", "jsx_self_closing_element", "jsx_expression":
		default:
			continue
		}

		if child.StartByte() > cursor {
			out = append(out, &Text{Value: string(b.src[cursor:child.StartByte()])})
		}
		cursor = child.EndByte()

		if child.Kind() == "jsx_expression" {
			if interp := b.interpolation(child); interp != nil {
				out = append(out, interp)
			}
			continue
		}

		el, err := b.element(child)
		if err != nil {
			return nil, err
		}
		if el.fragment {
			out = append(out, el.Children...)
		} else {
			out = append(out, el)
		}
	}
	if to > cursor {
		out = append(out, &Text{Value: string(b.src[cursor:to])})
	}
	return out, nil
}

// interpolation returns nil for slots holding nothing but comments.
func (b *builder) interpolation(n *sitter.Node) *Interpolation {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		return &Interpolation{Expr: b.expression(child)}
	}
	return nil
}

func (b *builder) expression(n *sitter.Node) Node {
	switch n.Kind() {
	case "identifier":
		return &Identifier{Name: b.text(n)}
	case "member_expression":
		if segments, ok := b.memberPath(n); ok {
			return &MemberPath{Segments: segments, Source: b.text(n)}
		}
	}
	return &Unsupported{Type: n.Kind(), Source: b.text(n)}
}

// memberPath flattens a chain of plain property accesses rooted at an
// identifier. Optional chaining, computed access and private names are
// rejected.
func (b *builder) memberPath(n *sitter.Node) ([]string, bool) {
	object := n.ChildByFieldName("object")
	property := n.ChildByFieldName("property")
	if object == nil || property == nil || property.Kind() != "property_identifier" {
		return nil, false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "optional_chain" {
			return nil, false
		}
	}

	switch object.Kind() {
	case "identifier":
		return []string{b.text(object), b.text(property)}, true
	case "member_expression":
		segments, ok := b.memberPath(object)
		if !ok {
			return nil, false
		}
		return append(segments, b.text(property)), true
	}
	return nil, false
}

func (b *builder) template(n *sitter.Node) *Template {
	t := &Template{}
	cursor := n.StartByte() + 1
	end := n.EndByte() - 1
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() != "template_substitution" {
			continue
		}
		t.Quasis = append(t.Quasis, string(b.src[cursor:child.StartByte()]))
		cursor = child.EndByte()

		var expr Node = &Unsupported{Type: "empty", Source: b.text(child)}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			inner := child.NamedChild(j)
			if inner.Kind() == "comment" {
				continue
			}
			expr = b.expression(inner)
			break
		}
		t.Exprs = append(t.Exprs, expr)
	}
	t.Quasis = append(t.Quasis, string(b.src[cursor:end]))
	return t
}
