package markup

import "fmt"

// Kind identifies the variant of a Node.
type Kind int

const (
	KindText Kind = iota
	KindElement
	KindInterpolation
	KindIdentifier
	KindMemberPath
	KindTemplate
	KindUnsupported
	KindCall
	KindRenderer
)

var kindNames = [...]string{
	KindText:          "text",
	KindElement:       "element",
	KindInterpolation: "interpolation",
	KindIdentifier:    "identifier",
	KindMemberPath:    "member path",
	KindTemplate:      "template",
	KindUnsupported:   "unsupported expression",
	KindCall:          "call",
	KindRenderer:      "renderer",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one node of a markup tree. The set of implementations is closed:
// Text, Element, Interpolation, Identifier, MemberPath, Template,
// Unsupported, Call and Renderer.
type Node interface {
	Kind() Kind
}

// Text is literal markup text, kept byte for byte.
type Text struct {
	Value string
}

// NameKind classifies an element's tag name.
type NameKind int

const (
	// NamePlain is a bare identifier such as a or Strong.
	NamePlain NameKind = iota
	// NameDotted is a member path such as Trans.Link.
	NameDotted
	// NameNamespaced is an XML-style name such as svg:rect.
	NameNamespaced
)

// Element is a markup element. OpenTag and CloseTag hold the tags' source
// so attributes are reproduced untouched. For a self-closing element
// OpenTag is the whole element and CloseTag is empty.
type Element struct {
	Name        string
	NameKind    NameKind
	OpenTag     string
	CloseTag    string
	SelfClosing bool
	Children    []Node

	fragment bool
}

// Interpolation is a {…} slot in child position.
type Interpolation struct {
	Expr Node
}

// Identifier is a bare variable reference.
type Identifier struct {
	Name string
}

// MemberPath is a dotted access chain such as props.user.name.
type MemberPath struct {
	Segments []string
	Source   string
}

// Unsupported is any other expression; Type is the grammar's node type.
type Unsupported struct {
	Type   string
	Source string
}

// Template is a template string. Quasis holds the raw literal segments, one
// more than Exprs.
type Template struct {
	Quasis []string
	Exprs  []Node
}

// Binding is one property of the object passed to the translation function.
type Binding struct {
	Key       string
	Value     Node
	Shorthand bool
}

// Call is a translation call: Callee("Key", { Bindings... }).
type Call struct {
	Callee   string
	Key      string
	Bindings []Binding
}

// Renderer is a one-argument closure re-rendering Body around Param.
type Renderer struct {
	Param string
	Body  *Element
}

func (*Text) Kind() Kind          { return KindText }
func (*Element) Kind() Kind       { return KindElement }
func (*Interpolation) Kind() Kind { return KindInterpolation }
func (*Identifier) Kind() Kind    { return KindIdentifier }
func (*MemberPath) Kind() Kind    { return KindMemberPath }
func (*Template) Kind() Kind      { return KindTemplate }
func (*Unsupported) Kind() Kind   { return KindUnsupported }
func (*Call) Kind() Kind          { return KindCall }
func (*Renderer) Kind() Kind      { return KindRenderer }
