package markup

import (
	"strings"

	"bennypowers.dev/vhls/internal/strutil"
)

// Print renders a node back to source. Element tags are reproduced from the
// original source; translation calls print their bindings on one line.
func Print(n Node) string {
	var b strings.Builder
	printNode(&b, n)
	return b.String()
}

func printNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		b.WriteString(n.Value)
	case *Element:
		b.WriteString(n.OpenTag)
		if n.SelfClosing {
			return
		}
		for _, child := range n.Children {
			printNode(b, child)
		}
		b.WriteString(n.CloseTag)
	case *Interpolation:
		b.WriteByte('{')
		printNode(b, n.Expr)
		b.WriteByte('}')
	case *Identifier:
		b.WriteString(n.Name)
	case *MemberPath:
		b.WriteString(n.Source)
	case *Unsupported:
		b.WriteString(n.Source)
	case *Template:
		b.WriteByte('`')
		for i, quasi := range n.Quasis {
			b.WriteString(quasi)
			if i < len(n.Exprs) {
				b.WriteString("${")
				printNode(b, n.Exprs[i])
				b.WriteByte('}')
			}
		}
		b.WriteByte('`')
	case *Call:
		b.WriteString(n.Callee)
		b.WriteByte('(')
		b.WriteString(strutil.QuoteKey(n.Key))
		if len(n.Bindings) > 0 {
			b.WriteString(", { ")
			for i, binding := range n.Bindings {
				if i > 0 {
					b.WriteString(", ")
				}
				printBinding(b, binding)
			}
			b.WriteString(" }")
		}
		b.WriteByte(')')
	case *Renderer:
		b.WriteByte('(')
		b.WriteString(n.Param)
		b.WriteString(") => ")
		printNode(b, n.Body)
	}
}

func printBinding(b *strings.Builder, binding Binding) {
	if binding.Shorthand {
		b.WriteString(binding.Key)
		return
	}
	if strutil.IsIdentifier(binding.Key) {
		b.WriteString(binding.Key)
	} else {
		b.WriteString(strutil.QuoteKey(binding.Key))
	}
	b.WriteString(": ")
	printNode(b, binding.Value)
}
