package markup

import "bennypowers.dev/vhls/internal/collections"

// functionKinds are the grammar node types whose body can hold a hook call.
var functionKinds = collections.NewSet(
	"arrow_function",
	"function_declaration",
	"function_expression",
	"function",
	"generator_function_declaration",
	"generator_function",
	"method_definition",
)

// HookSite is where a translation hook goes inside a function body.
type HookSite struct {
	// Line is the first line after the body's opening bracket.
	Line int
	// Open is the byte offset just past the opening bracket.
	Open int
	// First is the byte offset of the body's first statement, or Open when
	// the body is empty.
	First int
	// Inline is set when the first statement shares the bracket's line, so
	// inserting on Line would land after it.
	Inline bool
}

// FindHookSite finds where a translation hook should be inserted for code
// at byte offset in source: the top of the body of the outermost function
// enclosing offset. Hooks belong at the top level of the component, so
// nested callbacks are skipped over. It reports false when offset is not
// inside a function with a block body.
func FindHookSite(dialect Dialect, source string, offset int) (HookSite, bool) {
	if offset < 0 || offset > len(source) {
		return HookSite{}, false
	}

	p := AcquireParser(dialect)
	defer ReleaseParser(p)

	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return HookSite{}, false
	}
	defer tree.Close()

	node := tree.RootNode().NamedDescendantForByteRange(uint(offset), uint(offset))
	var site HookSite
	found := false
	for n := node; n != nil; n = n.Parent() {
		if !functionKinds.Has(n.Kind()) {
			continue
		}
		body := n.ChildByFieldName("body")
		if body == nil || body.Kind() != "statement_block" {
			continue
		}
		if uint(offset) < body.StartByte() || uint(offset) > body.EndByte() {
			continue
		}
		site = HookSite{
			Line:  int(body.StartPosition().Row) + 1,
			Open:  int(body.StartByte()) + 1,
			First: int(body.StartByte()) + 1,
		}
		if first := body.NamedChild(0); first != nil {
			site.First = int(first.StartByte())
			site.Inline = first.StartPosition().Row == body.StartPosition().Row
		} else {
			site.Inline = body.EndPosition().Row == body.StartPosition().Row
		}
		found = true
	}
	return site, found
}
