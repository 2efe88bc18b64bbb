// Package markup turns JSX selections and template strings into translation
// calls, producing the catalog key, the catalog message and replacement code.
package markup

import (
	"fmt"
	"strings"

	"bennypowers.dev/vhls/internal/strutil"
)

const (
	// DefaultCallee is the translation function called by generated code.
	DefaultCallee = "t"
	// DefaultPlaceholder is the renderer parameter standing in for an
	// element's children.
	DefaultPlaceholder = "children"
)

// Options configures a transform.
type Options struct {
	Dialect     Dialect
	Callee      string
	Placeholder string
}

func (o Options) withDefaults() Options {
	if o.Callee == "" {
		o.Callee = DefaultCallee
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	return o
}

// Result is the outcome of a transform.
type Result struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// TransformMarkup converts a JSX selection into a translation call. The
// selection is wrapped in a synthetic element so that sibling text and
// elements parse as one tree; the returned code is the wrapper's content,
// a single {t(...)} slot.
func TransformMarkup(fragment string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	root, err := ParseFragment(opts.Dialect, strutil.WrapWithTransformWrapper(fragment))
	if err != nil {
		return Result{}, err
	}
	if root.Name != strutil.TransformWrapper || root.SelfClosing {
		return Result{}, &SyntaxError{Source: fragment, Offset: -1, Reason: "selection closes an element it does not open"}
	}

	s := newState()
	if err := s.walkChildren(root, opts); err != nil {
		return Result{}, err
	}
	if err := s.finish(); err != nil {
		return Result{}, err
	}

	root.Children = []Node{&Interpolation{Expr: s.call(opts.Callee)}}
	code := strutil.RemoveTransformWrapper(strutil.TrimTrailingSemicolon(Print(root)))

	return Result{Key: s.Key(), Message: s.Message(), Code: code}, nil
}

// TransformTemplate converts a template string such as `Hi ${name}!` into
// t("Hi {name}!", { name }). The code is a bare call, without braces.
func TransformTemplate(src string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	tmpl, err := ParseTemplate(opts.Dialect, strings.TrimSpace(src))
	if err != nil {
		return Result{}, err
	}

	s := newState()
	for i, quasi := range tmpl.Quasis {
		s.appendText(quasi)
		if i < len(tmpl.Exprs) {
			if err := s.bindArgument(tmpl.Exprs[i]); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Key: s.Key(), Message: s.Message(), Code: Print(s.call(opts.Callee))}, nil
}

func (s *State) walkChildren(el *Element, opts Options) error {
	for _, child := range el.Children {
		switch c := child.(type) {
		case *Text:
			s.appendText(c.Value)
		case *Interpolation:
			if err := s.bindArgument(c.Expr); err != nil {
				return err
			}
		case *Element:
			if err := s.walkElement(c, opts); err != nil {
				return err
			}
		default:
			return &InvariantViolation{Reason: fmt.Sprintf("unexpected %s among element children", child.Kind())}
		}
	}
	return nil
}

// walkElement replaces el's children with the placeholder and binds el as a
// renderer under its message name.
func (s *State) walkElement(el *Element, opts Options) error {
	if el.NameKind == NameNamespaced {
		return &TransformError{Construct: "namespaced element", Source: el.Name, Reason: "namespaced names cannot be bound"}
	}

	s.enterElement(el.Name)
	if err := s.walkChildren(el, opts); err != nil {
		return err
	}
	name, err := s.exitElement()
	if err != nil {
		return err
	}

	if !el.SelfClosing {
		el.Children = []Node{&Interpolation{Expr: &Identifier{Name: opts.Placeholder}}}
	}
	return s.pushBinding(Binding{
		Key:   name.String(),
		Value: &Renderer{Param: opts.Placeholder, Body: el},
	})
}
