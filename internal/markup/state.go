package markup

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/vhls/internal/strutil"
)

// ElementName is the name an element is known by in the message. The first
// occurrence of a tag name has no suffix; later ones are numbered from 1.
type ElementName struct {
	Name   string
	Suffix string
}

func (n ElementName) String() string {
	return n.Name + n.Suffix
}

// State accumulates the key, message and bindings of one transform.
type State struct {
	key         strings.Builder
	message     strings.Builder
	occurrences map[string]int
	stack       []ElementName
	bindings    []Binding
}

func newState() *State {
	return &State{occurrences: make(map[string]int)}
}

// Key is the translation key: the text with elements dropped and
// expressions flattened to their bare names.
func (s *State) Key() string {
	return s.key.String()
}

// Message is the catalog message: the text with elements as tag pairs.
func (s *State) Message() string {
	return s.message.String()
}

// Bindings returns the collected bindings in first-seen order.
func (s *State) Bindings() []Binding {
	return s.bindings
}

func (s *State) appendText(text string) {
	s.key.WriteString(text)
	s.message.WriteString(text)
}

func (s *State) enterElement(name string) ElementName {
	n := s.occurrences[name]
	s.occurrences[name] = n + 1

	en := ElementName{Name: name}
	if n > 0 {
		en.Suffix = strconv.Itoa(n)
	}
	s.stack = append(s.stack, en)
	s.message.WriteString("<" + en.String() + ">")
	return en
}

func (s *State) exitElement() (ElementName, error) {
	if len(s.stack) == 0 {
		return ElementName{}, &InvariantViolation{Reason: "element exit without a matching enter"}
	}
	en := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.message.WriteString("</" + en.String() + ">")
	return en, nil
}

// bindArgument records an interpolated expression, writing its placeholder
// to both key and message.
func (s *State) bindArgument(expr Node) error {
	var binding Binding
	switch e := expr.(type) {
	case *Identifier:
		binding = Binding{Key: e.Name, Value: e, Shorthand: true}
	case *MemberPath:
		binding = Binding{Key: memberPathKey(e.Segments), Value: e}
	case *Unsupported:
		return &TransformError{Construct: e.Type, Source: e.Source, Reason: "only variables and property paths can be interpolated"}
	default:
		return &InvariantViolation{Reason: fmt.Sprintf("unexpected %s in interpolation", expr.Kind())}
	}

	s.key.WriteString(binding.Key)
	s.message.WriteString("{" + binding.Key + "}")
	return s.pushBinding(binding)
}

// pushBinding appends b unless an identical binding is already present. A
// key reused for a different value is an error.
func (s *State) pushBinding(b Binding) error {
	for _, existing := range s.bindings {
		if existing.Key != b.Key {
			continue
		}
		if Print(existing.Value) == Print(b.Value) {
			return nil
		}
		return &TransformError{
			Construct: "binding",
			Source:    b.Key,
			Reason:    fmt.Sprintf("%s and %s would share a name", Print(existing.Value), Print(b.Value)),
		}
	}
	s.bindings = append(s.bindings, b)
	return nil
}

func (s *State) finish() error {
	if len(s.stack) != 0 {
		return &InvariantViolation{Reason: fmt.Sprintf("%d element(s) never exited", len(s.stack))}
	}
	return nil
}

func (s *State) call(callee string) *Call {
	return &Call{Callee: callee, Key: s.Key(), Bindings: s.Bindings()}
}

// memberPathKey camel-cases a property path: props.user.name is
// propsUserName. The whole first segment is lower-cased, so URL.path is
// urlPath.
func memberPathKey(segments []string) string {
	var b strings.Builder
	for i, segment := range segments {
		if i == 0 {
			b.WriteString(strings.ToLower(segment))
		} else {
			b.WriteString(strutil.Capitalise(segment))
		}
	}
	return b.String()
}
