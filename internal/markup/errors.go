package markup

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrUnsupported indicates a construct the transform cannot express as a
	// translation call
	ErrUnsupported = errors.New("unsupported construct")

	// ErrInvariant indicates the traversal lost track of the tree; it is a bug,
	// never a user error
	ErrInvariant = errors.New("transform invariant violated")

	// ErrSyntax indicates the selection is not valid markup
	ErrSyntax = errors.New("syntax error")
)

// TransformError reports a construct the transform does not support, such
// as a call inside an interpolation or a namespaced element name.
type TransformError struct {
	Construct string
	Source    string
	Reason    string
}

func (e *TransformError) Error() string {
	msg := fmt.Sprintf("cannot extract %s", e.Construct)
	if e.Source != "" {
		msg += fmt.Sprintf(" %q", e.Source)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransformError) Unwrap() error {
	return ErrUnsupported
}

// InvariantViolation reports unbalanced element enter/exit bookkeeping.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "internal error: " + e.Reason
}

func (e *InvariantViolation) Unwrap() error {
	return ErrInvariant
}

// SyntaxError reports a selection the parser could not read.
type SyntaxError struct {
	Source string
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("selection is not valid markup at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("selection is not valid markup: %s", e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
