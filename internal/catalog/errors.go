package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrCorrupt indicates a catalog file exists but is not a JSON object
	ErrCorrupt = errors.New("corrupt translation catalog")

	// ErrInvalidEntry indicates a catalog value is not a message object
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// CorruptError represents a catalog file that could not be parsed
type CorruptError struct {
	Path  string
	Cause error
}

func (e *CorruptError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("translation catalog is not a JSON object: %v", e.Cause)
	}
	return fmt.Sprintf("translation catalog %s is not a JSON object: %v", e.Path, e.Cause)
}

func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Cause}
}

// InvalidEntryError represents a key whose value is not a message object
type InvalidEntryError struct {
	Key   string
	Cause error
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("catalog entry %q: %v", e.Key, e.Cause)
}

func (e *InvalidEntryError) Unwrap() error {
	return ErrInvalidEntry
}
