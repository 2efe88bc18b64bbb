// Package position models editor coordinates: zero-based lines and UTF-16
// columns, as used by LSP.
package position

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Position is a zero-based line and UTF-16 column.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Normalize returns the range with Start at or before End.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseRange parses "L:C-L:C" with one-based lines and columns, the way
// editors display positions, into a zero-based Range.
func ParseRange(s string) (Range, error) {
	startText, endText, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: expected LINE:COL-LINE:COL", s)
	}
	start, err := parseOneBased(startText)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start %q: %w", startText, err)
	}
	end, err := parseOneBased(endText)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end %q: %w", endText, err)
	}
	return Range{Start: start, End: end}.Normalize(), nil
}

func parseOneBased(s string) (Position, error) {
	lineText, colText, ok := strings.Cut(s, ":")
	if !ok {
		return Position{}, fmt.Errorf("expected LINE:COL")
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("line must be a positive integer")
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return Position{}, fmt.Errorf("column must be a positive integer")
	}
	return Position{Line: line - 1, Character: col - 1}, nil
}

// FromProtocol converts an LSP position.
func FromProtocol(p protocol.Position) Position {
	return Position{Line: int(p.Line), Character: int(p.Character)}
}

// RangeFromProtocol converts an LSP range.
func RangeFromProtocol(r protocol.Range) Range {
	return Range{Start: FromProtocol(r.Start), End: FromProtocol(r.End)}
}

// ToProtocol converts to an LSP position, clamping to the uint32 range.
func (p Position) ToProtocol() protocol.Position {
	return protocol.Position{Line: clampUint32(p.Line), Character: clampUint32(p.Character)}
}

// ToProtocol converts to an LSP range.
func (r Range) ToProtocol() protocol.Range {
	return protocol.Range{Start: r.Start.ToProtocol(), End: r.End.ToProtocol()}
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
