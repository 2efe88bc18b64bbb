package documents

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/internal/uriutil"
)

// Document represents a text document being managed by the language server
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// Path returns the file system path of the document
func (d *Document) Path() string {
	return uriutil.URIToPath(d.uri)
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// SetContent updates the document's content and version.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}

func (d *Document) lines() []string {
	return strings.Split(d.content, "\n")
}

// lineText returns the line without its carriage return, so column
// clamping matches what an editor shows.
func lineText(lines []string, i int) string {
	return strings.TrimSuffix(lines[i], "\r")
}

// ValidatePosition clamps p into the document: a negative line maps to the
// start, a line past the end maps to the end, and the column is clamped to
// the line's length.
func (d *Document) ValidatePosition(p position.Position) position.Position {
	lines := d.lines()
	last := len(lines) - 1

	switch {
	case p.Line < 0:
		return position.Position{}
	case p.Line > last:
		return position.Position{Line: last, Character: position.StringLengthUTF16(lineText(lines, last))}
	}

	length := position.StringLengthUTF16(lineText(lines, p.Line))
	switch {
	case p.Character < 0:
		p.Character = 0
	case p.Character > length:
		p.Character = length
	}
	return p
}

// OffsetAt returns the byte offset of p, after clamping it into the document.
func (d *Document) OffsetAt(p position.Position) int {
	p = d.ValidatePosition(p)
	lines := d.lines()

	offset := 0
	for i := 0; i < p.Line; i++ {
		offset += len(lines[i]) + 1
	}
	return offset + position.UTF16ToByteOffset(lines[p.Line], p.Character)
}

// PositionAt returns the position of a byte offset.
func (d *Document) PositionAt(offset int) position.Position {
	if offset <= 0 {
		return position.Position{}
	}
	if offset > len(d.content) {
		offset = len(d.content)
	}
	before := d.content[:offset]
	line := strings.Count(before, "\n")
	lineStart := strings.LastIndex(before, "\n") + 1
	return position.Position{
		Line:      line,
		Character: position.ByteOffsetToUTF16(d.content[lineStart:], offset-lineStart),
	}
}

// TextInRange returns the text covered by r after clamping both ends.
func (d *Document) TextInRange(r position.Range) string {
	r = r.Normalize()
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)
	return d.content[start:end]
}

// LineText returns the text of line i, or "" when it is out of range.
func (d *Document) LineText(i int) string {
	lines := d.lines()
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lineText(lines, i)
}

// TextEdit replaces Range with NewText.
type TextEdit struct {
	Range   position.Range
	NewText string
}

// ApplyEdits returns the content with all edits applied. Ranges refer to the
// original content and must not overlap; insertions at the same position are
// applied in the order given.
func (d *Document) ApplyEdits(edits []TextEdit) (string, error) {
	type span struct {
		start, end int
		text       string
	}
	spans := make([]span, 0, len(edits))
	for _, edit := range edits {
		r := edit.Range.Normalize()
		spans = append(spans, span{start: d.OffsetAt(r.Start), end: d.OffsetAt(r.End), text: edit.NewText})
	}

	slices.SortStableFunc(spans, func(a, b span) int {
		return cmp.Compare(a.start, b.start)
	})

	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			return "", fmt.Errorf("overlapping edits at offset %d", s.start)
		}
		b.WriteString(d.content[cursor:s.start])
		b.WriteString(s.text)
		cursor = s.end
	}
	b.WriteString(d.content[cursor:])
	return b.String(), nil
}
