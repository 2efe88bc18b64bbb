package documents_test

import (
	"testing"

	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const component = `import React from "react";

const MyComponent = () => {
  return <div label="Hello">Bonjour 👍 de Vocab</div>;
};
`

func pos(line, char int) position.Position {
	return position.Position{Line: line, Character: char}
}

func rng(sl, sc, el, ec int) position.Range {
	return position.Range{Start: pos(sl, sc), End: pos(el, ec)}
}

func TestDocument_SetContent(t *testing.T) {
	doc := documents.NewDocument("file:///src/App.tsx", "typescriptreact", 2, "old")

	require.NoError(t, doc.SetContent("new", 3))
	assert.Equal(t, "new", doc.Content())
	assert.Equal(t, 3, doc.Version())

	err := doc.SetContent("stale", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected stale update")
	assert.Equal(t, "new", doc.Content())
}

func TestDocument_Getters(t *testing.T) {
	doc := documents.NewDocument("file:///src/App.tsx", "typescriptreact", 1, component)
	assert.Equal(t, "file:///src/App.tsx", doc.URI())
	assert.Equal(t, "typescriptreact", doc.LanguageID())
	assert.Equal(t, "/src/App.tsx", doc.Path())
	assert.Equal(t, `const MyComponent = () => {`, doc.LineText(2))
	assert.Equal(t, "", doc.LineText(42))
}

func TestDocument_ValidatePosition(t *testing.T) {
	doc := documents.NewDocument("file:///a.jsx", "javascriptreact", 1, "ab\r\ncdef\nx")

	tests := []struct {
		name string
		in   position.Position
		want position.Position
	}{
		{"inside", pos(1, 2), pos(1, 2)},
		{"negative column", pos(1, -1), pos(1, 0)},
		{"column past end of line", pos(1, 9), pos(1, 4)},
		{"carriage return is not a column", pos(0, 3), pos(0, 2)},
		{"negative line", pos(-1, 3), pos(0, 0)},
		{"line past end", pos(7, 0), pos(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.ValidatePosition(tt.in))
		})
	}
}

func TestDocument_TextInRange(t *testing.T) {
	doc := documents.NewDocument("file:///src/App.tsx", "typescriptreact", 1, component)

	assert.Equal(t, `"Hello"`, doc.TextInRange(rng(3, 20, 3, 27)))
	assert.Equal(t, `Hello`, doc.TextInRange(rng(3, 21, 3, 26)))
	assert.Equal(t, "Bonjour 👍 de Vocab", doc.TextInRange(rng(3, 28, 3, 47)))
	assert.Equal(t, "Bonjour 👍 de Vocab", doc.TextInRange(rng(3, 47, 3, 28)), "reversed ranges are normalized")
	assert.Equal(t, "};\n", doc.TextInRange(rng(4, 0, 99, 0)), "end past the document clamps")
	assert.Equal(t, "", doc.TextInRange(rng(3, 0, 3, 0)))
}

func TestDocument_OffsetAndPosition(t *testing.T) {
	doc := documents.NewDocument("file:///a.jsx", "javascriptreact", 1, "a👍b\ncd")

	assert.Equal(t, 0, doc.OffsetAt(pos(0, 0)))
	assert.Equal(t, 5, doc.OffsetAt(pos(0, 3)))
	assert.Equal(t, 8, doc.OffsetAt(pos(1, 1)))

	for _, p := range []position.Position{pos(0, 0), pos(0, 1), pos(0, 3), pos(0, 4), pos(1, 0), pos(1, 2)} {
		assert.Equal(t, p, doc.PositionAt(doc.OffsetAt(p)))
	}
	assert.Equal(t, pos(1, 2), doc.PositionAt(1000))
}

func TestDocument_ApplyEdits(t *testing.T) {
	doc := documents.NewDocument("file:///src/App.tsx", "typescriptreact", 1, component)

	edits := []documents.TextEdit{
		{Range: rng(3, 28, 3, 47), NewText: `{t("Bonjour 👍 de Vocab")}`},
		{Range: rng(0, 0, 0, 0), NewText: "import a from 'a';\n"},
		{Range: rng(0, 0, 0, 0), NewText: "import b from 'b';\n"},
		{Range: rng(3, 0, 3, 0), NewText: "  const { t } = useTranslations(translations);\n"},
	}

	got, err := doc.ApplyEdits(edits)
	require.NoError(t, err)

	want := `import a from 'a';
import b from 'b';
import React from "react";

const MyComponent = () => {
  const { t } = useTranslations(translations);
  return <div label="Hello">{t("Bonjour 👍 de Vocab")}</div>;
};
`
	assert.Equal(t, want, got)
	assert.Equal(t, component, doc.Content(), "ApplyEdits does not mutate the document")

	_, err = doc.ApplyEdits([]documents.TextEdit{
		{Range: rng(3, 0, 3, 10), NewText: "x"},
		{Range: rng(3, 5, 3, 12), NewText: "y"},
	})
	assert.Error(t, err)
}
