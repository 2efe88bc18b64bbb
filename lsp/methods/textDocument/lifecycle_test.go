package textDocument

import (
	"testing"

	"bennypowers.dev/vhls/lsp/testutil"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const component = `const Hello = () => <p>Hello</p>;`

func newRequest() (*testutil.MockServerContext, *types.RequestContext) {
	ctx := testutil.NewMockServerContext()
	return ctx, types.NewRequestContext(ctx, &glsp.Context{})
}

func versioned(uri string, version int32) protocol.VersionedTextDocumentIdentifier {
	return protocol.VersionedTextDocumentIdentifier{
		TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		Version:                version,
	}
}

func TestDidOpen(t *testing.T) {
	t.Run("opens document successfully", func(t *testing.T) {
		ctx, req := newRequest()

		params := &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{
				URI:        "file:///src/Hello.jsx",
				LanguageID: "javascriptreact",
				Version:    1,
				Text:       component,
			},
		}

		require.NoError(t, DidOpen(req, params))

		doc := ctx.Document("file:///src/Hello.jsx")
		require.NotNil(t, doc)
		assert.Equal(t, "file:///src/Hello.jsx", doc.URI())
		assert.Equal(t, "javascriptreact", doc.LanguageID())
		assert.Equal(t, 1, doc.Version())
		assert.Equal(t, component, doc.Content())
	})

	t.Run("reopening replaces the buffer", func(t *testing.T) {
		ctx, req := newRequest()
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///a.tsx", "typescriptreact", 1, "old"))

		require.NoError(t, DidOpen(req, &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: "file:///a.tsx", LanguageID: "typescriptreact", Version: 5, Text: "new"},
		}))

		doc := ctx.Document("file:///a.tsx")
		assert.Equal(t, "new", doc.Content())
		assert.Equal(t, 5, doc.Version())
	})
}

func TestDidChange(t *testing.T) {
	t.Run("incremental change", func(t *testing.T) {
		ctx, req := newRequest()
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///Hello.jsx", "javascriptreact", 1, component))

		change := protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 23},
				End:   protocol.Position{Line: 0, Character: 28},
			},
			Text: "Goodbye",
		}

		err := DidChange(req, &protocol.DidChangeTextDocumentParams{
			TextDocument:   versioned("file:///Hello.jsx", 2),
			ContentChanges: []any{change},
		})
		require.NoError(t, err)

		doc := ctx.Document("file:///Hello.jsx")
		assert.Equal(t, 2, doc.Version())
		assert.Equal(t, `const Hello = () => <p>Goodbye</p>;`, doc.Content())
	})

	t.Run("whole document change", func(t *testing.T) {
		ctx, req := newRequest()
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///Hello.jsx", "javascriptreact", 1, component))

		err := DidChange(req, &protocol.DidChangeTextDocumentParams{
			TextDocument:   versioned("file:///Hello.jsx", 2),
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "export {};"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "export {};", ctx.Document("file:///Hello.jsx").Content())
	})

	t.Run("unknown change types are ignored", func(t *testing.T) {
		ctx, req := newRequest()
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///Hello.jsx", "javascriptreact", 1, component))

		err := DidChange(req, &protocol.DidChangeTextDocumentParams{
			TextDocument:   versioned("file:///Hello.jsx", 2),
			ContentChanges: []any{"garbage"},
		})
		require.NoError(t, err)
		assert.Equal(t, component, ctx.Document("file:///Hello.jsx").Content())
	})

	t.Run("document not open", func(t *testing.T) {
		_, req := newRequest()

		err := DidChange(req, &protocol.DidChangeTextDocumentParams{
			TextDocument:   versioned("file:///missing.jsx", 2),
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}},
		})
		assert.Error(t, err)
	})
}

func TestDidClose(t *testing.T) {
	ctx, req := newRequest()
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///Hello.jsx", "javascriptreact", 1, component))

	params := &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///Hello.jsx"},
	}
	require.NoError(t, DidClose(req, params))
	assert.Nil(t, ctx.Document("file:///Hello.jsx"))

	assert.Error(t, DidClose(req, params), "closing twice fails")
}
