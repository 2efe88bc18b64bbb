package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/lsp"
	"bennypowers.dev/vhls/lsp/methods/textDocument"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// LoadComponentFixture loads a component fixture file and returns the content
func LoadComponentFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), "components", name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load component fixture: %s", name)
	return string(data)
}

// LoadGoldenFile loads a golden file for comparison
func LoadGoldenFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), "golden", name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load golden file: %s", name)
	return string(data)
}

// NewTestServer creates a new LSP server for testing
func NewTestServer(t *testing.T) *lsp.Server {
	t.Helper()
	server, err := lsp.NewServer()
	require.NoError(t, err, "Failed to create test server")
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// CopyComponentFixture copies a component fixture into dir and returns its
// path and URI.
func CopyComponentFixture(t *testing.T, dir, name string) (path, uri string) {
	t.Helper()
	path = filepath.Join(dir, name)
	content := LoadComponentFixture(t, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path, uriutil.PathToURI(path)
}

// OpenComponentFixture opens a component fixture file in the server
func OpenComponentFixture(t *testing.T, server *lsp.Server, uri, languageID, fixtureName string) {
	t.Helper()
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: languageID,
			Version:    1,
			Text:       LoadComponentFixture(t, fixtureName),
		},
	}
	req := types.NewRequestContext(server, nil)
	err := textDocument.DidOpen(req, params)
	require.NoError(t, err, "Failed to open component fixture: %s", fixtureName)
}
