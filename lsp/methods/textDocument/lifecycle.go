package textDocument

import (
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	log.Info("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	return req.Server.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
}

// DidChange handles the textDocument/didChange notification
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	// Whole-document events become range-less changes
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		switch event := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, event)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: event.Text})
		}
	}

	return req.Server.DocumentManager().DidChange(uri, version, changes)
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	log.Info("Document closed: %s", uri)

	return req.Server.DocumentManager().DidClose(uri)
}
