package codeaction

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/extract"
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	extractTitle = "Extract translation string"
	openTitle    = "Open translations file"
)

// CodeAction handles the textDocument/codeAction request.
//
// A non-empty selection in an extractable document gets the extract action.
// When the selection cannot be extracted the action is still listed but
// disabled, with the reason. Documents whose catalog exists also get an
// action opening it.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("CodeAction requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil || !req.Server.IsExtractable(uri) {
		return nil, nil
	}

	cfg := req.Server.GetConfig()
	only := params.Context.Only
	var actions []protocol.CodeAction

	sel := position.RangeFromProtocol(params.Range).Normalize()
	if !sel.IsEmpty() && wants(only, protocol.CodeActionKindRefactorExtract) {
		_, err := extract.Analyse(doc, sel, cfg.ExtractOptions(doc.LanguageID(), doc.Path()))
		actions = append(actions, extractAction(uri, params.Range, err))
	}

	if wants(only, protocol.CodeActionKindSource) {
		if action := openAction(req, cfg, doc); action != nil {
			actions = append(actions, *action)
		}
	}

	return actions, nil
}

// extractAction runs the extract command on the selection. A failed
// analysis disables the action instead of hiding it.
func extractAction(uri protocol.DocumentUri, rng protocol.Range, analysisErr error) protocol.CodeAction {
	kind := protocol.CodeActionKindRefactorExtract
	action := protocol.CodeAction{
		Title: extractTitle,
		Kind:  &kind,
		Command: &protocol.Command{
			Title:     extractTitle,
			Command:   types.CommandExtractTranslationString,
			Arguments: []any{uri, rng},
		},
	}
	if analysisErr != nil {
		action.Disabled = &struct {
			Reason string `json:"reason"`
		}{Reason: analysisErr.Error()}
	}
	return action
}

func openAction(req *types.RequestContext, cfg types.ServerConfig, doc *documents.Document) *protocol.CodeAction {
	path := catalog.PathFor(doc.Path(), cfg.CatalogDir, cfg.CatalogFile)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			req.AddWarning(err)
		}
		return nil
	}

	kind := protocol.CodeActionKindSource
	return &protocol.CodeAction{
		Title: openTitle,
		Kind:  &kind,
		Command: &protocol.Command{
			Title:     openTitle,
			Command:   types.CommandOpenTranslationsFile,
			Arguments: []any{doc.URI()},
		},
	}
}

// wants reports whether kind passes the client's "only" filter. A filter
// entry also admits its sub-kinds.
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(kind, o+".") {
			return true
		}
	}
	return false
}
