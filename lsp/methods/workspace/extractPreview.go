package workspace

import (
	"fmt"

	"bennypowers.dev/vhls/internal/highlight"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ExtractPreviewParams identifies the selection to preview.
type ExtractPreviewParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

// ExtractPreview is what an extraction would do, without doing it.
type ExtractPreview struct {
	Kind        highlight.Kind      `json:"kind"`
	Key         string              `json:"key"`
	Message     string              `json:"message"`
	Replacement string              `json:"replacement"`
	CatalogPath string              `json:"catalogPath"`
	Edits       []protocol.TextEdit `json:"edits"`
}

// PreviewExtraction handles the vocabHelper/extractPreview request.
func PreviewExtraction(req *types.RequestContext, params *ExtractPreviewParams) (*ExtractPreview, error) {
	cfg := req.Server.GetConfig()
	plan, err := planExtraction(req, cfg, params.TextDocument.URI, params.Range)
	if err != nil {
		return nil, fmt.Errorf("cannot extract from %s: %w", params.TextDocument.URI, err)
	}

	edits := toProtocolEdits(plan)
	return &ExtractPreview{
		Kind:        plan.Highlight.Kind,
		Key:         plan.Key,
		Message:     plan.Entry.Message,
		Replacement: edits[len(edits)-1].NewText,
		CatalogPath: plan.CatalogPath,
		Edits:       edits,
	}, nil
}
