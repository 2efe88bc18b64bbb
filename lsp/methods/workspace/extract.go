package workspace

import (
	"errors"
	"fmt"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/extract"
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const extractLabel = "Extract translation string"

// ExtractResult is returned once the edit has been sent to the client.
// FormatDocument asks the client to format the document afterwards.
type ExtractResult struct {
	Key            string `json:"key"`
	Message        string `json:"message"`
	CatalogPath    string `json:"catalogPath"`
	FormatDocument bool   `json:"formatDocument,omitempty"`
}

// ExtractTranslationString runs the extract command. Arguments are the
// document URI and the selected range.
//
// The component edit goes to the client through workspace/applyEdit; the
// catalog is written only after the client applied it. A failed extraction
// is shown to the user once and leaves both files untouched.
func ExtractTranslationString(req *types.RequestContext, args []any) (any, error) {
	var uri protocol.DocumentUri
	var rng protocol.Range
	if err := decodeArguments(args, &uri, &rng); err != nil {
		return nil, err
	}

	cfg := req.Server.GetConfig()
	plan, err := planExtraction(req, cfg, uri, rng)
	if err == nil && (req.GLSP == nil || req.GLSP.Call == nil) {
		err = ErrNoClient
	}
	if err != nil {
		ShowMessage(req.GLSP, protocol.MessageTypeError, failureMessage(err))
		req.AddWarning(err)
		return nil, nil
	}

	label := extractLabel
	params := protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit: protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				uri: toProtocolEdits(plan),
			},
		},
	}

	ctx := req.GLSP
	overwrite := cfg.OverwriteCorruptCatalog
	runAsync(func() {
		applyPlan(ctx, params, plan, overwrite)
	})

	return &ExtractResult{
		Key:            plan.Key,
		Message:        plan.Entry.Message,
		CatalogPath:    plan.CatalogPath,
		FormatDocument: cfg.FormatAfterReplace,
	}, nil
}

// planExtraction computes the plan against a snapshot of the document and
// checks that its catalog can take the entry.
func planExtraction(req *types.RequestContext, cfg types.ServerConfig, uri protocol.DocumentUri, rng protocol.Range) (*extract.Plan, error) {
	doc := req.Server.DocumentManager().Snapshot(uri)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotOpen, uri)
	}

	opts := cfg.ExtractOptions(doc.LanguageID(), doc.Path())
	plan, err := extract.NewPlan(doc, position.RangeFromProtocol(rng), opts)
	if err != nil {
		return nil, err
	}

	if _, err := catalog.Load(plan.CatalogPath); err != nil {
		if !errors.Is(err, catalog.ErrCorrupt) || !cfg.OverwriteCorruptCatalog {
			return nil, err
		}
		req.AddWarning(fmt.Errorf("replacing unreadable catalog: %w", err))
	}
	return plan, nil
}

func applyPlan(ctx *glsp.Context, params protocol.ApplyWorkspaceEditParams, plan *extract.Plan, overwrite bool) {
	var response protocol.ApplyWorkspaceEditResponse
	ctx.Call(protocol.ServerWorkspaceApplyEdit, params, &response)

	if !response.Applied {
		reason := "the editor did not apply the edit"
		if response.FailureReason != nil && *response.FailureReason != "" {
			reason = *response.FailureReason
		}
		ShowMessage(ctx, protocol.MessageTypeError, failureMessage(errors.New(reason)))
		return
	}

	if err := plan.WriteCatalog(overwrite); err != nil {
		ShowMessage(ctx, protocol.MessageTypeError, failureMessage(err))
		return
	}
	log.Info("Added %q to %s", plan.Key, plan.CatalogPath)
}

func toProtocolEdits(plan *extract.Plan) []protocol.TextEdit {
	edits := make([]protocol.TextEdit, len(plan.Edits))
	for i, e := range plan.Edits {
		edits[i] = protocol.TextEdit{
			Range:   e.Range.ToProtocol(),
			NewText: e.NewText,
		}
	}
	return edits
}

func failureMessage(err error) string {
	return fmt.Sprintf("Could not extract translation string: %v", err)
}
