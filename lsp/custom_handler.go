package lsp

import (
	"encoding/json"
	"errors"

	"bennypowers.dev/vhls/lsp/methods/workspace"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add custom method support.
//
// protocol.Handler only dispatches LSP 3.16 methods, so server specific
// requests such as vocabHelper/extractPreview are intercepted here before
// falling through to the embedded handler.
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
	preview           func(*glsp.Context, *workspace.ExtractPreviewParams) (*workspace.ExtractPreview, error)
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	if context.Method == types.MethodExtractPreview {
		if !h.IsInitialized() {
			return nil, true, true, errors.New("server not initialized")
		}

		// Parse params manually since protocol.Handler doesn't know about this method
		var params workspace.ExtractPreviewParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}

		result, err := h.preview(context, &params)
		if err != nil {
			return nil, true, true, err
		}

		return result, true, true, nil
	}

	// Fall through to default protocol.Handler
	return h.Handler.Handle(context)
}
