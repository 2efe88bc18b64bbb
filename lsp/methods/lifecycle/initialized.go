package lifecycle

import (
	"fmt"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for notifications sent outside a request
	req.Server.SetGLSPContext(req.GLSP)

	// Don't fail initialization over a bad workspace config, just warn
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(fmt.Errorf("failed to load workspace configuration: %w", err))
	}

	return nil
}
