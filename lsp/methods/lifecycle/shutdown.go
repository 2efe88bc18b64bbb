package lifecycle

import (
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/markup"
	"bennypowers.dev/vhls/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	markup.ClosePool()

	return nil
}
