package workspace

import (
	"fmt"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification.
// Client settings replace the previous client layer; workspace files and
// defaults still apply underneath.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	section, err := types.SettingsSection(params.Settings)
	if err != nil {
		// Don't fail, keep the current configuration
		req.AddWarning(fmt.Errorf("failed to parse configuration: %w", err))
		return nil
	}

	if err := req.Server.SetClientSettings(section); err != nil {
		req.AddWarning(fmt.Errorf("failed to apply configuration: %w", err))
		return nil
	}

	log.Debug("New configuration: %+v", req.Server.GetConfig())
	return nil
}
