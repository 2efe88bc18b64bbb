package lifecycle

import (
	"fmt"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/internal/version"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported in the initialize result
const ServerName = "vocab-helper-language-server"

// InitializeResult is protocol.InitializeResult with free-form capabilities
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}

	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	switch {
	case params.RootURI != nil:
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil:
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	case len(params.WorkspaceFolders) > 0:
		req.Server.SetRootURI(params.WorkspaceFolders[0].URI)
		req.Server.SetRootPath(uriutil.URIToPath(params.WorkspaceFolders[0].URI))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	caps := params.Capabilities
	req.Server.SetSupportsShowDocument(caps.Window != nil && caps.Window.ShowDocument != nil && caps.Window.ShowDocument.Support)
	if caps.Workspace == nil || caps.Workspace.ApplyEdit == nil || !*caps.Workspace.ApplyEdit {
		log.Warn("Client %s does not announce workspace/applyEdit; extraction may fail", clientName)
	}

	// Initialization options carry the same settings as didChangeConfiguration
	if params.InitializationOptions != nil {
		section, err := types.SettingsSection(params.InitializationOptions)
		if err == nil {
			err = req.Server.SetClientSettings(section)
		}
		if err != nil {
			req.AddWarning(fmt.Errorf("ignoring initializationOptions: %w", err))
		}
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"codeActionProvider": protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{
				protocol.CodeActionKindRefactorExtract,
				protocol.CodeActionKindSource,
			},
		},
		"executeCommandProvider": protocol.ExecuteCommandOptions{
			Commands: types.Commands,
		},
	}

	return InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
