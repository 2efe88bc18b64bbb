package lsp

import (
	"sync"

	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/markup"
	"bennypowers.dev/vhls/lsp/methods/lifecycle"
	"bennypowers.dev/vhls/lsp/methods/textDocument"
	codeaction "bennypowers.dev/vhls/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/vhls/lsp/methods/workspace"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the Vocab Helper Language Server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string             // Workspace root URI
	rootPath   string             // Workspace root path (file system)
	config     types.ServerConfig // Effective configuration
	configMu   sync.RWMutex       // Protects everything below documents

	// Settings layers, lowest precedence first
	fileSettings    map[string]any // .config/vocab-helper.yaml
	packageSettings map[string]any // package.json "vocabHelper"
	clientSettings  map[string]any // initializationOptions and didChangeConfiguration

	supportsShowDocument bool
}

// NewServer creates a new Vocab Helper LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    types.DefaultConfig(),
	}

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceExecuteCommand:         method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	// The custom handler serves requests protocol.Handler has no field for
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
		preview: method(s, types.MethodExtractPreview, workspace.PreviewExtraction),
	}

	s.glspServer = server.NewServer(customHandler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources including the parser pools.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	markup.ClosePool()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// SupportsShowDocument reports whether the client handles window/showDocument
func (s *Server) SupportsShowDocument() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.supportsShowDocument
}

// SetSupportsShowDocument records the client's window/showDocument capability
func (s *Server) SetSupportsShowDocument(supported bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.supportsShowDocument = supported
}
