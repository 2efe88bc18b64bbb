package types

import (
	"bennypowers.dev/vhls/internal/documents"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// This unified context eliminates the need for handler-specific interfaces
// and enables dependency injection for testing.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	// SetClientSettings records the raw client settings and recomputes the
	// effective configuration on top of the workspace files.
	SetClientSettings(settings map[string]any) error
	// LoadWorkspaceConfig rereads package.json and .config/vocab-helper.yaml.
	LoadWorkspaceConfig() error
	// IsExtractable reports whether a document gets the extract action.
	IsExtractable(uri string) bool

	// LSP context (for notifications and client requests)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Client capabilities
	SupportsShowDocument() bool
	SetSupportsShowDocument(supported bool)
}
