package testutil

import (
	"sync"

	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	docs                 *documents.Manager
	rootURI              string
	rootPath             string
	config               types.ServerConfig
	glspContext          *glsp.Context
	supportsShowDocument bool

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	SetClientSettingsFunc   func(map[string]any) error
	IsExtractableFunc       func(string) bool

	// Tracking for tests that need to verify methods were called
	LoadWorkspaceConfigCalled bool
	ClientSettings            map[string]any
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: types.DefaultConfig(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.config = config
}

// SetClientSettings records the settings; without a callback they are
// not applied.
func (m *MockServerContext) SetClientSettings(settings map[string]any) error {
	m.ClientSettings = settings
	if m.SetClientSettingsFunc != nil {
		return m.SetClientSettingsFunc(settings)
	}
	return nil
}

// LoadWorkspaceConfig records the call
func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// IsExtractable matches the document path against the configured globs
func (m *MockServerContext) IsExtractable(uri string) bool {
	if m.IsExtractableFunc != nil {
		return m.IsExtractableFunc(uri)
	}
	return m.config.Matches(m.rootPath, uriutil.URIToPath(uri))
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// SupportsShowDocument reports the configured client capability
func (m *MockServerContext) SupportsShowDocument() bool {
	return m.supportsShowDocument
}

// SetSupportsShowDocument sets the client capability
func (m *MockServerContext) SetSupportsShowDocument(supported bool) {
	m.supportsShowDocument = supported
}

// Client is a glsp.Context recorder. Notifications and calls are stored in
// order; calls are answered by the Respond callback.
type Client struct {
	mu            sync.Mutex
	Notifications []Message
	Calls         []Message

	// Respond fills result for a server-to-client request.
	Respond func(method string, params any, result any)
}

// Message is one notification or request sent to the client.
type Message struct {
	Method string
	Params any
}

// Context returns a glsp.Context wired to the recorder.
func (c *Client) Context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.Notifications = append(c.Notifications, Message{Method: method, Params: params})
		},
		Call: func(method string, params any, result any) {
			c.mu.Lock()
			c.Calls = append(c.Calls, Message{Method: method, Params: params})
			respond := c.Respond
			c.mu.Unlock()
			if respond != nil {
				respond(method, params, result)
			}
		},
	}
}

// NotificationsFor returns the params of every notification with method.
func (c *Client) NotificationsFor(method string) []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []any
	for _, n := range c.Notifications {
		if n.Method == method {
			out = append(out, n.Params)
		}
	}
	return out
}

// CallsFor returns the params of every request with method.
func (c *Client) CallsFor(method string) []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []any
	for _, n := range c.Calls {
		if n.Method == method {
			out = append(out, n.Params)
		}
	}
	return out
}
