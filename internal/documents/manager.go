package documents

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/vhls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// Snapshot returns a copy of the document that later edits will not touch,
// or nil when the document is not open.
func (m *Manager) Snapshot(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[uri]
	if !ok {
		return nil
	}
	snapshot := *doc
	return &snapshot
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	newContent, err := applyChanges(doc.Content(), changes)
	if err != nil {
		return fmt.Errorf("failed to apply changes: %w", err)
	}

	if err := doc.SetContent(newContent, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyChanges applies a list of content changes in order
func applyChanges(content string, changes []protocol.TextDocumentContentChangeEvent) (string, error) {
	result := content

	for _, change := range changes {
		// If no range is provided, this is a full document update
		if change.Range == nil {
			result = change.Text
			continue
		}

		newContent, err := applyIncrementalChange(result, *change.Range, change.Text)
		if err != nil {
			return "", err
		}
		result = newContent
	}

	return result, nil
}

// applyIncrementalChange applies a single incremental change to the content.
// A line one past the end is accepted so clients can append at EOF.
func applyIncrementalChange(content string, changeRange protocol.Range, text string) (string, error) {
	lineCount := strings.Count(content, "\n") + 1

	if int(changeRange.Start.Line) > lineCount {
		return "", fmt.Errorf("start line %d out of bounds (total lines: %d)", changeRange.Start.Line, lineCount)
	}
	if int(changeRange.End.Line) > lineCount {
		return "", fmt.Errorf("end line %d out of bounds (total lines: %d)", changeRange.End.Line, lineCount)
	}

	doc := &Document{content: content}
	return doc.ApplyEdits([]TextEdit{{
		Range:   position.RangeFromProtocol(changeRange),
		NewText: text,
	}})
}
