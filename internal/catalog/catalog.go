// Package catalog reads, merges and writes translation catalogs: JSON objects
// mapping a translation key to {"message": ..., "description": ...}.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

const (
	// DefaultDir is the catalog directory next to a component.
	DefaultDir = ".vocab"
	// DefaultFile is the catalog file inside DefaultDir.
	DefaultFile = "translations.json"
)

// Entry is one catalog value.
type Entry struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// Catalog is an ordered key to entry mapping. Values read from disk are
// kept verbatim, so fields this package does not know about survive a
// rewrite.
type Catalog struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{values: make(map[string]json.RawMessage)}
}

// Len returns the number of keys.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the keys in file order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Has reports whether key is present.
func (c *Catalog) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Get returns the entry stored under key.
func (c *Catalog) Get(key string) (Entry, bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return Entry{}, false, nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, true, &InvalidEntryError{Key: key, Cause: err}
	}
	return e, true, nil
}

// Set stores e under key. An existing key keeps its position and is
// replaced; a new key is appended.
func (c *Catalog) Set(key string, e Entry) error {
	raw, err := marshal(e, "")
	if err != nil {
		return fmt.Errorf("encoding entry %q: %w", key, err)
	}
	c.setRaw(key, raw)
	return nil
}

func (c *Catalog) setRaw(key string, raw json.RawMessage) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = raw
}

// Merge copies every entry of other over c. On a key collision the entry
// from other wins.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		c.setRaw(key, other.values[key])
	}
}

// Parse reads a catalog. Comments and trailing commas are tolerated; empty
// or blank input is an empty catalog. Anything other than a JSON object is a
// *CorruptError.
func Parse(data []byte) (*Catalog, error) {
	c := New()
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return New(), &CorruptError{Cause: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return New(), &CorruptError{Cause: fmt.Errorf("expected an object, found %v", tok)}
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return New(), &CorruptError{Cause: err}
		}
		key, ok := tok.(string)
		if !ok {
			return New(), &CorruptError{Cause: fmt.Errorf("expected a key, found %v", tok)}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return New(), &CorruptError{Cause: err}
		}
		c.setRaw(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return New(), &CorruptError{Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return New(), &CorruptError{Cause: errors.New("unexpected data after the top-level object")}
	}
	return c, nil
}

// Bytes renders the catalog as JSON indented with two spaces, in key order.
// Markup in messages is written as is, not HTML-escaped.
func (c *Catalog) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")

		k, err := marshal(key, "")
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")

		if err := json.Indent(&buf, c.values[key], "  ", "  "); err != nil {
			return nil, fmt.Errorf("encoding entry %q: %w", key, err)
		}
	}
	if len(c.keys) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return c.Bytes()
}

// PathFor returns the catalog path for the component at componentPath.
// Empty dir or file fall back to the defaults.
func PathFor(componentPath, dir, file string) string {
	if dir == "" {
		dir = DefaultDir
	}
	if file == "" {
		file = DefaultFile
	}
	if filepath.IsAbs(dir) {
		return filepath.Join(dir, file)
	}
	return filepath.Join(filepath.Dir(componentPath), dir, file)
}

func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
