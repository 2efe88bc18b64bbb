package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads the catalog at path. A missing file is an empty catalog. A
// corrupt file yields an empty catalog together with a *CorruptError so the
// caller can decide whether to overwrite it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: catalog path is derived from an open workspace document
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			corrupt.Path = path
		}
		return c, err
	}
	return c, nil
}

// Save writes c to path, creating the containing directory.
func Save(path string, c *Catalog) error {
	data, err := c.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: catalogs are committed source files
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Add merges one entry into the catalog at path, new entry winning. When
// the existing file is corrupt it is replaced only if overwriteCorrupt is
// set; otherwise the *CorruptError is returned and nothing is written.
func Add(path, key string, e Entry, overwriteCorrupt bool) error {
	c, err := Load(path)
	if err != nil && !(overwriteCorrupt && errors.Is(err, ErrCorrupt)) {
		return err
	}
	if err := c.Set(key, e); err != nil {
		return err
	}
	return Save(path, c)
}
