package types

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/extract"
	"bennypowers.dev/vhls/internal/markup"
	"github.com/bmatcuk/doublestar/v4"
)

// ConfigSection is the settings key the server reads its configuration from,
// both in client settings and in package.json.
const ConfigSection = "vocabHelper"

// DefaultFiles matches the component sources that get the extract action.
var DefaultFiles = []string{"**/*.{js,jsx,ts,tsx,mjs,cjs,mts,cts}"}

// ServerConfig represents the server configuration
type ServerConfig struct {
	// MaxTranslationKeyLength truncates generated keys of plain strings.
	// Null or a value of zero or less disables truncation.
	MaxTranslationKeyLength *int `json:"maxTranslationKeyLength" yaml:"maxTranslationKeyLength"`

	// FormatAfterReplace asks the client to format the document after an
	// extraction.
	FormatAfterReplace bool `json:"formatAfterReplace" yaml:"formatAfterReplace"`

	// CatalogDir is the catalog directory, relative to the component unless
	// absolute. Default: ".vocab"
	CatalogDir string `json:"catalogDir" yaml:"catalogDir"`

	// CatalogFile is the catalog file name inside CatalogDir.
	// Default: "translations.json"
	CatalogFile string `json:"catalogFile" yaml:"catalogFile"`

	// Files are doublestar globs, relative to the workspace root, of the
	// documents offered the extract action.
	Files []string `json:"files" yaml:"files"`

	// OverwriteCorruptCatalog replaces a catalog that is not valid JSON
	// instead of failing the extraction. Default: true
	OverwriteCorruptCatalog bool `json:"overwriteCorruptCatalog" yaml:"overwriteCorruptCatalog"`

	// TranslationFunction is the name generated code calls. Default: "t"
	TranslationFunction string `json:"translationFunction" yaml:"translationFunction"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		MaxTranslationKeyLength: nil,
		FormatAfterReplace:      false,
		CatalogDir:              catalog.DefaultDir,
		CatalogFile:             catalog.DefaultFile,
		Files:                   append([]string(nil), DefaultFiles...),
		OverwriteCorruptCatalog: true,
		TranslationFunction:     markup.DefaultCallee,
	}
}

// Apply returns c with every field present in settings replaced. Fields
// missing from settings keep their value; an explicit null clears
// maxTranslationKeyLength.
func (c ServerConfig) Apply(settings map[string]any) (ServerConfig, error) {
	if len(settings) == 0 {
		return c, nil
	}

	// Convert to JSON and back to parse into struct
	jsonBytes, err := json.Marshal(settings)
	if err != nil {
		return c, fmt.Errorf("failed to marshal settings: %w", err)
	}

	next := c
	next.Files = append([]string(nil), c.Files...)
	if err := json.Unmarshal(jsonBytes, &next); err != nil {
		return c, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return next, nil
}

// SettingsSection finds the server's section in a settings payload. Clients
// send either {"vocabHelper": {...}} or the section itself.
func SettingsSection(settings any) (map[string]any, error) {
	if settings == nil {
		return nil, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings is not a map")
	}

	for _, key := range []string{ConfigSection, "vocab-helper"} {
		if val, exists := settingsMap[key]; exists {
			if val == nil {
				return nil, nil
			}
			section, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s must be an object", key)
			}
			return section, nil
		}
	}
	return settingsMap, nil
}

// MaxKeyLength returns the truncation limit, zero when disabled.
func (c ServerConfig) MaxKeyLength() int {
	if c.MaxTranslationKeyLength == nil || *c.MaxTranslationKeyLength < 0 {
		return 0
	}
	return *c.MaxTranslationKeyLength
}

// ExtractOptions returns the extraction options for a document.
func (c ServerConfig) ExtractOptions(languageID, path string) extract.Options {
	return extract.Options{
		Dialect:      markup.DialectFor(languageID, path),
		Callee:       c.TranslationFunction,
		MaxKeyLength: c.MaxKeyLength(),
		CatalogDir:   c.CatalogDir,
		CatalogFile:  c.CatalogFile,
	}
}

// Matches reports whether path, made relative to rootPath when possible,
// matches one of the Files globs. An empty Files list matches the defaults.
func (c ServerConfig) Matches(rootPath, path string) bool {
	patterns := c.Files
	if len(patterns) == 0 {
		patterns = DefaultFiles
	}

	candidate := path
	if rootPath != "" {
		if rel, err := filepath.Rel(rootPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			candidate = rel
		}
	}
	candidate = filepath.ToSlash(candidate)

	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, candidate); err == nil && ok {
			return true
		}
	}
	return false
}
