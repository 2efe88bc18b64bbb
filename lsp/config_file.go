package lsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// configFileDir is where the workspace config file lives, relative to the root.
const configFileDir = ".config"

// configFileNames are tried in order; the first one found wins.
var configFileNames = []string{
	"vocab-helper.yaml",
	"vocab-helper.yml",
	"vocab-helper.json",
}

// ReadConfigFile reads configuration from .config/vocab-helper.{yaml,yml,json}.
// Returns nil if no config file exists (not an error).
func ReadConfigFile(rootPath string) (map[string]any, error) {
	if rootPath == "" {
		return nil, nil
	}

	for _, name := range configFileNames {
		path := filepath.Join(rootPath, configFileDir, name)
		data, err := os.ReadFile(path) //nolint:gosec // G304: Reading workspace config - local trusted environment
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return parseConfigFile(path, data)
	}

	return nil, nil
}

// parseConfigFile decodes a config file. JSON files may carry comments.
func parseConfigFile(path string, data []byte) (map[string]any, error) {
	var settings map[string]any
	var err error
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(jsonc.ToJSON(data), &settings)
	} else {
		err = yaml.Unmarshal(data, &settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return settings, nil
}
