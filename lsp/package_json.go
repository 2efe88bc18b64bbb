package lsp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/vhls/lsp/types"
	"github.com/tidwall/jsonc"
)

// readPackageJsonFile reads and parses package.json from the given root path.
// Returns the parsed JSON as a map, or nil if the file doesn't exist.
func readPackageJsonFile(rootPath string) (map[string]any, error) {
	packageJSONPath := filepath.Join(rootPath, "package.json")

	// Check if package.json exists
	if _, err := os.Stat(packageJSONPath); os.IsNotExist(err) {
		return nil, nil // Not an error, just no config
	}

	data, err := os.ReadFile(packageJSONPath) //nolint:gosec // G304: Reading workspace package.json - local trusted environment
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	data = jsonc.ToJSON(data)

	var pkgJSON map[string]any
	if err := json.Unmarshal(data, &pkgJSON); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	return pkgJSON, nil
}

// extractConfigMap extracts the vocabHelper configuration map.
// Returns nil if the field doesn't exist (not an error).
func extractConfigMap(pkgJSON map[string]any) (map[string]any, error) {
	section, ok := pkgJSON[types.ConfigSection]
	if !ok || section == nil {
		return nil, nil // No config, not an error
	}

	configMap, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", types.ConfigSection)
	}

	return configMap, nil
}

// ReadPackageJsonConfig reads the vocabHelper configuration from package.json.
// Returns nil if no configuration exists (not an error).
func ReadPackageJsonConfig(rootPath string) (map[string]any, error) {
	if rootPath == "" {
		return nil, nil
	}

	pkgJSON, err := readPackageJsonFile(rootPath)
	if err != nil || pkgJSON == nil {
		return nil, err
	}

	return extractConfigMap(pkgJSON)
}
