package lsp

import (
	"errors"
	"strings"

	"bennypowers.dev/vhls/internal/collections"
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/lsp/types"
)

// extractableLanguages are the language IDs offered the extract action
// regardless of the files globs.
var extractableLanguages = collections.NewSet(
	"javascript",
	"javascriptreact",
	"typescript",
	"typescriptreact",
)

// GetConfig returns the effective server configuration
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig updates the server configuration
func (s *Server) SetConfig(config types.ServerConfig) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = config
}

// SetClientSettings records the client's settings section and recomputes the
// effective configuration. On error the previous configuration stays.
func (s *Server) SetClientSettings(settings map[string]any) error {
	s.configMu.Lock()
	defer s.configMu.Unlock()

	cfg, err := layerConfig(s.fileSettings, s.packageSettings, settings)
	if err != nil {
		return err
	}
	s.clientSettings = settings
	s.config = cfg
	return nil
}

// LoadWorkspaceConfig rereads .config/vocab-helper.yaml and package.json from
// the workspace root. Layers that fail to load are left as they were.
func (s *Server) LoadWorkspaceConfig() error {
	rootPath := s.RootPath()
	if rootPath == "" {
		return nil // No workspace, nothing to load
	}

	var errs []error

	fileSettings, err := ReadConfigFile(rootPath)
	if err != nil {
		errs = append(errs, err)
	}

	packageSettings, err := ReadPackageJsonConfig(rootPath)
	if err != nil {
		errs = append(errs, err)
	}

	s.configMu.Lock()
	defer s.configMu.Unlock()

	if fileSettings != nil {
		s.fileSettings = fileSettings
		log.Info("Loaded configuration from %s", configFileDir)
	}
	if packageSettings != nil {
		s.packageSettings = packageSettings
		log.Info("Loaded %s from package.json", types.ConfigSection)
	}

	cfg, err := layerConfig(s.fileSettings, s.packageSettings, s.clientSettings)
	if err != nil {
		errs = append(errs, err)
	} else {
		s.config = cfg
	}

	return errors.Join(errs...)
}

// IsExtractable reports whether the document at uri gets the extract action:
// either its language is JavaScript or TypeScript, or its path matches the
// configured files globs.
func (s *Server) IsExtractable(uri string) bool {
	if doc := s.documents.Get(uri); doc != nil {
		if extractableLanguages.Has(strings.ToLower(doc.LanguageID())) {
			return true
		}
	}
	return s.GetConfig().Matches(s.RootPath(), uriutil.URIToPath(uri))
}

// layerConfig applies each settings layer, lowest precedence first, on top of
// the defaults.
func layerConfig(layers ...map[string]any) (types.ServerConfig, error) {
	cfg := types.DefaultConfig()
	for _, layer := range layers {
		next, err := cfg.Apply(layer)
		if err != nil {
			return cfg, err
		}
		cfg = next
	}
	return cfg, nil
}
