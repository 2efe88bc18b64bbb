package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/extract"
	"bennypowers.dev/vhls/internal/highlight"
	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/lsp"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/spf13/cobra"
)

var (
	extractRange        string
	extractWrite        bool
	extractMaxKeyLength int
	extractCatalog      string
	extractWorkspace    string
)

// extractCmd runs one extraction without an editor
var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract the text at --range into the component's translation catalog",
	Long: `Extract runs the same extraction as the editor code action. Ranges are
one-based LINE:COL-LINE:COL, as editors display them.

Without --write the planned edits are printed as JSON and nothing changes on
disk. Workspace configuration is read from --workspace (default: current
directory).`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractRange, "range", "r", "", "Selection as LINE:COL-LINE:COL (required)")
	extractCmd.Flags().BoolVarP(&extractWrite, "write", "w", false, "Rewrite FILE and update the catalog")
	extractCmd.Flags().IntVar(&extractMaxKeyLength, "max-key-length", 0, "Truncate generated keys (overrides configuration)")
	extractCmd.Flags().StringVar(&extractCatalog, "catalog", "", "Catalog file name inside the catalog directory (overrides configuration)")
	extractCmd.Flags().StringVar(&extractWorkspace, "workspace", "", "Workspace root for configuration (default: current directory)")
	_ = extractCmd.MarkFlagRequired("range")
}

// extractOutput is what the extract command prints.
type extractOutput struct {
	Kind        highlight.Kind `json:"kind"`
	Key         string         `json:"key"`
	Message     string         `json:"message"`
	CatalogPath string         `json:"catalogPath"`
	Edits       []editOutput   `json:"edits"`
	Written     bool           `json:"written"`
}

type editOutput struct {
	Range   position.Range `json:"range"`
	NewText string         `json:"newText"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	sel, err := position.ParseRange(extractRange)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path) //nolint:gosec // G304: reading the file the user named
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := documents.NewDocument(uriutil.PathToURI(path), "", 1, string(content))
	plan, err := extract.NewPlan(doc, sel, cfg.ExtractOptions(doc.LanguageID(), path))
	if err != nil {
		return err
	}

	out := extractOutput{
		Kind:        plan.Highlight.Kind,
		Key:         plan.Key,
		Message:     plan.Entry.Message,
		CatalogPath: plan.CatalogPath,
	}
	for _, e := range plan.Edits {
		out.Edits = append(out.Edits, editOutput{Range: e.Range, NewText: e.NewText})
	}

	if extractWrite {
		updated, err := plan.Apply(doc)
		if err != nil {
			return err
		}
		// Catalog first, so a failed write leaves the component untouched
		if err := plan.WriteCatalog(cfg.OverwriteCorruptCatalog); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil { //nolint:gosec // G306: source files keep conventional permissions
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		out.Written = true
		log.Info("Extracted %q into %s", plan.Key, plan.CatalogPath)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// loadConfig layers the workspace configuration and the command's flags.
func loadConfig(cmd *cobra.Command) (types.ServerConfig, error) {
	root := extractWorkspace
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return types.ServerConfig{}, err
		}
		root = wd
	}

	server, err := lsp.NewServer()
	if err != nil {
		return types.ServerConfig{}, err
	}

	server.SetRootPath(root)
	if err := server.LoadWorkspaceConfig(); err != nil {
		log.Warn("Ignoring workspace configuration: %v", err)
	}
	cfg := server.GetConfig()

	if cmd.Flags().Changed("max-key-length") {
		n := extractMaxKeyLength
		cfg.MaxTranslationKeyLength = &n
	}
	if extractCatalog != "" {
		cfg.CatalogFile = extractCatalog
	}
	return cfg, nil
}
