package main

import (
	"fmt"
	"os"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel string
)

// rootCmd serves the language server over stdio
var rootCmd = &cobra.Command{
	Use:   "vocab-helper-language-server",
	Short: "Language server that extracts UI strings into Vocab translation catalogs",
	Long: `vocab-helper-language-server offers an "Extract translation string" code
action for JSX and TypeScript components. The selected text is replaced with a
translation call and recorded in the component's .vocab/translations.json.

Run without arguments to serve LSP over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runServe creates the LSP server and runs it with stdio transport
func runServe() error {
	server, err := lsp.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create LSP server: %w", err)
	}
	defer func() { _ = server.Close() }()

	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		return err
	}
	return nil
}
