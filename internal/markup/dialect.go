package markup

import (
	"path/filepath"
	"strings"
)

// Dialect selects the grammar used to parse selections.
type Dialect int

const (
	// DialectJSX is JavaScript with JSX.
	DialectJSX Dialect = iota
	// DialectTSX is TypeScript with JSX, so attributes may carry type
	// annotations.
	DialectTSX
)

func (d Dialect) String() string {
	if d == DialectTSX {
		return "tsx"
	}
	return "jsx"
}

// DialectFor picks a dialect from an LSP language ID, falling back to the
// file extension.
func DialectFor(languageID, path string) Dialect {
	switch languageID {
	case "typescript", "typescriptreact":
		return DialectTSX
	case "javascript", "javascriptreact":
		return DialectJSX
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return DialectTSX
	}
	return DialectJSX
}
