package extract

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/markup"
	"bennypowers.dev/vhls/internal/position"
)

const (
	hookName    = "useTranslations"
	hookPackage = "@vocab/react"
)

// Plan is everything an extraction changes: edits to the component and one
// catalog entry.
type Plan struct {
	Highlight   *Highlight
	Key         string
	Entry       catalog.Entry
	Edits       []documents.TextEdit
	CatalogPath string
}

// NewPlan analyses sel in doc and computes the edits. When the component
// does not use the translation hook yet, the imports go to the top of the
// file and the hook call to the first line of the enclosing component.
func NewPlan(doc *documents.Document, sel position.Range, opts Options) (*Plan, error) {
	h, err := Analyse(doc, sel, opts)
	if err != nil {
		return nil, err
	}

	key, entry := h.CatalogEntry(opts.MaxKeyLength)
	p := &Plan{
		Highlight:   h,
		Key:         key,
		Entry:       entry,
		CatalogPath: catalog.PathFor(doc.Path(), opts.CatalogDir, opts.CatalogFile),
	}

	if !strings.Contains(doc.Content(), hookName) {
		p.Edits = append(p.Edits,
			documents.TextEdit{
				Range:   position.Range{},
				NewText: importLines(doc.Path(), opts.CatalogDir),
			},
			hookEdit(doc, h.Selection, opts),
		)
	}

	p.Edits = append(p.Edits, documents.TextEdit{
		Range:   h.Selection,
		NewText: h.Replacement(opts.callee(), opts.MaxKeyLength),
	})
	return p, nil
}

// Apply returns the document content with the plan's edits applied.
func (p *Plan) Apply(doc *documents.Document) (string, error) {
	return doc.ApplyEdits(p.Edits)
}

// WriteCatalog records the plan's entry in its catalog file.
func (p *Plan) WriteCatalog(overwriteCorrupt bool) error {
	return catalog.Add(p.CatalogPath, p.Key, p.Entry, overwriteCorrupt)
}

func importLines(componentPath, catalogDir string) string {
	return fmt.Sprintf("import { %s } from '%s';\nimport translations from '%s';\n",
		hookName, hookPackage, catalogImportPath(componentPath, catalogDir))
}

// catalogImportPath is the module specifier of the catalog directory,
// relative to the component.
func catalogImportPath(componentPath, catalogDir string) string {
	if catalogDir == "" {
		catalogDir = catalog.DefaultDir
	}
	if filepath.IsAbs(catalogDir) {
		if rel, err := filepath.Rel(filepath.Dir(componentPath), catalogDir); err == nil {
			catalogDir = rel
		}
	}
	spec := path.Clean(filepath.ToSlash(catalogDir))
	if spec == "." || spec == ".." {
		return spec
	}
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") && !strings.HasPrefix(spec, "/") {
		spec = "./" + spec
	}
	return spec
}

// hookEdit inserts the hook call at the top of the enclosing component. A
// body whose first statement shares the opening bracket's line is split so
// the hook gets a line of its own before that statement.
func hookEdit(doc *documents.Document, sel position.Range, opts Options) documents.TextEdit {
	binding := "t"
	if callee := opts.callee(); callee != "t" {
		binding = "t: " + callee
	}
	hook := fmt.Sprintf("const { %s } = %s(translations);", binding, hookName)

	site, ok := markup.FindHookSite(opts.Dialect, doc.Content(), doc.OffsetAt(sel.Start))
	if ok && site.Inline {
		open := doc.PositionAt(site.Open)
		outer := leadingSpace(doc.LineText(open.Line))
		inner := outer + "  "
		suffix := "\n" + inner
		if site.First == site.Open {
			suffix = "\n" + outer
		}
		return documents.TextEdit{
			Range:   position.Range{Start: open, End: doc.PositionAt(site.First)},
			NewText: "\n" + inner + hook + suffix,
		}
	}

	line := sel.Start.Line
	if ok {
		line = site.Line
	}
	at := position.Position{Line: line}
	return documents.TextEdit{
		Range:   position.Range{Start: at, End: at},
		NewText: leadingSpace(doc.LineText(line)) + hook + "\n",
	}
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
