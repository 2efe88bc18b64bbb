package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/uriutil"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// OpenTranslationsFileResult names the catalog of a component.
type OpenTranslationsFileResult struct {
	URI    string `json:"uri"`
	Exists bool   `json:"exists"`
}

// OpenTranslationsFile runs the open command. The argument is the component
// URI; the document does not need to be open.
//
// Clients that support window/showDocument are asked to open the catalog.
// Others get the URI in the result.
func OpenTranslationsFile(req *types.RequestContext, args []any) (any, error) {
	var uri protocol.DocumentUri
	if err := decodeArguments(args, &uri); err != nil {
		return nil, err
	}

	cfg := req.Server.GetConfig()
	path := catalog.PathFor(uriutil.URIToPath(uri), cfg.CatalogDir, cfg.CatalogFile)
	result := &OpenTranslationsFileResult{URI: uriutil.PathToURI(path)}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		ShowMessage(req.GLSP, protocol.MessageTypeInfo,
			fmt.Sprintf("Could not find a translations file for this component.\nPath: %s", path))
		return result, nil
	}
	result.Exists = true

	ctx := req.GLSP
	if !req.Server.SupportsShowDocument() || ctx == nil || ctx.Call == nil {
		return result, nil
	}

	takeFocus := true
	params := protocol.ShowDocumentParams{URI: result.URI, TakeFocus: &takeFocus}
	runAsync(func() {
		var shown protocol.ShowDocumentResult
		ctx.Call(protocol.ServerWindowShowDocument, params, &shown)
		if !shown.Success {
			LogWarning(ctx, "client did not open %s", result.URI)
		}
	})
	return result, nil
}
