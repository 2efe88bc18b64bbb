package workspace

import (
	"encoding/json"
	"errors"
	"fmt"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	// ErrUnknownCommand is returned for commands the server does not advertise.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArguments is returned when command arguments do not decode.
	ErrInvalidArguments = errors.New("invalid command arguments")
	// ErrDocumentNotOpen is returned when a command targets a closed document.
	ErrDocumentNotOpen = errors.New("document is not open")
	// ErrNoClient is returned when a command needs a client round trip but
	// the request has no connection.
	ErrNoClient = errors.New("no client connection")
)

// runAsync runs client round trips off the message loop. Calling the client
// synchronously from a handler deadlocks, because the loop cannot read the
// response while the handler blocks.
var runAsync = func(f func()) { go f() }

// ExecuteCommand handles the workspace/executeCommand request
func ExecuteCommand(req *types.RequestContext, params *protocol.ExecuteCommandParams) (any, error) {
	log.Info("Executing command: %s", params.Command)

	switch params.Command {
	case types.CommandExtractTranslationString:
		return ExtractTranslationString(req, params.Arguments)
	case types.CommandOpenTranslationsFile:
		return OpenTranslationsFile(req, params.Arguments)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, params.Command)
}

// decodeArguments decodes positional command arguments into targets.
// Arguments arrive as generic JSON values, so each goes through a JSON
// round trip.
func decodeArguments(args []any, targets ...any) error {
	if len(args) < len(targets) {
		return fmt.Errorf("%w: want %d, got %d", ErrInvalidArguments, len(targets), len(args))
	}
	for i, target := range targets {
		data, err := json.Marshal(args[i])
		if err != nil {
			return fmt.Errorf("%w: argument %d: %v", ErrInvalidArguments, i, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("%w: argument %d: %v", ErrInvalidArguments, i, err)
		}
	}
	return nil
}
