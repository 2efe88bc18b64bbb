package workspace

import (
	"fmt"

	"bennypowers.dev/vhls/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs an error message to stderr and optionally to the LSP client
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	notifyClient(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

// LogWarning logs a warning message to stderr and optionally to the LSP client
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	notifyClient(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: message,
	})
}

// ShowMessage sends a message to be displayed to the user
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	notifyClient(context, protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}

// notifyClient sends from a goroutine so handlers never block on the
// connection. Contexts without a Notify func (tests) are skipped.
func notifyClient(context *glsp.Context, method string, params any) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(method, params)
}
