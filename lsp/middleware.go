package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/methods/workspace"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP handler that returns (result, error) with middleware
// Returns the underlying function type so it's compatible with protocol.Handler field types
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)

		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		logWarnings(req, methodName)

		if err != nil {
			return result, wrapError(ctx, methodName, err)
		}

		log.Debug("%s completed successfully", methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)

		req := types.NewRequestContext(s, ctx)
		err = handler(req, params)
		logWarnings(req, methodName)

		if err != nil {
			return wrapError(ctx, methodName, err)
		}

		log.Debug("%s completed successfully", methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)

		req := types.NewRequestContext(s, ctx)
		err = handler(req)
		logWarnings(req, methodName)

		if err != nil {
			return wrapError(ctx, methodName, err)
		}

		log.Debug("%s completed successfully", methodName)
		return nil
	}
}

func recoverPanic(ctx *glsp.Context, methodName string, r any) error {
	log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
	return fmt.Errorf("internal error in %s", methodName)
}

func wrapError(ctx *glsp.Context, methodName string, err error) error {
	workspace.LogError(ctx, "%s: %v", methodName, err)
	return fmt.Errorf("%s: %w", methodName, err)
}

// logWarnings reports the non-fatal problems a handler collected.
func logWarnings(req *types.RequestContext, methodName string) {
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %v", methodName, w)
	}
}
