package lsp

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"bennypowers.dev/vhls/internal/log"
	"bennypowers.dev/vhls/lsp/testutil"
	"bennypowers.dev/vhls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestMethod_PanicRecovery(t *testing.T) {
	// Capture log output
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	panicHandler := func(req *types.RequestContext, params string) (string, error) {
		panic("test panic")
	}

	wrapped := method(testutil.NewMockServerContext(), "testMethod", panicHandler)

	// A nil context still recovers, it just doesn't notify the client
	result, err := wrapped(nil, "test params")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	assert.Contains(t, err.Error(), "testMethod")
	assert.Empty(t, result)
	assert.Contains(t, logBuf.String(), "PANIC")
}

func TestMethod_ErrorWrapping(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	sentinel := errors.New("handler error")
	errHandler := func(req *types.RequestContext, params string) (string, error) {
		return "", sentinel
	}

	client := &testutil.Client{}
	wrapped := method(testutil.NewMockServerContext(), "testMethod", errHandler)
	result, err := wrapped(client.Context(), "params")

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "testMethod")
	assert.Empty(t, result)
	assert.Contains(t, logBuf.String(), "ERROR")

	assert.Eventually(t, func() bool {
		return len(client.NotificationsFor(protocol.ServerWindowLogMessage)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMethod_SuccessLogging(t *testing.T) {
	// Capture log output and enable debug level
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	log.SetLevel(log.LevelDebug)
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(log.LevelInfo)
	}()

	successHandler := func(req *types.RequestContext, params string) (string, error) {
		return "success result", nil
	}

	wrapped := method(testutil.NewMockServerContext(), "testMethod", successHandler)
	result, err := wrapped(nil, "params")

	assert.NoError(t, err)
	assert.Equal(t, "success result", result)
	assert.Contains(t, logBuf.String(), "started")
	assert.Contains(t, logBuf.String(), "completed")
}

func TestMethod_ReportsWarnings(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	handler := func(req *types.RequestContext, params string) (string, error) {
		req.AddWarning(errors.New("catalog is stale"))
		return "ok", nil
	}

	client := &testutil.Client{}
	wrapped := method(testutil.NewMockServerContext(), "testMethod", handler)
	result, err := wrapped(client.Context(), "params")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Contains(t, logBuf.String(), "testMethod: catalog is stale")

	assert.Eventually(t, func() bool {
		msgs := client.NotificationsFor(protocol.ServerWindowLogMessage)
		if len(msgs) != 1 {
			return false
		}
		params, ok := msgs[0].(*protocol.LogMessageParams)
		return ok && params.Type == protocol.MessageTypeWarning
	}, time.Second, 10*time.Millisecond)
}

func TestNotify_PanicRecovery(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	panicHandler := func(req *types.RequestContext, params int) error {
		panic("notify panic")
	}

	wrapped := notify(testutil.NewMockServerContext(), "testNotify", panicHandler)
	err := wrapped(nil, 42)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	assert.Contains(t, logBuf.String(), "PANIC")
}

func TestNotify_PassesServer(t *testing.T) {
	mock := testutil.NewMockServerContext()
	mock.SetRootPath("/workspace")

	var seen string
	wrapped := notify(mock, "testNotify", func(req *types.RequestContext, params int) error {
		seen = req.Server.RootPath()
		return nil
	})

	require.NoError(t, wrapped(nil, 1))
	assert.Equal(t, "/workspace", seen)
}

func TestNoParam_PanicRecovery(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(nil)

	panicHandler := func(req *types.RequestContext) error {
		panic("noParam panic")
	}

	wrapped := noParam(testutil.NewMockServerContext(), "shutdown", panicHandler)
	err := wrapped(nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	assert.Contains(t, logBuf.String(), "PANIC")
}

func TestNoParam_Success(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	log.SetLevel(log.LevelDebug)
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(log.LevelInfo)
	}()

	wrapped := noParam(testutil.NewMockServerContext(), "shutdown", func(req *types.RequestContext) error {
		return nil
	})
	err := wrapped(nil)

	assert.NoError(t, err)
	assert.Contains(t, logBuf.String(), "completed")
}
