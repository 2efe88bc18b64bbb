package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/vhls/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil) // Reset after test

	tests := []struct {
		name    string
		level   log.Level
		present []string
		absent  []string
	}{
		{
			name:    "Info level logs Info, Warn, Error but not Debug",
			level:   log.LevelInfo,
			present: []string{"info message", "warn message", "error message"},
			absent:  []string{"debug message"},
		},
		{
			name:    "Error level only logs Error",
			level:   log.LevelError,
			present: []string{"error message"},
			absent:  []string{"debug message", "info message", "warn message"},
		},
		{
			name:    "Debug level logs everything",
			level:   log.LevelDebug,
			present: []string{"debug message", "info message", "warn message", "error message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			log.SetLevel(tt.level)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")

			output := buf.String()
			for _, want := range tt.present {
				assert.Contains(t, output, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.LevelInfo)
	defer log.SetOutput(nil)

	t.Run("Messages include [VHLS] prefix and level label", func(t *testing.T) {
		buf.Reset()
		log.Info("test message")
		assert.Equal(t, "[VHLS] INFO: test message\n", buf.String())
	})

	t.Run("Format strings work correctly", func(t *testing.T) {
		buf.Reset()
		log.Warn("catalog for %s is corrupt", "file:///src/App.tsx")
		assert.Contains(t, buf.String(), "WARN: catalog for file:///src/App.tsx is corrupt")
	})

	t.Run("Trailing newline in format is not doubled", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1\n")
		log.Info("message 2")

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "message 1")
		assert.Contains(t, lines[1], "message 2")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.LevelDebug, false},
		{"INFO", log.LevelInfo, false},
		{"", log.LevelInfo, false},
		{"warning", log.LevelWarn, false},
		{" error ", log.LevelError, false},
		{"loud", log.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := log.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, name string) log.Level {
	t.Helper()
	level, err := log.ParseLevel(name)
	require.NoError(t, err)
	return level
}

func TestGetLevel(t *testing.T) {
	originalLevel := log.GetLevel()
	defer log.SetLevel(originalLevel)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	log.SetLevel(log.LevelError)
	assert.Equal(t, log.LevelError, log.GetLevel())
}
