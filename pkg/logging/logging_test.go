package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Name: "gridkit"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("ordered")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "gridkit", entry["logger"])
	assert.Equal(t, "ordered", entry["msg"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Name: "scroll"}, &buf)
	require.NoError(t, err)

	logger.Debug("edge auto-scroll")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "scroll.")
	assert.Contains(t, buf.String(), "edge auto-scroll")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridkit.log")
	logger, err := New(Config{Level: "warn", File: path}, &bytes.Buffer{})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("obsolete option")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"obsolete option"`)
	assert.NotContains(t, string(data), "dropped")
}
