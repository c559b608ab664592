package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerAdapter_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("watch http://admin/tasks")
	cfg.Dir = dir

	log, err := NewLoggerAdapter(cfg)
	require.NoError(t, err)

	log.WithField("run_id", "r-1").Info("Polling started", "tasks", 2)
	require.NoError(t, log.Close())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name(), "_watch_http___admin_tasks.log"))

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Polling started", entry["message"])
	assert.Equal(t, "r-1", entry["run_id"])
	assert.Equal(t, float64(2), entry["tasks"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestNewLoggerAdapter_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig("x")
	cfg.Dir = t.TempDir()
	cfg.Level = "loud"

	_, err := NewLoggerAdapter(cfg)
	assert.Error(t, err)
}

func TestWriterLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, zapcore.InfoLevel)

	log.Debug("hidden")
	log.WithFields(map[string]any{"status": 500}).Error("Poll request failed")
	require.NoError(t, log.Close())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"Poll request failed"`)
	assert.Contains(t, out, `"status":500`)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "taskwatch", sanitize(""))
	assert.Equal(t, "a_b-c", sanitize("a b-c"))
	assert.Len(t, sanitize(strings.Repeat("x", 100)), 60)
}
