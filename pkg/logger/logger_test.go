package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")

	log.Info("booking id=%d created", 1)
	log.Warn("slot %s is full", "10:00")
	log.Error("storage failed: %v", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "booking id=1 created")
	assert.Contains(t, out, "[WARN] slot 10:00 is full")
	assert.Contains(t, out, "[ERROR] storage failed: timeout")
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("hello %s", "salon")
	require.NoError(t, log.Close())
	require.NoError(t, log.Close())
}
