package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "JSON", Output: &buf})
	t.Cleanup(func() { Init(Options{}) })

	Log.WithField("step", 3).Debug("tree grew")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tree grew", entry["msg"])
	assert.Equal(t, float64(3), entry["step"])
	assert.Equal(t, "debug", entry["level"])
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "chatty", Output: &buf})
	t.Cleanup(func() { Init(Options{}) })

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	Log.Debug("hidden")
	Log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestOpenFile(t *testing.T) {
	w, closeFn, err := OpenFile("-")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "sprout.log")
	w, closeFn, err = OpenFile(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(content))

	_, _, err = OpenFile(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}
