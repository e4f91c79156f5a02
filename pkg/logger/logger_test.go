package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFile_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")

	log, err := NewWithFile(path)
	require.NoError(t, err)

	log.Info("snapshot refreshed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "snapshot refreshed")
	assert.Contains(t, string(data), "\"timestamp\"")
}

func TestNamed_NilBase(t *testing.T) {
	assert.NotNil(t, Named(nil, "svc"))
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() { Must(nil, assert.AnError) })
}
