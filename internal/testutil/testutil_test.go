package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "backend: file")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "cache"))

	info, err := os.Stat(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
