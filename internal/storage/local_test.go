package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndRemove(t *testing.T) {
	base := t.TempDir()
	local, err := NewLocal(base)
	require.NoError(t, err)

	ctx := context.Background()
	path, err := local.Save(ctx, "1710000000000_abcd1234_captura.png", bytes.NewReader([]byte("datos")))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "datos", string(content))

	require.NoError(t, local.Remove(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSaveStripsDirectoryComponents(t *testing.T) {
	base := t.TempDir()
	local, err := NewLocal(base)
	require.NoError(t, err)

	path, err := local.Save(context.Background(), "../escape.txt", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "escape.txt"), path)
}

func TestLocalRemoveRejectsOutsidePaths(t *testing.T) {
	base := t.TempDir()
	local, err := NewLocal(base)
	require.NoError(t, err)

	err = local.Remove(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

func TestLocalRemoveMissingFileIsNoop(t *testing.T) {
	base := t.TempDir()
	local, err := NewLocal(base)
	require.NoError(t, err)

	assert.NoError(t, local.Remove(context.Background(), filepath.Join(base, "nunca-existio.bin")))
}
