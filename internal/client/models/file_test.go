package models

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileBlobFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(path, []byte("not-a-real-png"), 0o600))

	blob, err := FileBlobFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "cat.png", blob.Name)
	require.Equal(t, int64(len("not-a-real-png")), blob.Size)
	require.Equal(t, "image/png", blob.Type)

	rc, err := blob.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "not-a-real-png", string(data))
}

func TestFileBlobFromPath_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.unknownext")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	blob, err := FileBlobFromPath(path)
	require.NoError(t, err)
	require.Empty(t, blob.Type)
}

func TestFileBlobFromPath_Missing(t *testing.T) {
	_, err := FileBlobFromPath(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}

func TestFileBlobFromPath_Directory(t *testing.T) {
	_, err := FileBlobFromPath(t.TempDir())
	require.Error(t, err)
}
