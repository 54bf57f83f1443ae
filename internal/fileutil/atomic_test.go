package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, WriteJSON(path, map[string]string{"language": "en"}, 0o600))

	var got map[string]string
	found, err := ReadJSON(path, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en", got["language"])

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestReadMissingFile(t *testing.T) {
	var got map[string]string
	found, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var got map[string]string
	_, err := ReadJSON(path, &got)
	assert.Error(t, err)
}
