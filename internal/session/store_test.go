package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Token())

	require.NoError(t, s.SetToken("abc"))
	require.NoError(t, s.SetLanguage("en"))
	require.NoError(t, s.SetTranslateLanguage("ja"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", reopened.Token())
	assert.Equal(t, "en", reopened.Language())
	assert.Equal(t, "ja", reopened.TranslateLanguage())

	require.NoError(t, reopened.ClearToken())
	again, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, again.Token())
	assert.Equal(t, "en", again.Language())
}

func TestMemoryStore(t *testing.T) {
	var s Store = NewMemoryStore(State{Token: "t1"})
	assert.Equal(t, "t1", s.Token())
	require.NoError(t, s.ClearToken())
	assert.Empty(t, s.Token())
}
