package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vocalcart/internal/domain"
	"vocalcart/internal/infra/prefs"
)

func TestFileStore_MissingFile(t *testing.T) {
	store := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))

	lang, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, lang)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "prefs.yaml")
	store := prefs.NewFileStore(path)

	require.NoError(t, store.Save(domain.LanguageSpanish))

	lang, err := prefs.NewFileStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, domain.LanguageSpanish, lang)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "language: es-ES\n", string(data))
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: [unterminated"), 0o600))

	_, err := prefs.NewFileStore(path).Load()
	require.ErrorContains(t, err, "parsing preferences")
}
