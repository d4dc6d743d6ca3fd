package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, "world", nil)
	require.NoError(t, err)
	return s
}

func TestStoreDefaultWhenUnset(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "settings.db"))
	defer s.Close()

	assert.Equal(t, "world", s.SectionFilter())
	assert.Equal(t, "world", s.DefaultSection())
}

func TestStoreSetAndReset(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "settings.db"))
	defer s.Close()

	require.NoError(t, s.SetSectionFilter("technology"))
	assert.Equal(t, "technology", s.SectionFilter())

	require.NoError(t, s.ResetSectionFilter())
	assert.Equal(t, "world", s.SectionFilter())
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	s := openTestStore(t, path)
	require.NoError(t, s.SetSectionFilter("culture & arts"))
	require.NoError(t, s.Close())

	reopened := openTestStore(t, path)
	defer reopened.Close()
	assert.Equal(t, "culture & arts", reopened.SectionFilter())
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ", "world", nil)
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}
