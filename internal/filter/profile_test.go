package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinMain(t *testing.T) {
	store := NewStore("")

	profile, err := store.Load("main")
	require.NoError(t, err)

	assert.Equal(t, "main", profile.Name)
	assert.True(t, profile.Builtin())
	assert.Contains(t, profile.Blacklist, "opensubtitles")
	for _, entry := range profile.Blacklist {
		assert.NotEmpty(t, entry)
	}
}

func TestLoadUserProfileShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	require.NoError(t, os.WriteFile(path, []byte(`["cheapdeals"]`), 0644))

	profile, err := NewStore(dir).Load("main")
	require.NoError(t, err)

	assert.Equal(t, path, profile.Path)
	assert.False(t, profile.Builtin())
	assert.Equal(t, Blacklist{"cheapdeals"}, profile.Blacklist)
}

func TestLoadProfileByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Buy Now", "  ", ""]`), 0644))

	profile, err := NewStore("").Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", profile.Name)
	assert.Equal(t, Blacklist{"buy now"}, profile.Blacklist)
}

func TestLoadProfileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"not": "a list"}`), 0644))
	store := NewStore(dir)

	_, err := store.Load("nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = store.Load("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidProfileName)

	_, err = store.Load("")
	assert.ErrorIs(t, err, ErrInvalidProfileName)

	_, err = store.Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = store.Load("broken")
	assert.Error(t, err)
}

func TestListProfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.json"), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anime.json"), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0644))

	infos, err := NewStore(dir).List()
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"anime", "main", "main", "strict"}, names)

	assert.False(t, infos[1].Builtin)
	assert.True(t, infos[2].Builtin)
	assert.True(t, infos[2].Shadowed)
}

func TestListProfilesMissingDir(t *testing.T) {
	infos, err := NewStore(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}
