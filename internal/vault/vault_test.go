package vault

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemVault() *Vault {
	return NewWithFs(afero.NewMemMapFs(), "vault")
}

func TestWriteAndReadNote(t *testing.T) {
	v := newMemVault()

	require.NoError(t, v.WriteNote("Pinbox/note.md", "hello"))

	content, err := v.ReadNote("Pinbox/note.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	exists, err := v.Exists("Pinbox/note.md")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = v.Exists("Pinbox/other.md")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateFolderIsIdempotent(t *testing.T) {
	v := newMemVault()

	require.NoError(t, v.CreateFolder("Pinbox/assets/42"))
	require.NoError(t, v.CreateFolder("Pinbox/assets/42"))
}

func TestTrashNoteAndFolder(t *testing.T) {
	v := newMemVault()

	require.NoError(t, v.WriteNote("Pinbox/note.md", "x"))
	require.NoError(t, v.WriteBinary("assets/42/a.jpg", []byte{1, 2}))
	require.NoError(t, v.WriteBinary("assets/42/b.jpg", []byte{3}))

	require.NoError(t, v.TrashNote("Pinbox/note.md"))
	exists, err := v.Exists("Pinbox/note.md")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.TrashFolder("assets/42"))
	exists, err = v.Exists("assets/42/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWalkReportsRelativePaths(t *testing.T) {
	v := newMemVault()

	require.NoError(t, v.WriteNote("Pinbox/a.md", "a"))
	require.NoError(t, v.WriteNote("Pinbox/sub/b.md", "b"))

	var seen []string
	err := v.Walk("Pinbox", func(rel string, isDir bool) error {
		if !isDir {
			seen = append(seen, rel)
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pinbox/a.md", "Pinbox/sub/b.md"}, seen)
}
