package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

type fakeDeleter struct {
	calls []int64
	err   error
}

func (d *fakeDeleter) DeleteItem(_ context.Context, id int64) error {
	d.calls = append(d.calls, id)
	return d.err
}

func newDeleteFixture(t *testing.T) (*Materializer, *vault.Vault) {
	t.Helper()

	v := vault.NewWithFs(afero.NewMemMapFs(), "vault")
	m := NewMaterializer(v, nil, nil, Options{
		SyncFolder:  "Pinbox",
		ImageFolder: "Pinbox/assets",
	})

	note := "---\nid: 42\ntitle: Example\n---\n\nbody\n"
	require.NoError(t, v.WriteNote("Pinbox/Example.md", note))
	require.NoError(t, v.WriteBinary("Pinbox/assets/42/1-0.png", []byte{1}))

	return m, v
}

func TestDeleteRemovesNoteAndImages(t *testing.T) {
	m, v := newDeleteFixture(t)
	remote := &fakeDeleter{}

	err := m.Delete(context.Background(), remote, "Pinbox/Example.md")
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, remote.calls)

	exists, err := v.Exists("Pinbox/Example.md")
	require.NoError(t, err)
	assert.False(t, exists, "note should be gone")

	exists, err = v.Exists("Pinbox/assets/42/1-0.png")
	require.NoError(t, err)
	assert.False(t, exists, "image folder should be gone")
}

func TestDeleteKeepsNoteWhenRemoteFails(t *testing.T) {
	m, v := newDeleteFixture(t)
	remote := &fakeDeleter{err: errors.New("api down")}

	err := m.Delete(context.Background(), remote, "Pinbox/Example.md")
	require.Error(t, err)

	exists, err := v.Exists("Pinbox/Example.md")
	require.NoError(t, err)
	assert.True(t, exists, "note must survive a failed remote delete")

	exists, err = v.Exists("Pinbox/assets/42/1-0.png")
	require.NoError(t, err)
	assert.True(t, exists, "images must survive a failed remote delete")
}

func TestDeleteRejectsNoteWithoutID(t *testing.T) {
	m, v := newDeleteFixture(t)
	require.NoError(t, v.WriteNote("Pinbox/Plain.md", "just some text\n"))

	remote := &fakeDeleter{}
	err := m.Delete(context.Background(), remote, "Pinbox/Plain.md")
	require.Error(t, err)
	assert.Empty(t, remote.calls, "remote must not be called without an id")
}

func TestDeleteWithoutImageFolderLeavesAssets(t *testing.T) {
	_, v := newDeleteFixture(t)
	m := NewMaterializer(v, nil, nil, Options{SyncFolder: "Pinbox"})

	require.NoError(t, m.Delete(context.Background(), &fakeDeleter{}, "Pinbox/Example.md"))

	exists, err := v.Exists("Pinbox/assets/42/1-0.png")
	require.NoError(t, err)
	assert.True(t, exists, "no configured image folder means no asset removal")
}

func TestDeleteMissingNote(t *testing.T) {
	m, _ := newDeleteFixture(t)

	err := m.Delete(context.Background(), &fakeDeleter{}, "Pinbox/Nope.md")
	require.Error(t, err)
}
