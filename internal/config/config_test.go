package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://withpinbox.com/api", cfg.APIBaseURL)
	assert.Equal(t, ".", cfg.VaultDir)
	assert.Equal(t, "Pinbox", cfg.SyncFolder)
	assert.False(t, cfg.AutoSync.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.AutoSync.Interval)
	assert.False(t, cfg.Images.Download)
	assert.Equal(t, "Pinbox/assets", cfg.Images.Folder)
	assert.False(t, cfg.Index.Enabled)
	assert.Equal(t, "Pinbox/index.md", cfg.Index.Path)
	assert.Equal(t, ".pinbox-sync.json", cfg.StateFile)
	assert.Empty(t, cfg.AccessToken)
}

func TestLoadFromFile(t *testing.T) {
	content := `
access_token: file-token
vault_dir: /data/vault
sync_folder: Bookmarks
auto_sync:
  enabled: true
  interval: 5m
images:
  download: true
index:
  enabled: true
  path: Bookmarks/_index.md
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.AccessToken)
	assert.Equal(t, "/data/vault", cfg.VaultDir)
	assert.Equal(t, "Bookmarks", cfg.SyncFolder)
	assert.True(t, cfg.AutoSync.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.AutoSync.Interval)
	assert.True(t, cfg.Images.Download)
	assert.Equal(t, "Pinbox/assets", cfg.Images.Folder, "unset keys keep their defaults")
	assert.Equal(t, "Bookmarks/_index.md", cfg.Index.Path)
}

func TestLoadTokenFromEnv(t *testing.T) {
	t.Setenv("PINBOX_TOKEN", "env-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.AccessToken)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync_folder: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := LoadState(path)
	require.NoError(t, err)
	assert.True(t, st.FirstRun, "missing state file means a fresh install")
	assert.True(t, st.LastSyncedAt.IsZero())

	st.FirstRun = false
	st.LastSyncedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.False(t, loaded.FirstRun)
	assert.True(t, loaded.LastSyncedAt.Equal(st.LastSyncedAt))
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadState(path)
	require.Error(t, err)
}
