package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHOWCASE_CONFIG", filepath.Join(home, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "showcase", "showcase.db"), cfg.Database.Path)
	require.Equal(t, PreviewLive, cfg.Preview.Mode)
	require.Equal(t, 10*time.Second, cfg.Preview.Timeout)
	require.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Directory.Path)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[preview]
mode = "snapshot"
timeout = "3s"

[directory]
path = "/srv/directory.toml"

[keys]
bookmark = ["b"]
`), 0o600))
	t.Setenv("SHOWCASE_CONFIG", path)
	t.Setenv("SHOWCASE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, PreviewSnapshot, cfg.Preview.Mode)
	require.Equal(t, 3*time.Second, cfg.Preview.Timeout)
	require.Equal(t, "/srv/directory.toml", cfg.Directory.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []string{"b"}, cfg.Keys["bookmark"])
}

func TestLoadRejectsUnknownPreviewMode(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHOWCASE_CONFIG", filepath.Join(home, "missing.toml"))
	t.Setenv("SHOWCASE_PREVIEW_MODE", "iframe")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "preview.mode")
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "nested", "config.toml")
	t.Setenv("SHOWCASE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Preview.Mode = PreviewSnapshot
	cfg.UI.Accent = "#00AAFF"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, PreviewSnapshot, again.Preview.Mode)
	require.Equal(t, "#00AAFF", again.UI.Accent)
	require.Equal(t, cfg.Storage.Timeout, again.Storage.Timeout)
}
