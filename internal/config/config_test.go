package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "", cfg.Player)
	require.Equal(t, DefaultDBPath(), cfg.DBPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cscoach.yaml")
	body := "player: s1mple\ndb_path: /tmp/coach-test.db\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "s1mple", cfg.Player)
	require.Equal(t, "/tmp/coach-test.db", cfg.DBPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBPath: "x.db", LogLevel: "verbose"}
	require.Error(t, cfg.Validate())

	cfg = &Config{DBPath: "", LogLevel: "info"}
	require.Error(t, cfg.Validate())

	cfg = &Config{DBPath: "x.db", LogLevel: "warn"}
	require.NoError(t, cfg.Validate())
}
