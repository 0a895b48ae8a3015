package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, 20, cfg.UI.PageSize)

	// The defaults land on disk so the user has a file to edit.
	_, err = os.Stat(filepath.Join(defaultConfigPath(), "config.yaml"))
	assert.NoError(t, err)
}

func TestLoadReadsExistingFile(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.MkdirAll(defaultConfigPath(), 0755))
	file := filepath.Join(defaultConfigPath(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  url: http://archive:9000\nui:\n  page_size: 7\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://archive:9000", cfg.Server.URL)
	assert.Equal(t, 7, cfg.UI.PageSize)
	assert.Equal(t, 10, cfg.UI.RecentLimit, "unset keys keep their defaults")
}

func TestSaveRoundTrips(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.URL = "http://archive:9000"
	cfg.UI.PageSize = 42
	require.NoError(t, Save(cfg))

	viper.Reset()
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://archive:9000", loaded.Server.URL)
	assert.Equal(t, 42, loaded.UI.PageSize)
}
