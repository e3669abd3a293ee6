package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoadCreatesDefaults(t *testing.T) {
	ConfigSetPath(filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, ConfigLoad())

	cfg := ConfigGet()
	require.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "treescape.db", cfg.DatabaseFile)
	assert.Equal(t, "default", cfg.DefaultTreeName)
}

func TestConfigSaveAndReload(t *testing.T) {
	ConfigSetPath(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, ConfigLoad())

	cfg := ConfigGet()
	cfg.DefaultTreeName = "garden"
	require.NoError(t, ConfigSave(cfg))

	// Force a reload from disk
	loaded := *ConfigGet()
	require.NoError(t, ConfigLoad())
	assert.Equal(t, "garden", ConfigGet().DefaultTreeName)
	assert.Equal(t, loaded.DatabaseFile, ConfigGet().DatabaseFile)
}
