package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.2, cfg.Pipeline.XStep)
	assert.Equal(t, "linear", cfg.Pipeline.Scale)
	assert.Equal(t, "None", cfg.Pipeline.Sort)
	assert.Equal(t, "Blues", cfg.Plot.Colormap)
	assert.Equal(t, "png", cfg.Plot.Format)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Pipeline.XStep = 0.05
	cfg.Pipeline.Scale = "log"
	cfg.Plot.Colormap = "Greens"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "pipeline:\n  xStep: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Pipeline.XStep)
	assert.Equal(t, "Blues", cfg.Plot.Colormap)
}
