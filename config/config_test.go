package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Editor.GridDivision)
	assert.True(t, cfg.Editor.Snap)
	assert.Equal(t, 1.0, cfg.Editor.DefaultDuration)
	assert.Equal(t, 60, cfg.UI.CenterPitch)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Editor.GridDivision = 0.5
	cfg.Editor.ScaleLock = true
	cfg.Editor.ScaleRoot = 9
	cfg.SynthOutput.PortName = "fluid"
	cfg.SynthOutput.Channel = 3
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, loaded.Editor.GridDivision)
	assert.True(t, loaded.Editor.ScaleLock)
	assert.Equal(t, 9, loaded.Editor.ScaleRoot)
	assert.Equal(t, "fluid", loaded.SynthOutput.PortName)
	assert.Equal(t, 3, loaded.SynthOutput.Channel)
}

func TestLoadReclampsZeroedFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "go-pianoroll")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"editor":{"gridDivision":0,"defaultDuration":0}}`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Editor.GridDivision)
	assert.Equal(t, 1.0, cfg.Editor.DefaultDuration)
}

func TestClipPathUnderConfigDir(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	path, err := ClipPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/someone/.config/go-pianoroll/clip.json", path)
}
