package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SynthOutputConfig defines the synth MIDI output used for note audition
type SynthOutputConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  int    `json:"channel,omitempty"`
}

// EditorConfig stores editing preferences
type EditorConfig struct {
	GridDivision    float64 `json:"gridDivision,omitempty"`
	Snap            bool    `json:"snap"`
	ScaleLock       bool    `json:"scaleLock"`
	ScaleRoot       int     `json:"scaleRoot"`
	ScaleType       int     `json:"scaleType"`
	PaintMode       bool    `json:"paintMode"`
	DefaultDuration float64 `json:"defaultDuration,omitempty"`
	LastTool        int     `json:"lastTool"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	LastTempo   int  `json:"lastTempo,omitempty"`
	CenterPitch int  `json:"centerPitch,omitempty"`
	Debug       bool `json:"debug,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	SynthOutput SynthOutputConfig `json:"synthOutput,omitempty"`
	Editor      EditorConfig      `json:"editor,omitempty"`
	UI          UIConfig          `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			GridDivision:    0.25,
			Snap:            true,
			DefaultDuration: 1.0,
		},
		UI: UIConfig{
			LastTempo:   120,
			CenterPitch: 60,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ClipPath returns the full path to the persisted clip
func ClipPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clip.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Editor.GridDivision <= 0 {
		cfg.Editor.GridDivision = 0.25
	}
	if cfg.Editor.DefaultDuration <= 0 {
		cfg.Editor.DefaultDuration = 1.0
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
