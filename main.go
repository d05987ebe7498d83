package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/pianoroll"
	"go-pianoroll/theme"
	"go-pianoroll/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.UI.Debug {
		debug.Enable()
	}

	clip := loadClip()

	opts := pianoroll.DefaultOptions()
	opts.GridDivision = cfg.Editor.GridDivision
	opts.Snap = cfg.Editor.Snap
	opts.ScaleLock = cfg.Editor.ScaleLock
	opts.Scale = pianoroll.Scale{Root: cfg.Editor.ScaleRoot, Type: pianoroll.ScaleType(cfg.Editor.ScaleType)}
	opts.PaintMode = cfg.Editor.PaintMode
	opts.DefaultDuration = cfg.Editor.DefaultDuration

	editor := pianoroll.NewEditor(clip, opts)
	editor.SetTool(pianoroll.Tool(cfg.Editor.LastTool))

	synth := midi.NewSynth(cfg.SynthOutput.PortName, cfg.SynthOutput.Channel)
	defer synth.Close()
	defer midi.CloseDriver()
	editor.SetEngine(synth)

	// Each edit reschedules the save, so rapid gestures coalesce into one
	// write after the editor goes quiet.
	save := debounce.New(500 * time.Millisecond)
	editor.OnClipUpdated(func(c *pianoroll.Clip) {
		snapshot := c.Clone()
		save(func() { saveClip(snapshot) })
	})

	th := theme.New(theme.DefaultPalette())

	m := tui.NewModel(editor, th, cfg.UI.CenterPitch)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	saveClip(editor.Clip())

	o := editor.Options()
	cfg.Editor.GridDivision = o.GridDivision
	cfg.Editor.Snap = o.Snap
	cfg.Editor.ScaleLock = o.ScaleLock
	cfg.Editor.ScaleRoot = o.Scale.Root
	cfg.Editor.ScaleType = int(o.Scale.Type)
	cfg.Editor.PaintMode = o.PaintMode
	cfg.Editor.DefaultDuration = o.DefaultDuration
	cfg.Editor.LastTool = int(editor.Tool())
	if err := cfg.Save(); err != nil {
		fmt.Printf("Error saving config: %v\n", err)
	}
}

// loadClip restores the persisted clip, or starts a fresh four-beat one.
func loadClip() *pianoroll.Clip {
	path, err := config.ClipPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			var clip pianoroll.Clip
			if err := json.Unmarshal(data, &clip); err == nil && clip.LoopLength > 0 {
				clip.DeselectAll()
				return &clip
			}
			debug.Log("clip", "discarding unreadable clip at %s", path)
		}
	}
	return pianoroll.NewClip("clip-1", "track-1")
}

func saveClip(clip *pianoroll.Clip) {
	dir, err := config.ConfigDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		debug.Log("clip", "save failed: %v", err)
		return
	}
	path, err := config.ClipPath()
	if err != nil {
		return
	}
	data, err := json.MarshalIndent(clip, "", "  ")
	if err != nil {
		debug.Log("clip", "save failed: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		debug.Log("clip", "save failed: %v", err)
	}
}
