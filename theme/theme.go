package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Roll cells
	CellEmpty    rune // · empty grid cell
	CellBeat     rune // | beat line
	NoteHead     rune // ● note start
	NoteTail     rune // ─ note continuation
	NoteOverlap  rune // ═ stacked notes
	SelectedHead rune // ◉ selected note start

	// Ruler
	LoopMarker   rune // ▐ loop boundary
	InsertMarker rune // ↓ paste target
	RulerTick    rune // ' bar tick
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			CellEmpty:    '·',
			CellBeat:     '¦',
			NoteHead:     '●',
			NoteTail:     '─',
			NoteOverlap:  '═',
			SelectedHead: '◉',

			LoopMarker:   '▐',
			InsertMarker: '↓',
			RulerTick:    '\'',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0 // deep indigo
	RoleSurface  = 0.1
	RoleMuted    = 0.25
	RoleFG       = 0.45
	RoleNote     = 0.6 // unselected notes
	RoleAccent   = 0.75 // selected notes, markers
	RoleWarning  = 0.85
	RoleHighlite = 1.0 // ruler ticks, help keys
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Note() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleNote))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Highlite() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleHighlite))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
