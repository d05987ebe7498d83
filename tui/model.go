package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/debug"
	"go-pianoroll/pianoroll"
	"go-pianoroll/theme"
	"go-pianoroll/widgets"
)

// cellPx maps one terminal cell to this many editor pixels, so the editor's
// pixel-space constants (edge bands, marker radii) behave sensibly at
// character resolution.
const cellPx = 8.0

const gutterWidth = 4 // note-name column

// Layout rows, top to bottom: header, toolbar, ruler, roll, status, help.
const (
	rulerRow = 2
	rollTop  = 3
)

// mouseTarget routes motion/release to whichever surface the press hit.
type mouseTarget int

const (
	targetNone mouseTarget = iota
	targetRoll
	targetRuler
)

type Model struct {
	Editor *pianoroll.Editor
	Theme  *theme.Theme

	width    int
	height   int
	rollRows int
	topPitch int
	quitting bool

	target mouseTarget
}

func NewModel(editor *pianoroll.Editor, th *theme.Theme, centerPitch int) Model {
	m := Model{
		Editor:   editor,
		Theme:    th,
		rollRows: 24,
		topPitch: centerPitch + 12,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rollRows = maxInt(msg.Height-8, 8)
		m.Editor.View().Width = float64(msg.Width-gutterWidth) * cellPx

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key, mods := translateKey(msg)

	if key == "q" && mods.Command {
		m.quitting = true
		return *m, tea.Quit
	}

	// Terminals fold ctrl+shift+z into plain ctrl+z, so redo gets shift+z
	// on its own; it must not fall through to the draw-tool shortcut.
	if key == "z" && mods.Shift && !mods.Command {
		m.Editor.Redo()
		return *m, nil
	}

	if m.Editor.KeyPress(key, mods) {
		return *m, nil
	}

	// Host-level bindings the editor core doesn't own.
	switch key {
	case "s":
		m.Editor.SetSnap(!m.Editor.Options().Snap)
	case "g":
		m.cycleGridDivision()
	case "l":
		m.Editor.SetScaleLock(!m.Editor.Options().ScaleLock)
	case "up":
		m.topPitch = minInt(m.topPitch+1, pianoroll.MaxPitch)
	case "down":
		m.topPitch = maxInt(m.topPitch-1, m.rollRows-1)
	case "left":
		m.Editor.View().Pan(-4 * cellPx)
	case "right":
		m.Editor.View().Pan(4 * cellPx)
	case "1":
		m.Editor.Swing(0.5)
	case "2":
		m.Editor.Humanize(0.5)
	case "3":
		m.Editor.Stretch(2.0)
	case "4":
		m.Editor.Stretch(0.5)
	case "5":
		m.Editor.Legato()
	case "6":
		m.Editor.Reverse()
	case "7":
		m.Editor.RandomizeVelocity(0.5)
	}
	return *m, nil
}

func (m *Model) cycleGridDivision() {
	cur := m.Editor.Options().GridDivision
	for i, div := range pianoroll.GridDivisions {
		if div == cur {
			m.Editor.SetGridDivision(pianoroll.GridDivisions[(i+1)%len(pianoroll.GridDivisions)])
			return
		}
	}
	m.Editor.SetGridDivision(pianoroll.GridDivisions[0])
}

// translateKey maps a bubbletea key onto the editor's key/modifier model.
// The terminal's ctrl plays the role of command.
func translateKey(msg tea.KeyMsg) (string, pianoroll.Modifiers) {
	s := msg.String()
	var mods pianoroll.Modifiers

	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			mods.Command = true
			s = strings.TrimPrefix(s, "ctrl+")
			continue
		case strings.HasPrefix(s, "alt+"):
			mods.Alt = true
			s = strings.TrimPrefix(s, "alt+")
			continue
		case strings.HasPrefix(s, "shift+"):
			mods.Shift = true
			s = strings.TrimPrefix(s, "shift+")
			continue
		}
		break
	}
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		mods.Shift = true
		s = strings.ToLower(s)
	}
	if s == "esc" {
		s = "escape"
	}
	return s, mods
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.Editor.ModifiersChanged(pianoroll.Modifiers{
		Shift:   msg.Shift,
		Alt:     msg.Alt,
		Command: msg.Ctrl,
	})

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.topPitch = minInt(m.topPitch+2, pianoroll.MaxPitch)
		return
	case tea.MouseButtonWheelDown:
		m.topPitch = maxInt(m.topPitch-2, m.rollRows-1)
		return
	}

	screenX := (float64(msg.X-gutterWidth) + 0.5) * cellPx
	screenY := (float64(msg.Y) + 0.5) * cellPx
	debug.LogEvery(30, "tui", "mouse %d,%d action=%d", msg.X, msg.Y, msg.Action)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y == rulerRow {
			m.target = targetRuler
			m.Editor.RulerDown(screenX, screenY)
		} else if msg.Y >= rollTop && msg.Y < rollTop+m.rollRows && msg.X >= gutterWidth {
			m.target = targetRoll
			x, y := m.contentXY(msg.X, msg.Y)
			m.Editor.PointerDown(x, y)
		}

	case tea.MouseActionMotion:
		switch m.target {
		case targetRuler:
			m.Editor.RulerMove(screenX, screenY)
		case targetRoll:
			x, y := m.contentXY(msg.X, msg.Y)
			m.Editor.PointerMove(x, y)
		}

	case tea.MouseActionRelease:
		switch m.target {
		case targetRuler:
			m.Editor.RulerUp(screenX, screenY)
		case targetRoll:
			x, y := m.contentXY(msg.X, msg.Y)
			m.Editor.PointerUp(x, y)
		}
		m.target = targetNone
	}
}

// contentXY converts a terminal cell in the roll area to content-space
// editor pixels (scroll applied, cell centers).
func (m *Model) contentXY(cx, cy int) (float64, float64) {
	view := m.Editor.View()
	x := view.ContentX((float64(cx-gutterWidth) + 0.5) * cellPx)

	row := cy - rollTop
	pitch := m.topPitch - row
	y := (float64(pianoroll.MaxPitch-pitch) + 0.5) * view.PixelsPerNote
	return x, y
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	clip := m.Editor.Clip()
	view := m.Editor.View()
	opts := m.Editor.Options()
	sym := m.Theme.Symbols

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	noteStyle := lipgloss.NewStyle().Foreground(m.Theme.Note())
	selStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	tickStyle := lipgloss.NewStyle().Foreground(m.Theme.Highlite())

	var out strings.Builder

	// Header
	snapState := "off"
	if opts.Snap {
		snapState = pianoroll.FormatGridDivision(opts.GridDivision)
	}
	scaleState := "off"
	if opts.ScaleLock {
		scaleState = fmt.Sprintf("%s %s", pianoroll.NoteNames[opts.Scale.Root], opts.Scale.Type)
	}
	chordState := ""
	if m.Editor.ChordPaletteActive() {
		chordState = "  CHORD"
	}
	out.WriteString(headerStyle.Render(fmt.Sprintf(
		"go-pianoroll  loop:%g beats  snap:%s  scale:%s%s",
		clip.LoopLength, snapState, scaleState, chordState)))
	out.WriteString("\n")

	tools := []string{"draw", "select", "eraser", "duplicate", "slice"}
	out.WriteString(widgets.RenderToolbar(tools, int(m.Editor.EffectiveTool()), m.Theme.Accent()))
	out.WriteString("\n")

	// Ruler
	out.WriteString(m.renderRuler(tickStyle, selStyle))
	out.WriteString("\n")

	// Roll
	cols := maxInt(m.width-gutterWidth, 16)
	for row := 0; row < m.rollRows; row++ {
		pitch := m.topPitch - row
		if pitch < 0 || pitch > pianoroll.MaxPitch {
			out.WriteString("\n")
			continue
		}
		name := fmt.Sprintf("%-2s%d", pianoroll.NoteNames[pitch%12], pitch/12-1)
		inScale := !opts.ScaleLock || opts.Scale.Contains(pitch)
		if inScale {
			out.WriteString(dimStyle.Render(fmt.Sprintf("%-4s", name)))
		} else {
			out.WriteString(dimStyle.Render("    "))
		}

		g := view.Geometry()
		for col := 0; col < cols; col++ {
			beat := g.XToBeat(view.ScrollX + float64(col)*cellPx)
			beatEnd := g.XToBeat(view.ScrollX + float64(col+1)*cellPx)

			var cell string
			count, headSel, head := m.notesInCell(clip, pitch, beat, beatEnd)
			switch {
			case head && headSel:
				cell = selStyle.Render(string(sym.SelectedHead))
			case head:
				cell = noteStyle.Render(string(sym.NoteHead))
			case count > 1:
				cell = noteStyle.Render(string(sym.NoteOverlap))
			case count == 1:
				cell = noteStyle.Render(string(sym.NoteTail))
			case beat >= clip.LoopLength:
				cell = dimStyle.Render("-")
			default:
				cell = dimStyle.Render(string(sym.CellEmpty))
			}
			out.WriteString(cell)
		}
		out.WriteString("\n")
	}

	// Status + help
	hist := m.Editor.History()
	muted := m.Theme.Muted()
	status := widgets.RenderStatusItem("notes", fmt.Sprintf("%d", len(clip.Notes)), muted) +
		"  " + widgets.RenderStatusItem("selected", fmt.Sprintf("%d", clip.SelectedCount()), muted)
	if hist.CanUndo() {
		status += "  " + widgets.RenderStatusItem("undo", hist.UndoLabel(), muted)
	}
	out.WriteString(status)
	out.WriteString("\n\n")

	out.WriteString(widgets.RenderKeyHelp([]widgets.KeySection{
		{Title: "Tools", Keys: []widgets.KeyBinding{
			{Key: "z/x/c/v/b", Desc: "draw select eraser duplicate slice"},
			{Key: "alt / ctrl", Desc: "hold: erase / duplicate override"},
		}},
		{Title: "Edit", Keys: []widgets.KeyBinding{
			{Key: "ctrl+z / Z", Desc: "undo / redo"},
			{Key: "ctrl+c/x/v", Desc: "copy cut paste"},
			{Key: "ctrl+d", Desc: "duplicate selection"},
			{Key: "del q k", Desc: "delete, quantize, chord palette"},
		}},
		{Title: "Transforms", Keys: []widgets.KeyBinding{
			{Key: "1-7", Desc: "swing humanize stretch legato reverse velocity"},
		}},
		{Title: "View", Keys: []widgets.KeyBinding{
			{Key: "drag ruler", Desc: "vertical zoom, horizontal pan"},
			{Key: "arrows", Desc: "pan view, scroll pitch"},
			{Key: "s g l", Desc: "snap, grid size, scale lock"},
			{Key: "ctrl+q", Desc: "quit"},
		}},
	}))

	return out.String()
}

// renderRuler draws bar ticks, the loop markers and the insert marker.
func (m Model) renderRuler(tickStyle, markStyle lipgloss.Style) string {
	clip := m.Editor.Clip()
	view := m.Editor.View()
	g := view.Geometry()
	sym := m.Theme.Symbols

	cols := maxInt(m.width-gutterWidth, 16)
	cells := make([]string, cols)
	for col := 0; col < cols; col++ {
		beat := g.XToBeat(view.ScrollX + float64(col)*cellPx)
		beatEnd := g.XToBeat(view.ScrollX + float64(col+1)*cellPx)
		switch {
		case beat <= 0 && beatEnd > 0, beat < clip.LoopLength && beatEnd >= clip.LoopLength:
			cells[col] = markStyle.Render(string(sym.LoopMarker))
		case beatCrossesBar(beat, beatEnd):
			cells[col] = tickStyle.Render(string(sym.RulerTick))
		default:
			cells[col] = " "
		}
	}

	marker := m.Editor.InsertMarker()
	mcol := int((g.BeatToX(marker) - view.ScrollX) / cellPx)
	if mcol >= 0 && mcol < cols {
		cells[mcol] = markStyle.Render(string(sym.InsertMarker))
	}

	return strings.Repeat(" ", gutterWidth) + strings.Join(cells, "")
}

func beatCrossesBar(from, to float64) bool {
	bar := float64(int(from/pianoroll.BeatsPerBar)) * pianoroll.BeatsPerBar
	if bar < from {
		bar += pianoroll.BeatsPerBar
	}
	return bar >= from && bar < to
}

// notesInCell counts notes of one pitch overlapping a cell and whether a
// note's head sits in it.
func (m Model) notesInCell(clip *pianoroll.Clip, pitch int, from, to float64) (count int, headSelected, head bool) {
	for i := range clip.Notes {
		n := &clip.Notes[i]
		if n.Pitch != pitch {
			continue
		}
		if n.Start < to && n.End() > from {
			count++
			if n.Start >= from && n.Start < to {
				head = true
				headSelected = n.Selected
			}
		}
	}
	return count, headSelected, head
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
