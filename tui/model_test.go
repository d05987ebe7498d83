package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pianoroll/pianoroll"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		wantKey  string
		wantMods pianoroll.Modifiers
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, "z", pianoroll.Modifiers{}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Z")}, "z", pianoroll.Modifiers{Shift: true}},
		{tea.KeyMsg{Type: tea.KeyCtrlZ}, "z", pianoroll.Modifiers{Command: true}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z"), Alt: true}, "z", pianoroll.Modifiers{Alt: true}},
		{tea.KeyMsg{Type: tea.KeyEsc}, "escape", pianoroll.Modifiers{}},
		{tea.KeyMsg{Type: tea.KeyDelete}, "delete", pianoroll.Modifiers{}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, "backspace", pianoroll.Modifiers{}},
	}
	for _, tt := range tests {
		key, mods := translateKey(tt.msg)
		assert.Equal(t, tt.wantKey, key, "msg %q", tt.msg.String())
		assert.Equal(t, tt.wantMods, mods, "msg %q", tt.msg.String())
	}
}

func TestShiftZRedoesWithoutSwitchingTool(t *testing.T) {
	editor := pianoroll.NewEditor(pianoroll.NewClip("c", "t"), pianoroll.DefaultOptions())
	m := NewModel(editor, nil, 60)

	editor.PointerDown(10, 10)
	editor.PointerUp(10, 10)
	require.Len(t, editor.Clip().Notes, 1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	m = next.(Model)
	require.Empty(t, editor.Clip().Notes)
	require.True(t, editor.History().CanRedo())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Z")})
	m = next.(Model)
	assert.Len(t, editor.Clip().Notes, 1)
	assert.Equal(t, pianoroll.ToolDraw, editor.Tool())
}

func TestArrowKeysPanView(t *testing.T) {
	editor := pianoroll.NewEditor(pianoroll.NewClip("c", "t"), pianoroll.DefaultOptions())
	m := NewModel(editor, nil, 60)

	editor.View().ScrollX = 100
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 100-4*cellPx, editor.View().ScrollX)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 100.0, editor.View().ScrollX)

	editor.View().ScrollX = 0
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0.0, editor.View().ScrollX) // clamped
}

func TestContentXYAppliesScrollAndPitchRows(t *testing.T) {
	editor := pianoroll.NewEditor(pianoroll.NewClip("c", "t"), pianoroll.DefaultOptions())
	editor.View().PixelsPerNote = cellPx
	m := NewModel(editor, nil, 60)

	// Top roll row holds the top pitch; rows below walk down the scale.
	_, y := m.contentXY(gutterWidth, rollTop)
	g := editor.View().Geometry()
	assert.Equal(t, m.topPitch, g.YToPitch(y))

	_, y = m.contentXY(gutterWidth, rollTop+3)
	assert.Equal(t, m.topPitch-3, g.YToPitch(y))

	editor.View().ScrollX = 80
	x, _ := m.contentXY(gutterWidth, rollTop)
	assert.Equal(t, 0.5*cellPx+80, x)
}

func TestBeatCrossesBar(t *testing.T) {
	assert.True(t, beatCrossesBar(3.9, 4.1))
	assert.True(t, beatCrossesBar(0, 0.2))
	assert.False(t, beatCrossesBar(4.1, 4.3))
	assert.False(t, beatCrossesBar(1.0, 1.2))
}
