package pianoroll

import (
	"fmt"
	"math/rand"
	"time"

	"go-pianoroll/debug"
)

// DefaultVelocity is used for notes created by click or chord stamp.
const DefaultVelocity = 100

// Options are the editor preferences that affect editing behavior.
type Options struct {
	GridDivision    float64
	Snap            bool
	ScaleLock       bool
	Scale           Scale
	PaintMode       bool // legacy click-drag note stamping for the draw tool
	DefaultDuration float64
}

// DefaultOptions returns sixteenth-note snapping with scale lock off.
func DefaultOptions() Options {
	return Options{
		GridDivision:    0.25,
		Snap:            true,
		Scale:           Scale{Root: 0, Type: ScaleMajor},
		DefaultDuration: 1.0,
	}
}

// Editor is one editing session over one clip: it owns the command log, the
// interaction state machine, the viewport, and the audition controller. All
// methods run on the host's event loop; nothing here blocks.
type Editor struct {
	clip    *Clip
	history *History
	view    Viewport
	opts    Options

	tool Tool
	mods Modifiers

	chordPalette bool
	chord        Chord

	clipboard    []Note
	lastDuration float64
	insertMarker float64
	markerSet    bool

	gesture gesture
	ruler   *rulerGesture

	audition *Audition
	newID    IDGenerator
	rng      *rand.Rand

	onClipUpdated func(*Clip)
}

// NewEditor creates a session editing the given clip.
func NewEditor(clip *Clip, opts Options) *Editor {
	e := &Editor{
		clip:         clip,
		opts:         opts,
		tool:         ToolDraw,
		lastDuration: opts.DefaultDuration,
		newID:        UUIDs,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		audition:     NewAudition(nil, clip.TrackID),
		view: Viewport{
			Width:         800,
			PixelsPerBeat: 40,
			PixelsPerNote: 12,
		},
	}
	e.history = NewHistory(func(c *Clip) {
		e.clip = c
		e.notify()
	})
	return e
}

// SetEngine attaches (or detaches, with nil) the external audio engine used
// for audition playback.
func (e *Editor) SetEngine(engine Engine) {
	e.audition = NewAudition(engine, e.clip.TrackID)
}

// OnClipUpdated registers the host callback fired after every committed
// mutation. The host handles persistence and re-render.
func (e *Editor) OnClipUpdated(fn func(*Clip)) {
	e.onClipUpdated = fn
}

// SetIDGenerator replaces the note id source (deterministic ids in tests).
func (e *Editor) SetIDGenerator(gen IDGenerator) {
	e.newID = gen
}

// SetRand replaces the randomness source for humanize/randomize.
func (e *Editor) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// Clip returns the clip being edited.
func (e *Editor) Clip() *Clip { return e.clip }

// History returns the session's command log.
func (e *Editor) History() *History { return e.history }

// View returns the zoom/pan state. The host sizes it and reads it for
// rendering.
func (e *Editor) View() *Viewport { return &e.view }

// Options returns the current editing preferences.
func (e *Editor) Options() Options { return e.opts }

// Tool returns the sticky tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool selects the sticky tool.
func (e *Editor) SetTool(t Tool) { e.tool = t }

// EffectiveTool resolves the temporary modifier override against the sticky
// tool: alt forces the eraser, command forces duplicate.
func (e *Editor) EffectiveTool() Tool {
	if e.mods.Alt {
		return ToolEraser
	}
	if e.mods.Command {
		return ToolDuplicate
	}
	return e.tool
}

// ModifiersChanged records the current modifier set. The state machine
// consults it at gesture start; releasing all modifiers restores the sticky
// tool.
func (e *Editor) ModifiersChanged(m Modifiers) { e.mods = m }

// SetGridDivision sets the snap resolution and re-clamps the loop length.
func (e *Editor) SetGridDivision(div float64) {
	if div <= 0 {
		return
	}
	e.opts.GridDivision = div
	e.clip.LoopLength = ClampLoopLength(e.clip.LoopLength, div)
}

// SetSnap toggles grid snapping.
func (e *Editor) SetSnap(on bool) { e.opts.Snap = on }

// SetScaleLock toggles scale lock.
func (e *Editor) SetScaleLock(on bool) { e.opts.ScaleLock = on }

// SetScale configures the scale used when scale lock is on.
func (e *Editor) SetScale(s Scale) { e.opts.Scale = s }

// SetPaintMode toggles the legacy click-drag note stamping of the draw tool.
func (e *Editor) SetPaintMode(on bool) { e.opts.PaintMode = on }

// ChordPaletteActive reports whether draw clicks stamp chords.
func (e *Editor) ChordPaletteActive() bool { return e.chordPalette }

// ToggleChordPalette flips chord stamping on or off.
func (e *Editor) ToggleChordPalette() { e.chordPalette = !e.chordPalette }

// SetChord configures the chord used for stamping.
func (e *Editor) SetChord(c Chord) { e.chord = c }

// InsertMarker returns the paste target beat; unset means beat 0.
func (e *Editor) InsertMarker() float64 {
	if !e.markerSet {
		return 0
	}
	return e.insertMarker
}

// SetInsertMarker places the paste insert marker.
func (e *Editor) SetInsertMarker(beat float64) {
	e.insertMarker = maxOf(beat, 0)
	e.markerSet = true
}

// snapBeat applies grid snapping when enabled.
func (e *Editor) snapBeat(beat float64) float64 {
	if !e.opts.Snap {
		return maxOf(beat, 0)
	}
	return maxOf(SnapToGrid(beat, e.opts.GridDivision), 0)
}

// lockPitch clamps a pitch and applies scale lock when enabled.
func (e *Editor) lockPitch(pitch int) int {
	pitch = clamp(pitch, 0, MaxPitch)
	if e.opts.ScaleLock {
		return e.opts.Scale.Snap(pitch)
	}
	return pitch
}

// notify pushes the clip to the host after a committed mutation.
func (e *Editor) notify() {
	if e.onClipUpdated != nil {
		e.onClipUpdated(e.clip)
	}
}

// commit finalizes the pending snapshot into one undo command and notifies
// the host.
func (e *Editor) commit(label string) {
	e.history.Commit(e.clip, label)
	debug.Log("history", "commit: %s", label)
	e.notify()
}

// Undo reverts the newest command. Underflow is a no-op.
func (e *Editor) Undo() {
	if e.history.Undo() {
		debug.Log("history", "undo")
	}
}

// Redo re-applies the newest undone command.
func (e *Editor) Redo() {
	if e.history.Redo() {
		debug.Log("history", "redo")
	}
}

// DeleteSelection removes all selected notes as one command.
func (e *Editor) DeleteSelection() {
	count := e.clip.SelectedCount()
	if count == 0 {
		return
	}
	e.history.Save(e.clip)
	kept := e.clip.Notes[:0]
	for _, n := range e.clip.Notes {
		if !n.Selected {
			kept = append(kept, n)
		}
	}
	e.clip.Notes = kept
	e.commit(noteCountLabel("Delete", count))
}

// SelectAll selects every note.
func (e *Editor) SelectAll() {
	if len(e.clip.Notes) == 0 {
		return
	}
	e.history.Save(e.clip)
	for i := range e.clip.Notes {
		e.clip.Notes[i].Selected = true
	}
	e.commit("Select all")
}

// DeselectAll clears the selection.
func (e *Editor) DeselectAll() {
	if e.clip.SelectedCount() == 0 {
		return
	}
	e.history.Save(e.clip)
	e.clip.DeselectAll()
	e.commit("Deselect")
}

// Copy detaches the selection into the clipboard. Not undoable: the clip is
// untouched.
func (e *Editor) Copy() {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.clipboard = e.clipboard[:0]
	for _, n := range sel {
		cp := *n
		cp.Selected = false
		e.clipboard = append(e.clipboard, cp)
	}
}

// Cut copies the selection then deletes it as one command.
func (e *Editor) Cut() {
	if e.clip.SelectedCount() == 0 {
		return
	}
	e.Copy()
	count := e.clip.SelectedCount()
	e.history.Save(e.clip)
	kept := e.clip.Notes[:0]
	for _, n := range e.clip.Notes {
		if !n.Selected {
			kept = append(kept, n)
		}
	}
	e.clip.Notes = kept
	e.commit(noteCountLabel("Cut", count))
}

// Paste stamps the clipboard at the insert marker (beat 0 if unset),
// shifting the whole buffer by the delta between the marker and its earliest
// note. Pasted notes get fresh ids and become the selection.
func (e *Editor) Paste() {
	if len(e.clipboard) == 0 {
		return
	}
	earliest := e.clipboard[0].Start
	for _, n := range e.clipboard {
		earliest = minOf(earliest, n.Start)
	}
	delta := e.InsertMarker() - earliest

	e.history.Save(e.clip)
	e.clip.DeselectAll()
	for _, n := range e.clipboard {
		cp := n
		cp.ID = e.newID()
		cp.Start = maxOf(n.Start+delta, 0)
		cp.Selected = true
		e.clip.Notes = append(e.clip.Notes, cp)
		e.clip.ExtendLoopFor(cp.End())
	}
	e.commit(noteCountLabel("Paste", len(e.clipboard)))
}

// DuplicateSelection clones the selection in place, shifted right by the
// selection's span. Originals are deselected; the clones become the
// selection.
func (e *Editor) DuplicateSelection() {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	minStart := sel[0].Start
	maxEnd := sel[0].End()
	for _, n := range sel {
		minStart = minOf(minStart, n.Start)
		maxEnd = maxOf(maxEnd, n.End())
	}
	span := maxEnd - minStart

	e.history.Save(e.clip)
	clones := make([]Note, 0, len(sel))
	for _, n := range sel {
		cp := *n
		cp.ID = e.newID()
		cp.Start += span
		clones = append(clones, cp)
	}
	e.clip.DeselectAll()
	for _, cp := range clones {
		e.clip.Notes = append(e.clip.Notes, cp)
		e.clip.ExtendLoopFor(cp.End())
	}
	e.commit(noteCountLabel("Duplicate", len(clones)))
}

// SliceNote splits a note in two at the given beat, which must lie strictly
// inside the note. The original id disappears; both children get fresh ids.
func (e *Editor) SliceNote(id string, beat float64) {
	n := e.clip.Note(id)
	if n == nil || beat <= n.Start || beat >= n.End() {
		return
	}
	e.history.Save(e.clip)
	left := *n
	right := *n
	left.ID = e.newID()
	left.Duration = beat - n.Start
	right.ID = e.newID()
	right.Start = beat
	right.Duration = n.End() - beat
	e.clip.RemoveNote(id)
	e.clip.Notes = append(e.clip.Notes, left, right)
	e.commit("Slice note")
}

// Transform operations. Each one commits exactly one command and no-ops on
// an empty selection (RandomizeVelocity falls back to the whole clip).

// QuantizeSelection rounds selected starts to the nearest grid line.
func (e *Editor) QuantizeSelection() {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	quantizeNotes(sel, e.opts.GridDivision)
	e.extendLoopForSelection(sel)
	e.commit("Quantize notes")
}

// Swing delays selected notes on odd eighth slots.
func (e *Editor) Swing(amount float64) {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	applySwing(sel, amount)
	e.extendLoopForSelection(sel)
	e.commit("Swing notes")
}

// Stretch scales the selection around its earliest start.
func (e *Editor) Stretch(factor float64) {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	applyStretch(sel, factor)
	e.extendLoopForSelection(sel)
	e.commit("Stretch notes")
}

// Humanize nudges selected starts by small random offsets.
func (e *Editor) Humanize(amount float64) {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	applyHumanize(sel, amount, e.rng)
	e.extendLoopForSelection(sel)
	e.commit("Humanize notes")
}

// Legato extends selected notes to touch the next note of the same pitch.
func (e *Editor) Legato() {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	applyLegato(sel)
	e.extendLoopForSelection(sel)
	e.commit("Legato notes")
}

// Reverse mirrors the selection in time.
func (e *Editor) Reverse() {
	sel := e.clip.Selected()
	if len(sel) == 0 {
		return
	}
	e.history.Save(e.clip)
	reverseNotes(sel)
	e.commit("Reverse notes")
}

// RandomizeVelocity jitters velocities of the selection, or of the whole
// clip when nothing is selected.
func (e *Editor) RandomizeVelocity(amount float64) {
	targets := e.clip.Selected()
	if len(targets) == 0 {
		for i := range e.clip.Notes {
			targets = append(targets, &e.clip.Notes[i])
		}
	}
	if len(targets) == 0 {
		return
	}
	e.history.Save(e.clip)
	randomizeVelocity(targets, amount, e.rng)
	e.commit("Randomize velocity")
}

// SetCCType switches the automation lane target, clearing its points (lane
// type and data are coupled on purpose).
func (e *Editor) SetCCType(t CCType) {
	if e.clip.Lane.Type == t {
		return
	}
	e.history.Save(e.clip)
	e.clip.Lane.SetType(t)
	e.commit(fmt.Sprintf("Switch lane to %s", t))
}

// AddCCPoint inserts an automation point, ordered by time.
func (e *Editor) AddCCPoint(time, value float64) {
	e.history.Save(e.clip)
	e.clip.Lane.InsertPoint(time, value)
	e.commit("Add CC point")
}

// RemoveCCPoint deletes the automation point at index i.
func (e *Editor) RemoveCCPoint(i int) {
	if i < 0 || i >= len(e.clip.Lane.Points) {
		return
	}
	e.history.Save(e.clip)
	e.clip.Lane.RemovePointAt(i)
	e.commit("Remove CC point")
}

func (e *Editor) extendLoopForSelection(sel []*Note) {
	for _, n := range sel {
		e.clip.ExtendLoopFor(n.End())
	}
}

// KeyPress handles the keyboard binding table. Single-letter tool shortcuts
// require no platform modifier so they never collide with command-qualified
// clipboard shortcuts. Returns true if the key was handled.
func (e *Editor) KeyPress(key string, mods Modifiers) bool {
	e.mods = mods

	if mods.Command {
		switch key {
		case "z":
			if mods.Shift {
				e.Redo()
			} else {
				e.Undo()
			}
		case "c":
			e.Copy()
		case "x":
			e.Cut()
		case "v":
			e.Paste()
		case "d", "b":
			e.DuplicateSelection()
		case "a":
			e.SelectAll()
		default:
			return false
		}
		return true
	}

	switch key {
	case "delete", "backspace":
		e.DeleteSelection()
	case "escape":
		e.DeselectAll()
	case "q":
		e.QuantizeSelection()
	case "z":
		e.SetTool(ToolDraw)
	case "x":
		e.SetTool(ToolSelect)
	case "c":
		e.SetTool(ToolEraser)
	case "v":
		e.SetTool(ToolDuplicate)
	case "b":
		e.SetTool(ToolSlice)
	case "k":
		e.ToggleChordPalette()
	default:
		return false
	}
	return true
}

func noteCountLabel(verb string, n int) string {
	if n == 1 {
		return verb + " note"
	}
	return fmt.Sprintf("%s %d notes", verb, n)
}
