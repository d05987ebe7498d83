package pianoroll

import (
	"math"

	"go-pianoroll/debug"
)

// edgeBand is how close (in pixels) a pointer-down must be to a note
// boundary to start a resize instead of a move.
const edgeBand = 9

// loopMarkerRadius is the ruler hit-test radius around loop markers.
const loopMarkerRadius = 10

// PointerDown starts a gesture. Coordinates are content-space pixels (the
// host adds the scroll offset before calling).
func (e *Editor) PointerDown(x, y float64) {
	if e.gesture != nil {
		return
	}
	g := e.view.Geometry()
	beat := g.XToBeat(x)
	pitch := g.YToPitch(y)
	tool := e.EffectiveTool()
	debug.Log("gesture", "down tool=%s beat=%.3f pitch=%d", tool, beat, pitch)

	// Edge drag takes priority over body drag when both are plausible.
	if tool == ToolDraw || tool == ToolSelect {
		if n, ed := e.noteEdgeAt(x, y); n != nil {
			e.history.Save(e.clip)
			e.gesture = &gestureResizing{noteID: n.ID, edge: ed, original: *n}
			e.audition.Start(n.Pitch, n.Velocity)
			return
		}
	}

	hit := e.clip.NoteAt(beat, pitch)

	switch tool {
	case ToolEraser:
		e.history.Save(e.clip)
		ges := &gestureErasing{erased: make(map[string]bool)}
		if hit != nil {
			ges.erased[hit.ID] = true
			e.clip.RemoveNote(hit.ID)
		}
		e.gesture = ges

	case ToolSlice:
		if hit != nil {
			e.SliceNote(hit.ID, e.snapBeat(beat))
		} else {
			e.SetInsertMarker(e.snapBeat(beat))
		}

	case ToolDuplicate:
		if hit != nil {
			e.beginDuplicateDrag(hit, beat, pitch)
		} else {
			e.SetInsertMarker(e.snapBeat(beat))
		}

	case ToolSelect:
		if hit != nil {
			e.beginMove(hit, beat, pitch)
		} else {
			e.beginBoxSelect(beat, pitch)
		}

	case ToolDraw:
		switch {
		case hit != nil:
			e.beginMove(hit, beat, pitch)
		case e.mods.Shift:
			e.beginBoxSelect(beat, pitch)
		case e.chordPalette:
			e.stampChord(beat, pitch)
		case e.opts.PaintMode:
			e.beginPaint(beat, pitch)
		default:
			e.createNote(beat, pitch)
		}
	}
}

// PointerMove advances the active gesture. No-op while idle.
func (e *Editor) PointerMove(x, y float64) {
	g := e.view.Geometry()
	beat := g.XToBeat(x)
	pitch := g.YToPitch(y)

	switch ges := e.gesture.(type) {
	case *gestureSelecting:
		ges.curBeat, ges.curPitch = beat, pitch
		e.applyBoxSelection(ges)
	case *gestureMoving:
		e.moveTo(ges, beat, pitch)
	case *gestureResizing:
		e.resizeTo(ges, beat)
	case *gestureErasing:
		if n := e.clip.NoteAt(beat, pitch); n != nil && !ges.erased[n.ID] {
			ges.erased[n.ID] = true
			e.clip.RemoveNote(n.ID)
		}
	case *gesturePainting:
		e.paintAt(ges, beat, pitch)
	}
}

// PointerUp terminates the gesture, committing at most one command. The
// held audition note is always released.
func (e *Editor) PointerUp(x, y float64) {
	defer e.audition.Stop()

	ges := e.gesture
	e.gesture = nil
	if ges != nil {
		debug.Log("gesture", "up %s", ges.gestureName())
	}

	switch ges := ges.(type) {
	case *gestureSelecting:
		if e.selectionChanged(ges.before) {
			e.commit("Change selection")
		} else {
			e.history.Discard()
		}
	case *gestureMoving:
		e.finishMove(ges)
	case *gestureResizing:
		if ges.changed {
			if n := e.clip.Note(ges.noteID); n != nil {
				e.lastDuration = n.Duration
			}
			e.commit("Resize note")
		} else {
			e.history.Discard()
		}
	case *gestureErasing:
		if len(ges.erased) > 0 {
			e.commit(noteCountLabel("Erase", len(ges.erased)))
		} else {
			e.history.Discard()
		}
	case *gesturePainting:
		if len(ges.stamped) > 0 {
			e.commit(noteCountLabel("Paint", len(ges.stamped)))
		} else {
			e.history.Discard()
		}
	}
}

// createNote handles a draw-tool press on empty space. The note can be
// dragged to reposition before release; either way release commits one
// "Create note" command.
func (e *Editor) createNote(beat float64, pitch int) {
	e.history.Save(e.clip)
	n := Note{
		ID:       e.newID(),
		Pitch:    e.lockPitch(pitch),
		Velocity: DefaultVelocity,
		Start:    e.snapBeat(beat),
		Duration: e.lastDuration,
		Selected: true,
	}
	e.clip.DeselectAll()
	e.clip.Notes = append(e.clip.Notes, n)
	e.clip.ExtendLoopFor(n.End())
	e.gesture = &gestureMoving{
		grabID:    n.ID,
		downBeat:  beat,
		downPitch: pitch,
		created:   true,
		originals: map[string]Note{n.ID: n},
	}
	e.audition.Start(n.Pitch, n.Velocity)
}

// beginMove starts dragging a note body. If the note belongs to a larger
// selection the whole selection is dragged.
func (e *Editor) beginMove(hit *Note, beat float64, pitch int) {
	e.history.Save(e.clip)
	targets := []*Note{hit}
	if hit.Selected && e.clip.SelectedCount() > 1 {
		targets = e.clip.Selected()
	}
	originals := make(map[string]Note, len(targets))
	for _, n := range targets {
		originals[n.ID] = *n
	}
	e.gesture = &gestureMoving{
		grabID:    hit.ID,
		downBeat:  beat,
		downPitch: pitch,
		originals: originals,
	}
	e.audition.Start(hit.Pitch, hit.Velocity)
}

// beginDuplicateDrag clones the clicked note (or the full selection when the
// clicked note is part of it) with fresh ids, deselects the originals, and
// drags the clones.
func (e *Editor) beginDuplicateDrag(hit *Note, beat float64, pitch int) {
	e.history.Save(e.clip)
	sources := []*Note{hit}
	if hit.Selected && e.clip.SelectedCount() > 1 {
		sources = e.clip.Selected()
	}

	grabID := ""
	clones := make([]Note, 0, len(sources))
	for _, src := range sources {
		cp := *src
		cp.ID = e.newID()
		cp.Selected = true
		if src.ID == hit.ID {
			grabID = cp.ID
		}
		clones = append(clones, cp)
	}
	e.clip.DeselectAll()

	originals := make(map[string]Note, len(clones))
	for _, cp := range clones {
		e.clip.Notes = append(e.clip.Notes, cp)
		originals[cp.ID] = cp
	}
	e.gesture = &gestureMoving{
		grabID:     grabID,
		downBeat:   beat,
		downPitch:  pitch,
		originals:  originals,
		duplicated: true,
	}
	e.audition.Start(hit.Pitch, hit.Velocity)
}

// beginBoxSelect starts a live box selection.
func (e *Editor) beginBoxSelect(beat float64, pitch int) {
	e.history.Save(e.clip)
	before := make(map[string]bool, len(e.clip.Notes))
	for _, n := range e.clip.Notes {
		before[n.ID] = n.Selected
	}
	ges := &gestureSelecting{
		anchorBeat:  beat,
		anchorPitch: pitch,
		curBeat:     beat,
		curPitch:    pitch,
		before:      before,
	}
	e.gesture = ges
	e.applyBoxSelection(ges)
}

// applyBoxSelection recomputes the selection from scratch on every move:
// a note is selected iff its half-open time interval overlaps the
// rectangle's and its pitch lies within the rectangle's pitch span.
func (e *Editor) applyBoxSelection(ges *gestureSelecting) {
	from := minOf(ges.anchorBeat, ges.curBeat)
	to := maxOf(ges.anchorBeat, ges.curBeat)
	lo := minOf(ges.anchorPitch, ges.curPitch)
	hi := maxOf(ges.anchorPitch, ges.curPitch)
	for i := range e.clip.Notes {
		n := &e.clip.Notes[i]
		n.Selected = n.Overlaps(from, to) && n.Pitch >= lo && n.Pitch <= hi
	}
}

func (e *Editor) selectionChanged(before map[string]bool) bool {
	for _, n := range e.clip.Notes {
		if before[n.ID] != n.Selected {
			return true
		}
	}
	return false
}

// stampChord creates the full chord voicing at the clicked position as one
// command, previewing all pitches at once.
func (e *Editor) stampChord(beat float64, pitch int) {
	pitches := e.chord.Pitches(e.lockPitch(pitch))
	if len(pitches) == 0 {
		return
	}
	e.history.Save(e.clip)
	start := e.snapBeat(beat)
	e.clip.DeselectAll()
	for _, p := range pitches {
		n := Note{
			ID:       e.newID(),
			Pitch:    p,
			Velocity: DefaultVelocity,
			Start:    start,
			Duration: e.lastDuration,
			Selected: true,
		}
		e.clip.Notes = append(e.clip.Notes, n)
		e.clip.ExtendLoopFor(n.End())
	}
	e.commit("Stamp chord")
	e.audition.StampChord(pitches, DefaultVelocity)
}

// beginPaint starts legacy click-drag note stamping.
func (e *Editor) beginPaint(beat float64, pitch int) {
	e.history.Save(e.clip)
	ges := &gesturePainting{stamped: make(map[paintCell]bool)}
	e.gesture = ges
	e.paintAt(ges, beat, pitch)
}

// paintAt stamps one grid-cell-long note per cell crossed, once per cell per
// gesture.
func (e *Editor) paintAt(ges *gesturePainting, beat float64, pitch int) {
	if beat < 0 {
		return
	}
	grid := e.opts.GridDivision
	cell := paintCell{col: int(beat / grid), pitch: e.lockPitch(pitch)}
	if ges.stamped[cell] {
		return
	}
	ges.stamped[cell] = true
	start := float64(cell.col) * grid
	if e.clip.NoteAt(start, cell.pitch) != nil {
		return
	}
	n := Note{
		ID:       e.newID(),
		Pitch:    cell.pitch,
		Velocity: DefaultVelocity,
		Start:    start,
		Duration: grid,
	}
	e.clip.Notes = append(e.clip.Notes, n)
	e.clip.ExtendLoopFor(n.End())
}

// moveTo applies the drag delta to every dragged note, snapping through the
// grabbed note's start so relative offsets survive.
func (e *Editor) moveTo(ges *gestureMoving, beat float64, pitch int) {
	grab, ok := ges.originals[ges.grabID]
	if !ok {
		return
	}
	newStart := grab.Start + (beat - ges.downBeat)
	if e.opts.Snap {
		newStart = SnapToGrid(newStart, e.opts.GridDivision)
	}
	newStart = maxOf(newStart, 0)
	delta := newStart - grab.Start
	deltaPitch := pitch - ges.downPitch

	for id, orig := range ges.originals {
		n := e.clip.Note(id)
		if n == nil {
			continue
		}
		n.Start = maxOf(orig.Start+delta, 0)
		n.Pitch = e.lockPitch(orig.Pitch + deltaPitch)
		e.clip.ExtendLoopFor(n.End())
	}
	if delta != 0 || deltaPitch != 0 {
		ges.moved = true
	}
	if n := e.clip.Note(ges.grabID); n != nil {
		e.audition.Retune(n.Pitch)
	}
}

// resizeTo drags one note edge, never collapsing the duration below one grid
// unit.
func (e *Editor) resizeTo(ges *gestureResizing, beat float64) {
	n := e.clip.Note(ges.noteID)
	if n == nil {
		return
	}
	grid := e.opts.GridDivision
	switch ges.edge {
	case edgeLeft:
		newStart := clamp(e.snapBeat(beat), 0, ges.original.End()-grid)
		n.Start = newStart
		n.Duration = ges.original.End() - newStart
	case edgeRight:
		newEnd := maxOf(e.snapBeat(beat), ges.original.Start+grid)
		n.Duration = newEnd - ges.original.Start
	}
	if *n != ges.original {
		ges.changed = true
	}
	e.clip.ExtendLoopFor(n.End())
}

// finishMove commits the single command a move gesture produces, or resolves
// a plain click into a selection toggle.
func (e *Editor) finishMove(ges *gestureMoving) {
	switch {
	case ges.created:
		if n := e.clip.Note(ges.grabID); n != nil {
			e.lastDuration = n.Duration
			e.SetInsertMarker(n.Start)
		}
		e.commit("Create note")
	case ges.duplicated:
		e.commit(noteCountLabel("Duplicate", len(ges.originals)))
	case ges.moved:
		e.commit(noteCountLabel("Move", len(ges.originals)))
	default:
		// Click without drag on an existing note: toggle it. Shift keeps the
		// rest of the selection; a plain click clears it.
		n := e.clip.Note(ges.grabID)
		if n == nil {
			e.history.Discard()
			return
		}
		if e.mods.Shift {
			n.Selected = !n.Selected
		} else {
			was := n.Selected
			e.clip.DeselectAll()
			n.Selected = !was
		}
		e.commit("Change selection")
	}
}

// noteEdgeAt finds the nearest note boundary within the edge band at the
// pointer's pitch row.
func (e *Editor) noteEdgeAt(x, y float64) (*Note, edge) {
	g := e.view.Geometry()
	pitch := g.YToPitch(y)
	var best *Note
	var bestEdge edge
	bestDist := math.Inf(1)
	for i := range e.clip.Notes {
		n := &e.clip.Notes[i]
		if n.Pitch != pitch {
			continue
		}
		if d := math.Abs(x - g.BeatToX(n.Start)); d <= edgeBand && d < bestDist {
			best, bestEdge, bestDist = n, edgeLeft, d
		}
		if d := math.Abs(x - g.BeatToX(n.End())); d <= edgeBand && d < bestDist {
			best, bestEdge, bestDist = n, edgeRight, d
		}
	}
	return best, bestEdge
}

// RulerDown starts a ruler gesture: a loop-marker drag when the press lands
// within the marker radius, otherwise cursor-anchored zoom/pan. The two
// never mix within one gesture. x and y are screen-space pixels.
func (e *Editor) RulerDown(x, y float64) {
	if e.ruler != nil {
		return
	}
	g := e.view.Geometry()
	endX := g.BeatToX(e.clip.LoopLength) - e.view.ScrollX
	startX := -e.view.ScrollX

	switch {
	case math.Abs(x-endX) <= loopMarkerRadius:
		e.history.Save(e.clip)
		e.ruler = &rulerGesture{kind: rulerLoopEnd, downX: x, downY: y}
	case math.Abs(x-startX) <= loopMarkerRadius:
		// The loop start marker sits at beat zero; grabbing it still
		// reserves the gesture so no zoom/pan happens underneath.
		e.ruler = &rulerGesture{kind: rulerLoopStart, downX: x, downY: y}
	default:
		e.ruler = &rulerGesture{
			kind:       rulerZoomPan,
			downX:      x,
			downY:      y,
			startZoom:  e.view.PixelsPerBeat,
			anchorBeat: g.XToBeat(e.view.ContentX(x)),
		}
	}
}

// RulerMove advances the ruler gesture: vertical drag zooms around the
// anchored beat (drag down zooms in), horizontal drag pans; loop-end drags
// resize the loop.
func (e *Editor) RulerMove(x, y float64) {
	if e.ruler == nil {
		return
	}
	switch e.ruler.kind {
	case rulerLoopEnd:
		g := e.view.Geometry()
		beat := g.XToBeat(e.view.ContentX(x))
		if e.opts.Snap {
			beat = RoundToGrid(beat, e.opts.GridDivision)
		}
		newLen := ClampLoopLength(beat, e.opts.GridDivision)
		if newLen != e.clip.LoopLength {
			e.clip.LoopLength = newLen
			e.ruler.changed = true
		}
	case rulerLoopStart:
		// fixed at beat zero
	case rulerZoomPan:
		factor := 1 + (y-e.ruler.downY)/100
		factor = maxOf(factor, 0.01)
		e.view.ZoomAround(e.ruler.startZoom*factor, e.ruler.anchorBeat, x, e.clip.LoopLength)
	}
}

// RulerUp ends the ruler gesture. Only loop resizes commit a command; view
// changes are not undoable.
func (e *Editor) RulerUp(x, y float64) {
	r := e.ruler
	e.ruler = nil
	if r == nil {
		return
	}
	if r.kind == rulerLoopEnd {
		if r.changed {
			e.commit("Resize loop")
		} else {
			e.history.Discard()
		}
	}
}
