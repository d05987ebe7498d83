package pianoroll

import "time"

// Engine is the external audio engine boundary. Calls are fire-and-forget;
// the editor never depends on an engine being present.
type Engine interface {
	NoteOn(trackID string, pitch, velocity int)
	NoteOff(trackID string, pitch, velocity int)
}

// ChordReleaseDelay is how long stamped chord previews ring before their
// scheduled note-offs.
const ChordReleaseDelay = 500 * time.Millisecond

// Audition previews editing actions against the engine, holding at most one
// sustained note at a time. A nil engine disables it without affecting
// editing.
type Audition struct {
	engine       Engine
	trackID      string
	heldPitch    int
	heldVelocity int
	holding      bool
	releaseDelay time.Duration
}

// NewAudition creates an audition controller for one track.
func NewAudition(engine Engine, trackID string) *Audition {
	return &Audition{
		engine:       engine,
		trackID:      trackID,
		releaseDelay: ChordReleaseDelay,
	}
}

// Start sends note-on for pitch unless a note is already held.
func (a *Audition) Start(pitch, velocity int) {
	if a.engine == nil || a.holding {
		return
	}
	a.heldPitch = pitch
	a.heldVelocity = velocity
	a.holding = true
	a.engine.NoteOn(a.trackID, pitch, velocity)
}

// Retune moves the held note to a new pitch: note-off for the old pitch and
// note-on for the new one, back to back so no double trigger is audible.
func (a *Audition) Retune(pitch int) {
	if a.engine == nil || !a.holding || pitch == a.heldPitch {
		return
	}
	a.engine.NoteOff(a.trackID, a.heldPitch, a.heldVelocity)
	a.engine.NoteOn(a.trackID, pitch, a.heldVelocity)
	a.heldPitch = pitch
}

// Stop releases the held note. Safe to call with nothing held; pointer-up
// always calls it.
func (a *Audition) Stop() {
	if a.engine == nil || !a.holding {
		return
	}
	a.holding = false
	a.engine.NoteOff(a.trackID, a.heldPitch, a.heldVelocity)
}

// StampChord plays all pitches at once and schedules their release after the
// chord preview delay instead of on pointer-up.
func (a *Audition) StampChord(pitches []int, velocity int) {
	if a.engine == nil || len(pitches) == 0 {
		return
	}
	for _, p := range pitches {
		a.engine.NoteOn(a.trackID, p, velocity)
	}
	held := append([]int(nil), pitches...)
	time.AfterFunc(a.releaseDelay, func() {
		for _, p := range held {
			a.engine.NoteOff(a.trackID, p, velocity)
		}
	})
}
