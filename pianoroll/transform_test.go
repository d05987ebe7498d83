package pianoroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func notePtrs(notes []Note) []*Note {
	out := make([]*Note, len(notes))
	for i := range notes {
		out[i] = &notes[i]
	}
	return out
}

func TestQuantizeNotesRoundsStarts(t *testing.T) {
	notes := []Note{
		{Start: 0.3, Duration: 0.7},
		{Start: 1.4, Duration: 1},
		{Start: 2.0, Duration: 1},
	}
	quantizeNotes(notePtrs(notes), 0.25)
	assert.Equal(t, 0.25, notes[0].Start)
	assert.Equal(t, 1.5, notes[1].Start)
	assert.Equal(t, 2.0, notes[2].Start)
	assert.Equal(t, 0.7, notes[0].Duration) // durations untouched
}

func TestSwingDelaysOddEighthSlots(t *testing.T) {
	notes := []Note{
		{Start: 0},   // slot 0
		{Start: 0.5}, // slot 1
		{Start: 1.0}, // slot 2
		{Start: 1.5}, // slot 3
	}
	applySwing(notePtrs(notes), 1.0)
	assert.Equal(t, 0.0, notes[0].Start)
	assert.InDelta(t, 0.83, notes[1].Start, 1e-9)
	assert.Equal(t, 1.0, notes[2].Start)
	assert.InDelta(t, 1.83, notes[3].Start, 1e-9)
}

func TestSwingZeroAmountIsIdentity(t *testing.T) {
	notes := []Note{{Start: 0.5}, {Start: 1.5}}
	applySwing(notePtrs(notes), 0)
	assert.Equal(t, 0.5, notes[0].Start)
	assert.Equal(t, 1.5, notes[1].Start)
}

func TestStretchAnchorsAtEarliestStart(t *testing.T) {
	notes := []Note{
		{Start: 1, Duration: 1},
		{Start: 2, Duration: 0.5},
	}
	applyStretch(notePtrs(notes), 2.0)
	assert.Equal(t, 1.0, notes[0].Start) // anchor fixed
	assert.Equal(t, 2.0, notes[0].Duration)
	assert.Equal(t, 3.0, notes[1].Start)
	assert.Equal(t, 1.0, notes[1].Duration)
}

func TestStretchHalfInvertsDouble(t *testing.T) {
	notes := []Note{
		{Start: 1, Duration: 1},
		{Start: 2.5, Duration: 0.5},
	}
	ptrs := notePtrs(notes)
	applyStretch(ptrs, 2.0)
	applyStretch(ptrs, 0.5)
	assert.InDelta(t, 1.0, notes[0].Start, 1e-9)
	assert.InDelta(t, 1.0, notes[0].Duration, 1e-9)
	assert.InDelta(t, 2.5, notes[1].Start, 1e-9)
	assert.InDelta(t, 0.5, notes[1].Duration, 1e-9)
}

func TestHumanizeStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	notes := make([]Note, 50)
	for i := range notes {
		notes[i] = Note{Start: float64(i) * 0.5, Duration: 0.25}
	}
	orig := append([]Note(nil), notes...)

	applyHumanize(notePtrs(notes), 0.5, rng)
	for i := range notes {
		delta := notes[i].Start - orig[i].Start
		assert.LessOrEqual(t, delta, 0.05+1e-9)
		assert.GreaterOrEqual(t, delta, -0.05-1e-9)
		assert.GreaterOrEqual(t, notes[i].Start, 0.0)
	}
}

func TestLegatoFillsGapsPerPitch(t *testing.T) {
	notes := []Note{
		{Pitch: 60, Start: 0, Duration: 0.25},
		{Pitch: 60, Start: 1, Duration: 0.25},
		{Pitch: 60, Start: 2, Duration: 1},
		{Pitch: 64, Start: 0.5, Duration: 0.1},
	}
	applyLegato(notePtrs(notes))
	assert.Equal(t, 1.0, notes[0].Duration)
	assert.Equal(t, 1.0, notes[1].Duration)
	assert.Equal(t, 1.0, notes[2].Duration)  // last of its pitch, untouched
	assert.Equal(t, 0.1, notes[3].Duration)  // alone on its pitch
}

func TestLegatoNeverShrinksOverlappingNotes(t *testing.T) {
	notes := []Note{
		{Pitch: 60, Start: 0, Duration: 2},    // already past the next start
		{Pitch: 60, Start: 1, Duration: 0.25}, // short, gets extended
		{Pitch: 60, Start: 3, Duration: 1},
	}
	applyLegato(notePtrs(notes))
	assert.Equal(t, 2.0, notes[0].Duration) // not shrunk to the 1-beat gap
	assert.Equal(t, 2.0, notes[1].Duration)
	assert.Equal(t, 1.0, notes[2].Duration)
}

func TestReverseMirrorsSelection(t *testing.T) {
	notes := []Note{
		{Pitch: 60, Start: 0, Duration: 1},
		{Pitch: 64, Start: 3, Duration: 1},
	}
	reverseNotes(notePtrs(notes))
	assert.Equal(t, 3.0, notes[0].Start)
	assert.Equal(t, 0.0, notes[1].Start)
	assert.Equal(t, 1.0, notes[0].Duration)
	assert.Equal(t, 1.0, notes[1].Duration)
}

func TestReverseIsAnInvolution(t *testing.T) {
	notes := []Note{
		{Start: 0.5, Duration: 0.5},
		{Start: 2, Duration: 1},
		{Start: 4, Duration: 0.25},
	}
	orig := append([]Note(nil), notes...)
	ptrs := notePtrs(notes)
	reverseNotes(ptrs)
	reverseNotes(ptrs)
	for i := range notes {
		assert.InDelta(t, orig[i].Start, notes[i].Start, 1e-9)
		assert.InDelta(t, orig[i].Duration, notes[i].Duration, 1e-9)
	}
}

func TestRandomizeVelocityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	notes := make([]Note, 100)
	for i := range notes {
		notes[i] = Note{Velocity: 100}
	}
	randomizeVelocity(notePtrs(notes), 1.0, rng)
	for i := range notes {
		assert.GreaterOrEqual(t, notes[i].Velocity, 50)
		assert.LessOrEqual(t, notes[i].Velocity, 127)
	}
}

func TestRandomizeVelocityClampsLow(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	notes := make([]Note, 100)
	for i := range notes {
		notes[i] = Note{Velocity: 10}
	}
	randomizeVelocity(notePtrs(notes), 1.0, rng)
	for i := range notes {
		assert.GreaterOrEqual(t, notes[i].Velocity, 1)
	}
}
