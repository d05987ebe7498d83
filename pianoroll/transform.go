package pianoroll

import (
	"math/rand"
	"sort"
)

// Per-note transforms. These operate on pointers into the clip's note slice;
// the editor wraps each in a single undo command.

// quantizeNotes rounds each note's start to the nearest grid line. Durations
// are untouched.
func quantizeNotes(notes []*Note, gridDivision float64) {
	for _, n := range notes {
		n.Start = RoundToGrid(n.Start, gridDivision)
	}
}

// applySwing delays notes sitting on odd eighth-note slots by up to a third
// of a beat. Notes on even slots stay put.
func applySwing(notes []*Note, amount float64) {
	amount = clamp(amount, 0, 1)
	for _, n := range notes {
		slot := int(n.Start/0.5 + 0.5)
		if slot%2 == 1 {
			n.Start += amount * 0.33
		}
	}
}

// applyStretch scales start and duration by factor, anchored at the earliest
// selected start.
func applyStretch(notes []*Note, factor float64) {
	if len(notes) == 0 || factor <= 0 {
		return
	}
	anchor := notes[0].Start
	for _, n := range notes {
		if n.Start < anchor {
			anchor = n.Start
		}
	}
	for _, n := range notes {
		n.Start = anchor + (n.Start-anchor)*factor
		n.Duration *= factor
	}
}

// applyHumanize offsets each start by an independent uniform value in
// [-0.1*amount, +0.1*amount] beats, clamped to >= 0.
func applyHumanize(notes []*Note, amount float64, rng *rand.Rand) {
	amount = clamp(amount, 0, 1)
	for _, n := range notes {
		offset := (rng.Float64()*2 - 1) * 0.1 * amount
		n.Start = maxOf(n.Start+offset, 0)
	}
}

// applyLegato extends each note to touch the next note of the same pitch.
// Notes already reaching past the next start are left alone, as is the last
// note of each pitch group.
func applyLegato(notes []*Note) {
	byPitch := make(map[int][]*Note)
	for _, n := range notes {
		byPitch[n.Pitch] = append(byPitch[n.Pitch], n)
	}
	for _, group := range byPitch {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Start < group[j].Start
		})
		for i := 0; i < len(group)-1; i++ {
			gap := group[i+1].Start - group[i].Start
			if gap > group[i].Duration {
				group[i].Duration = gap
			}
		}
	}
}

// reverseNotes mirrors each note's center time around the selection's
// midpoint, preserving durations. Starts are clamped to >= 0.
func reverseNotes(notes []*Note) {
	if len(notes) == 0 {
		return
	}
	minStart := notes[0].Start
	maxEnd := notes[0].End()
	for _, n := range notes {
		minStart = minOf(minStart, n.Start)
		maxEnd = maxOf(maxEnd, n.End())
	}
	mid := (minStart + maxEnd) / 2
	for _, n := range notes {
		center := n.Start + n.Duration/2
		mirrored := 2*mid - center
		n.Start = maxOf(mirrored-n.Duration/2, 0)
	}
}

// randomizeVelocity offsets each velocity by an independent uniform integer
// in [-50*amount, +50*amount], clamped to [1,127].
func randomizeVelocity(notes []*Note, amount float64, rng *rand.Rand) {
	amount = clamp(amount, 0, 1)
	span := int(50 * amount)
	for _, n := range notes {
		offset := 0
		if span > 0 {
			offset = rng.Intn(2*span+1) - span
		}
		n.Velocity = clamp(n.Velocity+offset, 1, 127)
	}
}
