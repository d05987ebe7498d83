package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatXRoundTrip(t *testing.T) {
	g := Geometry{PixelsPerBeat: 40, PixelsPerNote: 12}
	for _, beat := range []float64{0, 0.25, 1.3, 17.5} {
		assert.InDelta(t, beat, g.XToBeat(g.BeatToX(beat)), 1e-9)
	}
}

func TestPitchAxisInverted(t *testing.T) {
	g := Geometry{PixelsPerBeat: 40, PixelsPerNote: 12}

	// Pitch 127 is the top row, pitch 0 the bottom.
	assert.Equal(t, 0.0, g.PitchToY(127))
	assert.Equal(t, 127.0*12, g.PitchToY(0))

	// y anywhere inside a row maps back to that row's pitch.
	for _, pitch := range []int{0, 59, 60, 127} {
		top := g.PitchToY(pitch)
		assert.Equal(t, pitch, g.YToPitch(top))
		assert.Equal(t, pitch, g.YToPitch(top+11.9))
	}
}

func TestGeometryTracksZoom(t *testing.T) {
	near := Geometry{PixelsPerBeat: 160, PixelsPerNote: 12}
	far := Geometry{PixelsPerBeat: 20, PixelsPerNote: 12}
	assert.Equal(t, 160.0, near.BeatToX(1))
	assert.Equal(t, 20.0, far.BeatToX(1))
	assert.Equal(t, 8.0, far.XToBeat(160))
}
