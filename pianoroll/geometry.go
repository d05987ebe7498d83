package pianoroll

import "math"

// Geometry converts between pixel offsets and (beat, pitch) coordinates for
// the current zoom. It is scale-agnostic: scale lock is applied by the
// caller on top of YToPitch.
type Geometry struct {
	PixelsPerBeat float64
	PixelsPerNote float64
}

// BeatToX converts a beat position to a horizontal pixel offset.
func (g Geometry) BeatToX(beat float64) float64 {
	return beat * g.PixelsPerBeat
}

// XToBeat converts a horizontal pixel offset to a beat position.
func (g Geometry) XToBeat(x float64) float64 {
	return x / g.PixelsPerBeat
}

// PitchToY converts a MIDI pitch to a vertical pixel offset. Higher pitches
// draw higher on screen, so the axis is inverted.
func (g Geometry) PitchToY(pitch int) float64 {
	return float64(MaxPitch-pitch) * g.PixelsPerNote
}

// YToPitch converts a vertical pixel offset to the MIDI pitch of the row it
// falls in.
func (g Geometry) YToPitch(y float64) int {
	return MaxPitch - int(math.Floor(y/g.PixelsPerNote))
}
