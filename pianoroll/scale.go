package pianoroll

// ScaleType names an interval set over the twelve pitch classes.
type ScaleType int

const (
	ScaleMajor ScaleType = iota
	ScaleMinor
	ScaleHarmonicMinor
	ScaleDorian
	ScaleMixolydian
	ScalePentatonicMajor
	ScalePentatonicMinor
	ScaleBlues
	ScaleChromatic
)

var scaleIntervals = map[ScaleType][]int{
	ScaleMajor:           {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:           {0, 2, 3, 5, 7, 8, 10},
	ScaleHarmonicMinor:   {0, 2, 3, 5, 7, 8, 11},
	ScaleDorian:          {0, 2, 3, 5, 7, 9, 10},
	ScaleMixolydian:      {0, 2, 4, 5, 7, 9, 10},
	ScalePentatonicMajor: {0, 2, 4, 7, 9},
	ScalePentatonicMinor: {0, 3, 5, 7, 10},
	ScaleBlues:           {0, 3, 5, 6, 7, 10},
	ScaleChromatic:       {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

func (t ScaleType) String() string {
	switch t {
	case ScaleMajor:
		return "major"
	case ScaleMinor:
		return "minor"
	case ScaleHarmonicMinor:
		return "harmonic minor"
	case ScaleDorian:
		return "dorian"
	case ScaleMixolydian:
		return "mixolydian"
	case ScalePentatonicMajor:
		return "pentatonic major"
	case ScalePentatonicMinor:
		return "pentatonic minor"
	case ScaleBlues:
		return "blues"
	case ScaleChromatic:
		return "chromatic"
	}
	return "unknown"
}

// NoteNames maps pitch class to display name, C first.
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Scale is a root pitch class plus an interval set. Stateless beyond
// configuration; used only for pitch-snapping queries.
type Scale struct {
	Root int       `json:"root"` // pitch class 0..11, 0 = C
	Type ScaleType `json:"type"`
}

// Contains reports whether the pitch's class belongs to the scale.
func (s Scale) Contains(pitch int) bool {
	if pitch < 0 || pitch > MaxPitch {
		return false
	}
	pc := ((pitch-s.Root)%12 + 12) % 12
	for _, iv := range scaleIntervals[s.Type] {
		if pc == iv {
			return true
		}
	}
	return false
}

// Snap returns the nearest in-scale pitch. In-scale input is returned as is.
// Otherwise both directions are searched outward symmetrically, clamped to
// [0,127], and the numerically closer neighbor wins; ties go to the lower
// pitch.
func (s Scale) Snap(pitch int) int {
	pitch = clamp(pitch, 0, MaxPitch)
	if s.Contains(pitch) {
		return pitch
	}
	lower, upper := -1, -1
	for d := 1; d <= MaxPitch; d++ {
		if lower < 0 && pitch-d >= 0 && s.Contains(pitch-d) {
			lower = pitch - d
		}
		if upper < 0 && pitch+d <= MaxPitch && s.Contains(pitch+d) {
			upper = pitch + d
		}
		if lower >= 0 && upper >= 0 {
			break
		}
	}
	switch {
	case lower < 0:
		return upper
	case upper < 0:
		return lower
	case pitch-lower <= upper-pitch:
		return lower
	default:
		return upper
	}
}
