package pianoroll

// ChordType names a set of semitone offsets from the chord root.
type ChordType int

const (
	ChordMajor ChordType = iota
	ChordMinor
	ChordDiminished
	ChordAugmented
	ChordSus2
	ChordSus4
	ChordMajor7
	ChordMinor7
	ChordDominant7
)

var chordOffsets = map[ChordType][]int{
	ChordMajor:      {0, 4, 7},
	ChordMinor:      {0, 3, 7},
	ChordDiminished: {0, 3, 6},
	ChordAugmented:  {0, 4, 8},
	ChordSus2:       {0, 2, 7},
	ChordSus4:       {0, 5, 7},
	ChordMajor7:     {0, 4, 7, 11},
	ChordMinor7:     {0, 3, 7, 10},
	ChordDominant7:  {0, 4, 7, 10},
}

func (t ChordType) String() string {
	switch t {
	case ChordMajor:
		return "maj"
	case ChordMinor:
		return "min"
	case ChordDiminished:
		return "dim"
	case ChordAugmented:
		return "aug"
	case ChordSus2:
		return "sus2"
	case ChordSus4:
		return "sus4"
	case ChordMajor7:
		return "maj7"
	case ChordMinor7:
		return "min7"
	case ChordDominant7:
		return "7"
	}
	return "?"
}

// Chord is a configured root pitch class plus a chord type, used to stamp
// multiple notes from one click.
type Chord struct {
	Root int       `json:"root"` // pitch class 0..11
	Type ChordType `json:"type"`
}

// Pitches returns the chord's MIDI pitches voiced in the octave of the
// clicked pitch, dropping any voice that falls outside 0..127.
func (c Chord) Pitches(clicked int) []int {
	clicked = clamp(clicked, 0, MaxPitch)
	root := (clicked/12)*12 + ((c.Root%12 + 12) % 12)
	var out []int
	for _, off := range chordOffsets[c.Type] {
		p := root + off
		if p >= 0 && p <= MaxPitch {
			out = append(out, p)
		}
	}
	return out
}
