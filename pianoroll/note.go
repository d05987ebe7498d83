package pianoroll

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// MaxPitch is the highest MIDI pitch.
const MaxPitch = 127

// MaxLoopLength is the longest loop a clip can hold, in beats.
const MaxLoopLength = 256.0

// BeatsPerBar is the bar size loop auto-extension rounds up to.
const BeatsPerBar = 4.0

// IDGenerator mints note/clip ids. Injected so tests can use deterministic
// ids instead of UUIDs.
type IDGenerator func() string

// UUIDs is the default id generator.
func UUIDs() string {
	return uuid.New().String()
}

// SequentialIDs returns a generator producing "n1", "n2", ... for tests.
func SequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
}

// Note is a single note in a clip. Start and Duration are in beats.
type Note struct {
	ID       string  `json:"id"`
	Pitch    int     `json:"pitch"`
	Velocity int     `json:"velocity"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Selected bool    `json:"selected"`
}

// End returns the beat at which the note stops sounding.
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Overlaps reports whether the note's half-open [Start,End) interval overlaps
// [from,to).
func (n Note) Overlaps(from, to float64) bool {
	return n.Start < to && n.End() > from
}

// Clip is the unit of editing and of undo. Notes are unordered; ids are
// unique within the clip.
type Clip struct {
	ID         string  `json:"id"`
	TrackID    string  `json:"trackId"`
	Notes      []Note  `json:"notes"`
	LoopLength float64 `json:"loopLength"`
	Lane       CCLane  `json:"lane"`
}

// NewClip creates an empty clip with a four beat loop.
func NewClip(id, trackID string) *Clip {
	return &Clip{
		ID:         id,
		TrackID:    trackID,
		Notes:      []Note{},
		LoopLength: BeatsPerBar,
		Lane:       CCLane{Type: CCModWheel},
	}
}

// Clone returns a deep copy. Undo snapshots are whole-clip clones.
func (c *Clip) Clone() *Clip {
	cp := *c
	cp.Notes = make([]Note, len(c.Notes))
	copy(cp.Notes, c.Notes)
	cp.Lane.Points = make([]CCPoint, len(c.Lane.Points))
	copy(cp.Lane.Points, c.Lane.Points)
	return &cp
}

// Equal reports structural equality, note order included.
func (c *Clip) Equal(o *Clip) bool {
	if c.ID != o.ID || c.TrackID != o.TrackID || c.LoopLength != o.LoopLength {
		return false
	}
	if len(c.Notes) != len(o.Notes) || c.Lane.Type != o.Lane.Type || len(c.Lane.Points) != len(o.Lane.Points) {
		return false
	}
	for i := range c.Notes {
		if c.Notes[i] != o.Notes[i] {
			return false
		}
	}
	for i := range c.Lane.Points {
		if c.Lane.Points[i] != o.Lane.Points[i] {
			return false
		}
	}
	return true
}

// Note returns a pointer to the note with the given id, or nil.
func (c *Clip) Note(id string) *Note {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			return &c.Notes[i]
		}
	}
	return nil
}

// RemoveNote deletes the note with the given id. Missing ids are ignored.
func (c *Clip) RemoveNote(id string) {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			return
		}
	}
}

// NoteAt returns a pointer to a note whose interval covers beat at the given
// pitch, or nil. When several overlap, the one starting latest wins.
func (c *Clip) NoteAt(beat float64, pitch int) *Note {
	var hit *Note
	for i := range c.Notes {
		n := &c.Notes[i]
		if n.Pitch == pitch && beat >= n.Start && beat < n.End() {
			if hit == nil || n.Start > hit.Start {
				hit = n
			}
		}
	}
	return hit
}

// Selected returns pointers to all selected notes.
func (c *Clip) Selected() []*Note {
	var sel []*Note
	for i := range c.Notes {
		if c.Notes[i].Selected {
			sel = append(sel, &c.Notes[i])
		}
	}
	return sel
}

// SelectedCount returns the number of selected notes.
func (c *Clip) SelectedCount() int {
	count := 0
	for i := range c.Notes {
		if c.Notes[i].Selected {
			count++
		}
	}
	return count
}

// DeselectAll clears every note's selection flag.
func (c *Clip) DeselectAll() {
	for i := range c.Notes {
		c.Notes[i].Selected = false
	}
}

// SortNotes orders notes by start time, then pitch. Kept as a presentation
// convenience; the model itself treats notes as unordered.
func (c *Clip) SortNotes() {
	sort.Slice(c.Notes, func(i, j int) bool {
		if c.Notes[i].Start != c.Notes[j].Start {
			return c.Notes[i].Start < c.Notes[j].Start
		}
		return c.Notes[i].Pitch < c.Notes[j].Pitch
	})
}

// ClampLoopLength clamps a loop length to [gridDivision, MaxLoopLength].
func ClampLoopLength(v, gridDivision float64) float64 {
	if v < gridDivision {
		v = gridDivision
	}
	if v > MaxLoopLength {
		v = MaxLoopLength
	}
	return v
}

// ExtendLoopFor grows the loop to the next bar boundary covering end. The
// loop never shrinks here.
func (c *Clip) ExtendLoopFor(end float64) {
	if end <= c.LoopLength {
		return
	}
	bars := int(end / BeatsPerBar)
	grown := float64(bars) * BeatsPerBar
	if grown < end {
		grown += BeatsPerBar
	}
	if grown > MaxLoopLength {
		grown = MaxLoopLength
	}
	if grown > c.LoopLength {
		c.LoopLength = grown
	}
}

// CCType identifies which controller an automation lane targets.
type CCType int

const (
	CCPitchBend CCType = iota
	CCModWheel
	CCExpression
	CCSustain
	CCVolume
	CCPan
)

func (t CCType) String() string {
	switch t {
	case CCPitchBend:
		return "pitch bend"
	case CCModWheel:
		return "mod wheel"
	case CCExpression:
		return "expression"
	case CCSustain:
		return "sustain"
	case CCVolume:
		return "volume"
	case CCPan:
		return "pan"
	}
	return "unknown"
}

// CCPoint is one automation point. Value is normalized 0..1.
type CCPoint struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// CCLane is a single automation lane. Lane type and data are coupled:
// switching the type clears all points (one lane, one target at a time).
type CCLane struct {
	Type   CCType    `json:"ccType"`
	Points []CCPoint `json:"points"`
}

// SetType switches the lane target, dropping all points.
func (l *CCLane) SetType(t CCType) {
	l.Type = t
	l.Points = nil
}

// InsertPoint adds a point keeping the lane ordered by time. Time is clamped
// to >= 0 and value to [0,1].
func (l *CCLane) InsertPoint(time, value float64) {
	p := CCPoint{Time: clamp(time, 0, MaxLoopLength), Value: clamp(value, 0, 1)}
	i := sort.Search(len(l.Points), func(i int) bool {
		return l.Points[i].Time > p.Time
	})
	l.Points = append(l.Points, CCPoint{})
	copy(l.Points[i+1:], l.Points[i:])
	l.Points[i] = p
}

// RemovePointAt deletes the point at index i, ignoring out-of-range indexes.
func (l *CCLane) RemovePointAt(i int) {
	if i < 0 || i >= len(l.Points) {
		return
	}
	l.Points = append(l.Points[:i], l.Points[i+1:]...)
}
