package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapToGridFloors(t *testing.T) {
	assert.Equal(t, 1.25, SnapToGrid(1.3, 0.25))
	assert.Equal(t, 1.25, SnapToGrid(1.49, 0.25))
	assert.Equal(t, 1.5, SnapToGrid(1.5, 0.25))
	assert.Equal(t, 0.0, SnapToGrid(0.24, 0.25))
	assert.Equal(t, 2.0, SnapToGrid(3.9, 2.0))
}

func TestRoundToGridNearest(t *testing.T) {
	assert.Equal(t, 0.25, RoundToGrid(0.3, 0.25))
	assert.Equal(t, 0.5, RoundToGrid(0.4, 0.25))
	assert.Equal(t, 1.0, RoundToGrid(1.1, 0.5))
	assert.Equal(t, 0.0, RoundToGrid(0.1, 0.25))
}

func TestSnapIdempotent(t *testing.T) {
	for _, div := range GridDivisions {
		for _, beat := range []float64{0, 0.3, 1.7, 4.05, 13.99} {
			once := SnapToGrid(beat, div)
			assert.Equal(t, once, SnapToGrid(once, div), "div %v beat %v", div, beat)
			rounded := RoundToGrid(beat, div)
			assert.Equal(t, rounded, RoundToGrid(rounded, div), "div %v beat %v", div, beat)
		}
	}
}

func TestSnapZeroDivisionPassesThrough(t *testing.T) {
	assert.Equal(t, 1.3, SnapToGrid(1.3, 0))
	assert.Equal(t, 1.3, RoundToGrid(1.3, 0))
}

func TestFormatGridDivision(t *testing.T) {
	assert.Equal(t, "1/16", FormatGridDivision(0.25))
	assert.Equal(t, "1/8", FormatGridDivision(0.5))
	assert.Equal(t, "1/4", FormatGridDivision(1.0))
	assert.Equal(t, "1/1", FormatGridDivision(4.0))
}
