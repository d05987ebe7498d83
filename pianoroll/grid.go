package pianoroll

import (
	"fmt"
	"math"
)

// GridDivisions are the selectable snap resolutions, in beats
// (whole, half, quarter, eighth, sixteenth note).
var GridDivisions = []float64{4.0, 2.0, 1.0, 0.5, 0.25}

// SnapToGrid floors beat to the grid line at or before it.
func SnapToGrid(beat, gridDivision float64) float64 {
	if gridDivision <= 0 {
		return beat
	}
	return math.Floor(beat/gridDivision) * gridDivision
}

// RoundToGrid rounds beat to the nearest grid line. Used by quantize.
func RoundToGrid(beat, gridDivision float64) float64 {
	if gridDivision <= 0 {
		return beat
	}
	return math.Round(beat/gridDivision) * gridDivision
}

// FormatGridDivision formats a division as a musical fraction for display.
func FormatGridDivision(div float64) string {
	switch div {
	case 4.0:
		return "1/1"
	case 2.0:
		return "1/2"
	case 1.0:
		return "1/4"
	case 0.5:
		return "1/8"
	case 0.25:
		return "1/16"
	}
	return fmt.Sprintf("%.3f", div)
}
