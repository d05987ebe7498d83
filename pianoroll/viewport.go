package pianoroll

// Viewport is the zoom/pan state for the horizontal axis. Zoom bounds are
// dynamic: they depend on the view width and the clip's loop length.
type Viewport struct {
	Width         float64 // view width in pixels
	PixelsPerBeat float64
	PixelsPerNote float64
	ScrollX       float64 // content pixels scrolled off the left edge
}

// MaxZoom is the zoom at which one sixteenth note fills the view.
func (v *Viewport) MaxZoom() float64 {
	return v.Width / 0.25
}

// MinZoom is the zoom at which the loop plus 16 beats of margin fits the
// view.
func (v *Viewport) MinZoom(loopLength float64) float64 {
	return v.Width / (loopLength + 16)
}

// ClampZoom bounds a candidate zoom to [MinZoom, MaxZoom].
func (v *Viewport) ClampZoom(ppb, loopLength float64) float64 {
	return clamp(ppb, v.MinZoom(loopLength), v.MaxZoom())
}

// ZoomAround sets the zoom while keeping the beat under screenX fixed on
// screen, recomputing the scroll offset. Drag-to-zoom calls this every frame
// with the anchor captured at gesture start.
func (v *Viewport) ZoomAround(ppb, anchorBeat, screenX, loopLength float64) {
	v.PixelsPerBeat = v.ClampZoom(ppb, loopLength)
	v.ScrollX = maxOf(anchorBeat*v.PixelsPerBeat-screenX, 0)
}

// Pan shifts the view horizontally by dx screen pixels.
func (v *Viewport) Pan(dx float64) {
	v.ScrollX = maxOf(v.ScrollX+dx, 0)
}

// ContentX converts a screen x offset to a content x offset.
func (v *Viewport) ContentX(screenX float64) float64 {
	return screenX + v.ScrollX
}

// Geometry returns the pixel/musical mapper for the current zoom.
func (v *Viewport) Geometry() Geometry {
	return Geometry{PixelsPerBeat: v.PixelsPerBeat, PixelsPerNote: v.PixelsPerNote}
}
