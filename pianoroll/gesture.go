package pianoroll

// Tool is the sticky editing tool.
type Tool int

const (
	ToolDraw Tool = iota
	ToolSelect
	ToolEraser
	ToolDuplicate
	ToolSlice
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolSelect:
		return "select"
	case ToolEraser:
		return "eraser"
	case ToolDuplicate:
		return "duplicate"
	case ToolSlice:
		return "slice"
	}
	return "unknown"
}

// Modifiers is the current modifier-key set, pushed into the editor by the
// host. Command stands for command or control depending on platform.
type Modifiers struct {
	Shift   bool
	Alt     bool
	Command bool
}

// edge identifies which note boundary a resize grabs.
type edge int

const (
	edgeLeft edge = iota
	edgeRight
)

// gesture is the interaction session state: one struct per drag state, nil
// while idle. Illegal state combinations are unrepresentable.
type gesture interface {
	gestureName() string
}

// gestureSelecting is a live box-select drag.
type gestureSelecting struct {
	anchorBeat  float64
	anchorPitch int
	curBeat     float64
	curPitch    int
	before      map[string]bool // selection at gesture start, by note id
}

func (*gestureSelecting) gestureName() string { return "selecting" }

// gestureMoving drags one note or the whole selection by a beat/pitch delta
// from a snapshot taken at pointer-down.
type gestureMoving struct {
	grabID     string
	downBeat   float64
	downPitch  int
	originals  map[string]Note
	duplicated bool
	created    bool
	moved      bool
}

func (*gestureMoving) gestureName() string { return "moving" }

// gestureResizing drags one note edge.
type gestureResizing struct {
	noteID   string
	edge     edge
	original Note
	changed  bool
}

func (*gestureResizing) gestureName() string { return "resizing" }

// gestureErasing deletes notes under the cursor, at most once per note per
// gesture.
type gestureErasing struct {
	erased map[string]bool
}

func (*gestureErasing) gestureName() string { return "erasing" }

// gesturePainting stamps one note per grid cell crossed (legacy paint mode).
type gesturePainting struct {
	stamped map[paintCell]bool
}

type paintCell struct {
	col   int
	pitch int
}

func (*gesturePainting) gestureName() string { return "painting" }

// rulerKind selects what a ruler drag does; loop-marker drags and zoom/pan
// are mutually exclusive per gesture.
type rulerKind int

const (
	rulerZoomPan rulerKind = iota
	rulerLoopEnd
	rulerLoopStart
)

// rulerGesture is a drag that started on the time ruler.
type rulerGesture struct {
	kind       rulerKind
	downX      float64
	downY      float64
	startZoom  float64
	anchorBeat float64
	changed    bool
}
