package board

// Action kinds, matching the tags clients use on the wire.
const (
	KindChangeTool       = "CHANGE_TOOL"
	KindChangeActionType = "CHANGE_ACTION_TYPE"
	KindSketchDown       = "SKETCH_DOWN"
	KindSketchMove       = "SKETCH_MOVE"
	KindSketchUp         = "SKETCH_UP"
	KindDrawDown         = "DRAW_DOWN"
	KindDrawMove         = "DRAW_MOVE"
	KindDrawUp           = "DRAW_UP"
	KindErase            = "ERASE"
)

// Action is a state transition request. The reducer handles the types
// declared in this file and returns the state unchanged for anything else.
type Action interface {
	Kind() string
}

type ChangeTool struct {
	Tool Tool
}

type ChangeActionType struct {
	ActionType ActionType
}

// SketchDown starts a freehand stroke at (X, Y).
type SketchDown struct {
	X, Y        float64
	StrokeColor string
	StrokeWidth float64
}

// SketchMove records one more sample of the stroke in progress.
type SketchMove struct {
	X, Y        float64
	StrokeColor string
	StrokeWidth float64
}

// SketchUp finishes the stroke in progress.
type SketchUp struct{}

// DrawDown creates a zero-size shape of the active tool's type at (X, Y).
type DrawDown struct {
	X, Y  float64
	Style Style
}

// DrawMove moves the second corner of the shape being dragged.
type DrawMove struct {
	X, Y  float64
	Style Style
}

// DrawUp finalises the shape being dragged with the given style.
type DrawUp struct {
	Style Style
}

// Erase removes every shape near (X, Y).
type Erase struct {
	X, Y float64
}

func (ChangeTool) Kind() string       { return KindChangeTool }
func (ChangeActionType) Kind() string { return KindChangeActionType }
func (SketchDown) Kind() string       { return KindSketchDown }
func (SketchMove) Kind() string       { return KindSketchMove }
func (SketchUp) Kind() string         { return KindSketchUp }
func (DrawDown) Kind() string         { return KindDrawDown }
func (DrawMove) Kind() string         { return KindDrawMove }
func (DrawUp) Kind() string           { return KindDrawUp }
func (Erase) Kind() string            { return KindErase }
