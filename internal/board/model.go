package board

// Tool selects what a pointer interaction produces.
type Tool string

const (
	ToolLine      Tool = "LINE"
	ToolRectangle Tool = "RECTANGLE"
	ToolCircle    Tool = "CIRCLE"
	ToolArrow     Tool = "ARROW"
	ToolPencil    Tool = "PENCIL"
	ToolEraser    Tool = "ERASER"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolLine, ToolRectangle, ToolCircle, ToolArrow, ToolPencil, ToolEraser}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	for _, known := range Tools {
		if t == known {
			return true
		}
	}
	return false
}

// ShapeType returns the shape a tool draws. Pencil and eraser draw no shape.
func (t Tool) ShapeType() (ShapeType, bool) {
	switch t {
	case ToolLine:
		return ShapeLine, true
	case ToolRectangle:
		return ShapeRectangle, true
	case ToolCircle:
		return ShapeCircle, true
	case ToolArrow:
		return ShapeArrow, true
	default:
		return "", false
	}
}

// ActionType is the interaction phase, independent of the selected tool.
type ActionType string

const (
	ActionNone      ActionType = "NONE"
	ActionDrawing   ActionType = "DRAWING"
	ActionSketching ActionType = "SKETCHING"
	ActionErasing   ActionType = "ERASING"
)

// Valid reports whether a is one of the four phases.
func (a ActionType) Valid() bool {
	switch a {
	case ActionNone, ActionDrawing, ActionSketching, ActionErasing:
		return true
	}
	return false
}

// dragging reports whether the phase is one where a drag may be active.
func (a ActionType) dragging() bool {
	return a == ActionDrawing || a == ActionSketching
}

type ShapeType string

const (
	ShapeLine      ShapeType = "LINE"
	ShapeRectangle ShapeType = "RECTANGLE"
	ShapeCircle    ShapeType = "CIRCLE"
	ShapeArrow     ShapeType = "ARROW"
	ShapeFreehand  ShapeType = "FREEHAND"
)

type Style struct {
	StrokeColor string  `json:"strokeColor"`
	FillColor   string  `json:"fillColor,omitempty"` // empty means unfilled
	StrokeWidth float64 `json:"strokeWidth"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathCommand is one Canvas2D path segment: "M", "L", "Q", "C" or "Z"
// followed by its coordinates.
type PathCommand struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Shape is a committed or in-progress drawn element. Path and Bounds are
// derived by Geometry from the corners, points and style and are rebuilt
// whenever those change.
type Shape struct {
	ID     int       `json:"id"`
	Type   ShapeType `json:"type"`
	X1     float64   `json:"x1"`
	Y1     float64   `json:"y1"`
	X2     float64   `json:"x2"`
	Y2     float64   `json:"y2"`
	Style  Style     `json:"style"`
	Points []Point   `json:"points,omitempty"`

	Path   []PathCommand `json:"path"`
	Bounds Rect          `json:"bounds"`
}

// FullOpacity is the transparency every freehand stroke starts with.
const FullOpacity = 1.0

// FreehandPoint is one pointer sample recorded while sketching.
type FreehandPoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	StrokeColor  string  `json:"strokeColor"`
	StrokeWidth  float64 `json:"strokeWidth"`
	Transparency float64 `json:"transparency"`
}

// Stroke is one finished freehand drag.
type Stroke []FreehandPoint

// State is the single source of truth for a board.
type State struct {
	ActiveToolItem  Tool            `json:"activeToolItem"`
	ToolActionType  ActionType      `json:"toolActionType"`
	Drawing         bool            `json:"drawing"`
	Elements        []Shape         `json:"elements"`
	Points          []FreehandPoint `json:"points"`
	Path            []Stroke        `json:"path"`
	SelectedElement *int            `json:"selectedElement"`

	// NextID is the id the next DrawDown assigns. Ids are never reused,
	// so erasing never renumbers the shapes that remain.
	NextID int `json:"nextId"`
}

// NewState returns the empty board with the line tool selected.
func NewState() State {
	return State{
		ActiveToolItem: ToolLine,
		ToolActionType: ActionNone,
		Elements:       []Shape{},
		Points:         []FreehandPoint{},
		Path:           []Stroke{},
	}
}

// Element returns the shape with the given id.
func (s State) Element(id int) (Shape, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Elements[i], true
	}
	return Shape{}, false
}

func (s State) indexOf(id int) int {
	for i := len(s.Elements) - 1; i >= 0; i-- {
		if s.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy that shares no backing arrays with s.
func (s State) Clone() State {
	out := s
	out.Elements = make([]Shape, len(s.Elements))
	for i, e := range s.Elements {
		out.Elements[i] = e.clone()
	}
	out.Points = append([]FreehandPoint{}, s.Points...)
	out.Path = make([]Stroke, len(s.Path))
	for i, st := range s.Path {
		out.Path[i] = append(Stroke{}, st...)
	}
	if s.SelectedElement != nil {
		id := *s.SelectedElement
		out.SelectedElement = &id
	}
	return out
}

func (e Shape) clone() Shape {
	out := e
	if e.Points != nil {
		out.Points = append([]Point{}, e.Points...)
	}
	if e.Path != nil {
		out.Path = make([]PathCommand, len(e.Path))
		for i, c := range e.Path {
			out.Path[i] = PathCommand{Op: c.Op, Args: append([]float64(nil), c.Args...)}
		}
	}
	return out
}
