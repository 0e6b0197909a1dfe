package board

import "log/slog"

// Surface is the 2D path-drawing capability the controller draws live
// freehand feedback on. It mirrors the Canvas2D context API.
type Surface interface {
	MoveTo(x, y float64)
	BeginPath()
	QuadraticCurveTo(cx, cy, x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	SetStrokeStyle(color string)
	SetLineWidth(width float64)
}

// PointerEvent is a raw pointer sample in surface coordinates.
type PointerEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToolStyle is the toolbox setting for one tool.
type ToolStyle struct {
	Stroke string  `json:"stroke"`
	Fill   string  `json:"fill,omitempty"`
	Size   float64 `json:"size"`
}

// Toolbox maps each tool to its current style. Pencil and eraser usually
// carry no fill; a tool with no entry has the zero style.
type Toolbox map[Tool]ToolStyle

// Style returns the setting for tool, or the zero style when it has none.
func (t Toolbox) Style(tool Tool) ToolStyle {
	if t == nil {
		return ToolStyle{}
	}
	return t[tool]
}

// DefaultToolbox returns black strokes of width 1 for every drawing tool.
func DefaultToolbox() Toolbox {
	return Toolbox{
		ToolLine:      {Stroke: "#000000", Size: 1},
		ToolRectangle: {Stroke: "#000000", Size: 1},
		ToolCircle:    {Stroke: "#000000", Size: 1},
		ToolArrow:     {Stroke: "#000000", Size: 1},
		ToolPencil:    {Stroke: "#000000", Size: 1},
		ToolEraser:    {Size: 1},
	}
}

// Clone returns an independent copy of the toolbox.
func (t Toolbox) Clone() Toolbox {
	out := make(Toolbox, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func (s ToolStyle) shapeStyle() Style {
	return Style{StrokeColor: s.Stroke, FillColor: s.Fill, StrokeWidth: s.Size}
}

const defaultStrokeStyle = "black"

// Controller turns pointer events into reducer actions and owns the board
// state. It is not safe for concurrent use; callers serialise access.
type Controller struct {
	reducer  *Reducer
	state    State
	listener func(Action, State)
}

type Option func(*Controller)

// WithState starts the controller from s instead of the empty board.
func WithState(s State) Option { return func(c *Controller) { c.state = s.Clone() } }

// WithDispatchListener registers fn to observe every dispatched action and
// the state it produced. fn receives a copy.
func WithDispatchListener(fn func(Action, State)) Option {
	return func(c *Controller) { c.listener = fn }
}

func NewController(geo Geometry, opts ...Option) *Controller {
	c := &Controller{
		reducer: NewReducer(geo),
		state:   NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state for read-only consumers.
func (c *Controller) Snapshot() State {
	return c.state.Clone()
}

// Dispatch applies a single action.
func (c *Controller) Dispatch(action Action) {
	c.state = c.reducer.Reduce(c.state, action)
	if c.listener != nil {
		c.listener(action, c.state.Clone())
	}
}

func (c *Controller) ChangeTool(tool Tool) {
	c.Dispatch(ChangeTool{Tool: tool})
}

// PointerDown starts an interaction chosen by the active tool.
func (c *Controller) PointerDown(ev PointerEvent, surface Surface, toolbox Toolbox) {
	tool := c.state.ActiveToolItem
	style := toolbox.Style(tool)

	switch tool {
	case ToolPencil:
		c.Dispatch(SketchDown{X: ev.X, Y: ev.Y, StrokeColor: style.Stroke, StrokeWidth: style.Size})
		surface.MoveTo(ev.X, ev.Y)
		surface.BeginPath()
	case ToolLine, ToolRectangle, ToolCircle, ToolArrow:
		c.Dispatch(DrawDown{X: ev.X, Y: ev.Y, Style: style.shapeStyle()})
	case ToolEraser:
		c.Dispatch(Erase{X: ev.X, Y: ev.Y})
	}
}

// PointerMove continues the interaction chosen by the current phase.
func (c *Controller) PointerMove(ev PointerEvent, surface Surface, toolbox Toolbox) {
	style := toolbox.Style(c.state.ActiveToolItem)

	switch c.state.ToolActionType {
	case ActionSketching:
		if !c.state.Drawing || len(c.state.Points) == 0 {
			slog.Debug("ignoring sketch move outside a stroke", "x", ev.X, "y", ev.Y)
			return
		}
		prev := c.state.Points[len(c.state.Points)-1]
		midX, midY := midpoint(prev.X, prev.Y, ev.X, ev.Y)

		c.Dispatch(SketchMove{X: ev.X, Y: ev.Y, StrokeColor: style.Stroke, StrokeWidth: style.Size})

		surface.QuadraticCurveTo(prev.X, prev.Y, midX, midY)
		surface.LineTo(ev.X, ev.Y)
		stroke := style.Stroke
		if stroke == "" {
			stroke = defaultStrokeStyle
		}
		surface.SetStrokeStyle(stroke)
		surface.SetLineWidth(style.Size)
		surface.Stroke()
	case ActionDrawing:
		c.Dispatch(DrawMove{X: ev.X, Y: ev.Y, Style: style.shapeStyle()})
	case ActionErasing:
		c.Dispatch(Erase{X: ev.X, Y: ev.Y})
	}
}

// PointerUp ends the current interaction and returns the board to idle.
func (c *Controller) PointerUp(_ PointerEvent, surface Surface, toolbox Toolbox) {
	switch c.state.ToolActionType {
	case ActionDrawing:
		c.Dispatch(DrawUp{Style: toolbox.Style(c.state.ActiveToolItem).shapeStyle()})
	case ActionSketching:
		surface.ClosePath()
		c.Dispatch(SketchUp{})
	}
	c.Dispatch(ChangeActionType{ActionType: ActionNone})
}

func midpoint(x1, y1, x2, y2 float64) (float64, float64) {
	return x1 + (x2-x1)/2, y1 + (y2-y1)/2
}
