package board

// Geometry builds renderable shapes and answers point-near-shape queries.
type Geometry interface {
	Build(id int, x1, y1, x2, y2 float64, typ ShapeType, style Style) Shape
	IsNear(shape Shape, x, y float64) bool
}

// Reducer computes the next board state for an action. It never mutates
// the state it is given and never fails: actions it does not recognise, or
// that make no sense for the current state, return the input unchanged.
type Reducer struct {
	geo Geometry
}

func NewReducer(geo Geometry) *Reducer {
	return &Reducer{geo: geo}
}

// Reduce returns the state that results from applying action to s.
func (r *Reducer) Reduce(s State, action Action) State {
	switch a := action.(type) {
	case ChangeTool:
		return r.changeTool(s, a)
	case ChangeActionType:
		return r.changeActionType(s, a)
	case SketchDown:
		return r.sketchDown(s, a)
	case SketchMove:
		return r.sketchMove(s, a)
	case SketchUp:
		return r.sketchUp(s)
	case DrawDown:
		return r.drawDown(s, a)
	case DrawMove:
		return r.drawMove(s, a)
	case DrawUp:
		return r.drawUp(s, a)
	case Erase:
		return r.erase(s, a)
	default:
		return s
	}
}

func (r *Reducer) changeTool(s State, a ChangeTool) State {
	if !a.Tool.Valid() {
		return s
	}
	s.ActiveToolItem = a.Tool
	return s
}

func (r *Reducer) changeActionType(s State, a ChangeActionType) State {
	if !a.ActionType.Valid() {
		return s
	}
	if a.ActionType != ActionSketching {
		s = commitPoints(s)
	}
	if a.ActionType != ActionDrawing {
		s.SelectedElement = nil
	}
	s.ToolActionType = a.ActionType
	if !a.ActionType.dragging() {
		s.Drawing = false
	}
	return s
}

// sketchDown starts a new stroke. Samples of a stroke that never saw a
// SketchUp are committed first so they cannot leak into this one.
func (r *Reducer) sketchDown(s State, a SketchDown) State {
	s = commitPoints(s)
	s.SelectedElement = nil
	s.Points = appendPoint(s.Points, FreehandPoint{
		X:            a.X,
		Y:            a.Y,
		StrokeColor:  a.StrokeColor,
		StrokeWidth:  a.StrokeWidth,
		Transparency: FullOpacity,
	})
	s.ToolActionType = ActionSketching
	s.Drawing = true
	return s
}

func (r *Reducer) sketchMove(s State, a SketchMove) State {
	if len(s.Points) == 0 {
		return s
	}
	// Transparency is fixed when the stroke starts and carried forward.
	last := s.Points[len(s.Points)-1]
	s.Points = appendPoint(s.Points, FreehandPoint{
		X:            a.X,
		Y:            a.Y,
		StrokeColor:  a.StrokeColor,
		StrokeWidth:  a.StrokeWidth,
		Transparency: last.Transparency,
	})
	return s
}

func (r *Reducer) sketchUp(s State) State {
	s = commitPoints(s)
	s.Points = []FreehandPoint{}
	s.Drawing = false
	return s
}

func (r *Reducer) drawDown(s State, a DrawDown) State {
	typ, ok := s.ActiveToolItem.ShapeType()
	if !ok {
		return s
	}

	s = commitPoints(s)
	id := s.NextID
	shape := r.geo.Build(id, a.X, a.Y, a.X, a.Y, typ, a.Style)

	elements := make([]Shape, len(s.Elements), len(s.Elements)+1)
	copy(elements, s.Elements)
	s.Elements = append(elements, shape)
	s.NextID = id + 1
	s.SelectedElement = &id
	s.ToolActionType = ActionDrawing
	s.Drawing = true
	return s
}

// drawMove rebuilds the shape being dragged. Nothing can be appended while a
// drag is active, so the selected shape is always the last element.
func (r *Reducer) drawMove(s State, a DrawMove) State {
	if s.SelectedElement == nil {
		return s
	}
	i := s.indexOf(*s.SelectedElement)
	if i < 0 {
		return s
	}
	cur := s.Elements[i]
	s.Elements = replaceAt(s.Elements, i, r.geo.Build(cur.ID, cur.X1, cur.Y1, a.X, a.Y, cur.Type, a.Style))
	return s
}

func (r *Reducer) drawUp(s State, a DrawUp) State {
	if s.SelectedElement == nil {
		return s
	}
	if i := s.indexOf(*s.SelectedElement); i >= 0 {
		cur := s.Elements[i]
		s.Elements = replaceAt(s.Elements, i, r.geo.Build(cur.ID, cur.X1, cur.Y1, cur.X2, cur.Y2, cur.Type, a.Style))
	}
	s.SelectedElement = nil
	s.Drawing = false
	return s
}

func (r *Reducer) erase(s State, a Erase) State {
	kept := make([]Shape, 0, len(s.Elements))
	for _, e := range s.Elements {
		if !r.geo.IsNear(e, a.X, a.Y) {
			kept = append(kept, e)
		}
	}
	s = commitPoints(s)
	s.Elements = kept
	s.SelectedElement = nil
	s.ToolActionType = ActionErasing
	s.Drawing = false
	return s
}

// commitPoints moves a pending stroke onto Path. Empty buffers are left as
// they are.
func commitPoints(s State) State {
	if len(s.Points) == 0 {
		return s
	}
	path := make([]Stroke, len(s.Path), len(s.Path)+1)
	copy(path, s.Path)
	s.Path = append(path, s.Points)
	s.Points = []FreehandPoint{}
	return s
}

func appendPoint(points []FreehandPoint, p FreehandPoint) []FreehandPoint {
	out := make([]FreehandPoint, len(points), len(points)+1)
	copy(out, points)
	return append(out, p)
}

func replaceAt(elements []Shape, i int, shape Shape) []Shape {
	out := make([]Shape, len(elements))
	copy(out, elements)
	out[i] = shape
	return out
}
