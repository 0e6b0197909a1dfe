package geometry

import (
	"math"

	"github.com/inamate/drawboard/internal/board"
)

const (
	// DefaultTolerance is how far, in surface units, a point may sit from a
	// shape's outline and still count as touching it.
	DefaultTolerance = 4.0

	arrowHeadLength = 20.0
	arrowHeadAngle  = math.Pi / 6

	// k = 4 * (sqrt(2) - 1) / 3, the bézier control distance for a quarter ellipse.
	ellipseKappa = 0.5522847498

	flattenSteps = 16
)

// Helpers implements board.Geometry.
type Helpers struct {
	tolerance float64
}

var _ board.Geometry = (*Helpers)(nil)

// New returns geometry helpers with the given hit tolerance. A tolerance of
// zero or less uses DefaultTolerance.
func New(tolerance float64) *Helpers {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Helpers{tolerance: tolerance}
}

// Build constructs a shape from two corner points and derives its path and
// bounds.
func (h *Helpers) Build(id int, x1, y1, x2, y2 float64, typ board.ShapeType, style board.Style) board.Shape {
	shape := board.Shape{
		ID:    id,
		Type:  typ,
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Style: style,
	}

	switch typ {
	case board.ShapeRectangle:
		shape.Path = rectPath(x1, y1, x2, y2)
	case board.ShapeCircle:
		shape.Path = ellipsePath(x1, y1, x2, y2)
	case board.ShapeArrow:
		shape.Path = arrowPath(x1, y1, x2, y2)
	default:
		shape.Path = linePath(x1, y1, x2, y2)
	}
	shape.Bounds = pathBounds(shape.Path)
	return shape
}

// BuildStroke turns a finished freehand stroke into a FREEHAND shape. The
// stroke's first sample supplies the style.
func (h *Helpers) BuildStroke(id int, stroke board.Stroke) board.Shape {
	shape := board.Shape{ID: id, Type: board.ShapeFreehand}
	if len(stroke) == 0 {
		return shape
	}

	first, last := stroke[0], stroke[len(stroke)-1]
	shape.X1, shape.Y1 = first.X, first.Y
	shape.X2, shape.Y2 = last.X, last.Y
	shape.Style = board.Style{StrokeColor: first.StrokeColor, StrokeWidth: first.StrokeWidth}

	shape.Points = make([]board.Point, len(stroke))
	for i, p := range stroke {
		shape.Points[i] = board.Point{X: p.X, Y: p.Y}
	}
	shape.Path = polylinePath(shape.Points)
	shape.Bounds = pathBounds(shape.Path)
	return shape
}

func linePath(x1, y1, x2, y2 float64) []board.PathCommand {
	return []board.PathCommand{
		{Op: "M", Args: []float64{x1, y1}},
		{Op: "L", Args: []float64{x2, y2}},
	}
}

func rectPath(x1, y1, x2, y2 float64) []board.PathCommand {
	return []board.PathCommand{
		{Op: "M", Args: []float64{x1, y1}},
		{Op: "L", Args: []float64{x2, y1}},
		{Op: "L", Args: []float64{x2, y2}},
		{Op: "L", Args: []float64{x1, y2}},
		{Op: "Z"},
	}
}

// ellipsePath approximates the ellipse inscribed in the corner box with four
// cubic béziers.
func ellipsePath(x1, y1, x2, y2 float64) []board.PathCommand {
	cx, cy := (x1+x2)/2, (y1+y2)/2
	rx, ry := math.Abs(x2-x1)/2, math.Abs(y2-y1)/2
	kx, ky := rx*ellipseKappa, ry*ellipseKappa

	return []board.PathCommand{
		{Op: "M", Args: []float64{cx + rx, cy}},
		{Op: "C", Args: []float64{cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry}},
		{Op: "C", Args: []float64{cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy}},
		{Op: "C", Args: []float64{cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry}},
		{Op: "C", Args: []float64{cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy}},
		{Op: "Z"},
	}
}

// arrowPath draws the shaft and two head strokes meeting at (x2, y2).
func arrowPath(x1, y1, x2, y2 float64) []board.PathCommand {
	path := linePath(x1, y1, x2, y2)
	if x1 == x2 && y1 == y2 {
		return path
	}

	back := math.Atan2(y2-y1, x2-x1) + math.Pi
	tip := Translate(x2, y2)
	lx, ly := tip.Multiply(Rotate(back-arrowHeadAngle)).TransformPoint(arrowHeadLength, 0)
	rx, ry := tip.Multiply(Rotate(back+arrowHeadAngle)).TransformPoint(arrowHeadLength, 0)

	return append(path,
		board.PathCommand{Op: "M", Args: []float64{lx, ly}},
		board.PathCommand{Op: "L", Args: []float64{x2, y2}},
		board.PathCommand{Op: "L", Args: []float64{rx, ry}},
	)
}

func polylinePath(points []board.Point) []board.PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]board.PathCommand, 0, len(points)+1)
	path = append(path, board.PathCommand{Op: "M", Args: []float64{points[0].X, points[0].Y}})
	if len(points) == 1 {
		// A single tap still renders as a dot.
		return append(path, board.PathCommand{Op: "L", Args: []float64{points[0].X, points[0].Y}})
	}
	for _, p := range points[1:] {
		path = append(path, board.PathCommand{Op: "L", Args: []float64{p.X, p.Y}})
	}
	return path
}

// pathBounds computes the axis-aligned box of a path, control points included.
func pathBounds(path []board.PathCommand) board.Rect {
	var minX, minY, maxX, maxY float64
	first := true

	for _, cmd := range path {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			x, y := cmd.Args[i], cmd.Args[i+1]
			if first {
				minX, maxX = x, x
				minY, maxY = y, y
				first = false
				continue
			}
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	if first {
		return board.Rect{}
	}
	return board.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
