package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawboard/internal/board"
)

var thin = board.Style{StrokeColor: "#000", StrokeWidth: 0}

func TestBuildLine(t *testing.T) {
	g := New(1)
	s := g.Build(3, 0, 0, 10, 10, board.ShapeLine, thin)

	assert.Equal(t, 3, s.ID)
	assert.Equal(t, board.ShapeLine, s.Type)
	require.Len(t, s.Path, 2)
	assert.Equal(t, board.PathCommand{Op: "M", Args: []float64{0, 0}}, s.Path[0])
	assert.Equal(t, board.PathCommand{Op: "L", Args: []float64{10, 10}}, s.Path[1])
	assert.Equal(t, board.Rect{X: 0, Y: 0, Width: 10, Height: 10}, s.Bounds)
}

func TestBuildRectangleIsClosed(t *testing.T) {
	s := New(1).Build(0, 10, 20, 30, 60, board.ShapeRectangle, thin)

	require.Len(t, s.Path, 5)
	assert.Equal(t, "Z", s.Path[4].Op)
	assert.Equal(t, board.Rect{X: 10, Y: 20, Width: 20, Height: 40}, s.Bounds)
}

func TestBuildRectangleFromReversedCorners(t *testing.T) {
	s := New(1).Build(0, 30, 60, 10, 20, board.ShapeRectangle, thin)
	assert.Equal(t, board.Rect{X: 10, Y: 20, Width: 20, Height: 40}, s.Bounds)
}

func TestBuildCircleBounds(t *testing.T) {
	s := New(1).Build(0, 0, 0, 20, 10, board.ShapeCircle, thin)

	require.Len(t, s.Path, 6)
	assert.InDelta(t, 0, s.Bounds.X, 1e-9)
	assert.InDelta(t, 0, s.Bounds.Y, 1e-9)
	assert.InDelta(t, 20, s.Bounds.Width, 1e-9)
	assert.InDelta(t, 10, s.Bounds.Height, 1e-9)
}

func TestBuildArrowHeads(t *testing.T) {
	s := New(1).Build(0, 0, 0, 100, 0, board.ShapeArrow, thin)

	require.Len(t, s.Path, 5)
	left, tip, right := s.Path[2], s.Path[3], s.Path[4]
	assert.Equal(t, "M", left.Op)
	assert.InDelta(t, 82.679, left.Args[0], 1e-3)
	assert.InDelta(t, 10, left.Args[1], 1e-9)
	assert.Equal(t, []float64{100, 0}, tip.Args)
	assert.InDelta(t, 82.679, right.Args[0], 1e-3)
	assert.InDelta(t, -10, right.Args[1], 1e-9)
}

func TestBuildArrowWithoutLength(t *testing.T) {
	s := New(1).Build(0, 5, 5, 5, 5, board.ShapeArrow, thin)
	assert.Len(t, s.Path, 2)
}

func TestBuildStroke(t *testing.T) {
	stroke := board.Stroke{
		{X: 0, Y: 0, StrokeColor: "red", StrokeWidth: 3, Transparency: 1},
		{X: 10, Y: 0, StrokeColor: "red", StrokeWidth: 3, Transparency: 1},
		{X: 10, Y: 10, StrokeColor: "red", StrokeWidth: 3, Transparency: 1},
	}
	s := New(1).BuildStroke(7, stroke)

	assert.Equal(t, board.ShapeFreehand, s.Type)
	assert.Equal(t, "red", s.Style.StrokeColor)
	assert.Equal(t, 3.0, s.Style.StrokeWidth)
	assert.Len(t, s.Points, 3)
	assert.Len(t, s.Path, 3)
	assert.Equal(t, 10.0, s.X2)
	assert.Equal(t, 10.0, s.Y2)
}

func TestBuildStrokeSinglePoint(t *testing.T) {
	s := New(1).BuildStroke(0, board.Stroke{{X: 4, Y: 4, StrokeWidth: 1}})
	require.Len(t, s.Path, 2)
	assert.True(t, New(1).IsNear(s, 4, 4))
}

func TestIsNear(t *testing.T) {
	g := New(1)
	line := g.Build(0, 0, 0, 10, 10, board.ShapeLine, thin)
	rect := g.Build(1, 0, 0, 100, 50, board.ShapeRectangle, thin)
	circle := g.Build(2, 0, 0, 100, 100, board.ShapeCircle, thin)
	stroke := g.BuildStroke(3, board.Stroke{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})

	tests := []struct {
		name  string
		shape board.Shape
		x, y  float64
		want  bool
	}{
		{"line midpoint", line, 5, 5, true},
		{"line off to the side", line, 10, 0, false},
		{"line past the end", line, 12, 12, false},
		{"rect edge", rect, 50, 1, true},
		{"rect just outside edge", rect, 101, 25, true},
		{"rect interior", rect, 50, 25, false},
		{"rect far away", rect, 300, 300, false},
		{"circle right", circle, 100, 50, true},
		{"circle top", circle, 50, 0, true},
		{"circle diagonal", circle, 85.355, 85.355, true},
		{"circle centre", circle, 50, 50, false},
		{"circle box corner", circle, 0, 0, false},
		{"stroke corner", stroke, 10, 5, true},
		{"stroke open side", stroke, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IsNear(tt.shape, tt.x, tt.y))
		})
	}
}

func TestIsNearAccountsForStrokeWidth(t *testing.T) {
	g := New(1)
	wide := g.Build(0, 0, 0, 100, 0, board.ShapeLine, board.Style{StrokeWidth: 10})

	assert.True(t, g.IsNear(wide, 50, 5.5))
	assert.False(t, g.IsNear(wide, 50, 6.5))
}

func TestIsNearDegenerateShape(t *testing.T) {
	g := New(1)
	dot := g.Build(0, 5, 5, 5, 5, board.ShapeRectangle, thin)

	assert.True(t, g.IsNear(dot, 5, 5))
	assert.True(t, g.IsNear(dot, 5.5, 5.5))
	assert.False(t, g.IsNear(dot, 20, 20))
}

func TestNewUsesDefaultTolerance(t *testing.T) {
	assert.Equal(t, DefaultTolerance, New(0).tolerance)
	assert.Equal(t, DefaultTolerance, New(-3).tolerance)
}

func TestMatrixRotateAndTranslate(t *testing.T) {
	m := Translate(10, 0).Multiply(Rotate(3.141592653589793 / 2))
	x, y := m.TransformPoint(1, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	x, y = Identity().TransformPoint(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}
