package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/inamate/drawboard/internal/board"
)

// Raster implements board.Surface over an in-memory gg context, so the live
// stroke effects of a controller can be drawn server-side.
type Raster struct {
	dc *gg.Context
}

var _ board.Surface = (*Raster)(nil)

// NewRaster returns a width x height raster cleared to background.
func NewRaster(width, height int, background color.Color) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetColor(black)
	dc.SetLineWidth(1)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &Raster{dc: dc}
}

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }

// BeginPath discards the current path, as a canvas context does.
func (r *Raster) BeginPath() { r.dc.ClearPath() }

func (r *Raster) QuadraticCurveTo(cx, cy, x, y float64) { r.dc.QuadraticTo(cx, cy, x, y) }
func (r *Raster) LineTo(x, y float64)                   { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()                            { r.dc.ClosePath() }

// Stroke keeps the path so later segments of the same stroke extend it.
func (r *Raster) Stroke() { r.dc.StrokePreserve() }

func (r *Raster) SetStrokeStyle(c string) { r.dc.SetColor(colorOr(c, black)) }
func (r *Raster) SetLineWidth(width float64) {
	r.dc.SetLineWidth(width)
}

// Paint draws commands in order on top of whatever is already on the raster.
func (r *Raster) Paint(commands []DrawCommand) {
	for _, cmd := range commands {
		if cmd.Op != "path" || len(cmd.Path) == 0 {
			continue
		}
		r.dc.ClearPath()
		tracePath(r.dc, cmd.Path)

		if cmd.Fill != "" {
			r.dc.SetColor(withOpacity(colorOr(cmd.Fill, black), cmd.Opacity))
			r.dc.FillPreserve()
		}
		r.dc.SetColor(withOpacity(colorOr(cmd.Stroke, black), cmd.Opacity))
		r.dc.SetLineWidth(lineWidth(cmd.StrokeWidth))
		r.dc.Stroke()
	}
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the raster to w as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderPNG paints the drawing of s on a white background and writes it to
// w as PNG. A stroke still in progress is drawn the way the live canvas
// shows it.
func RenderPNG(w io.Writer, s board.State, strokes StrokeBuilder, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	r := NewRaster(width, height, color.White)
	r.Paint(CompileDrawCommands(s, strokes))
	SketchPending(r, s.Points)
	return r.EncodePNG(w)
}

// SketchPending replays the samples of an unfinished stroke on surface with
// the same midpoint smoothing the controller uses while dragging.
func SketchPending(surface board.Surface, points []board.FreehandPoint) {
	if len(points) == 0 {
		return
	}
	surface.MoveTo(points[0].X, points[0].Y)
	surface.BeginPath()
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		surface.QuadraticCurveTo(prev.X, prev.Y, prev.X+(cur.X-prev.X)/2, prev.Y+(cur.Y-prev.Y)/2)
		surface.LineTo(cur.X, cur.Y)
		surface.SetStrokeStyle(cur.StrokeColor)
		surface.SetLineWidth(lineWidth(cur.StrokeWidth))
		surface.Stroke()
	}
}

func tracePath(dc *gg.Context, path []board.PathCommand) {
	for _, c := range path {
		a := c.Args
		switch {
		case c.Op == "M" && len(a) >= 2:
			dc.MoveTo(a[0], a[1])
		case c.Op == "L" && len(a) >= 2:
			dc.LineTo(a[0], a[1])
		case c.Op == "Q" && len(a) >= 4:
			dc.QuadraticTo(a[0], a[1], a[2], a[3])
		case c.Op == "C" && len(a) >= 6:
			dc.CubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
		case c.Op == "Z":
			dc.ClosePath()
		}
	}
}

// lineWidth renders zero-width strokes as hairlines.
func lineWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
