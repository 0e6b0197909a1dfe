package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/inamate/drawboard/internal/board"
)

// ExportPDF writes the committed drawing of s to w as a single page sized
// width x height points, one point per surface unit.
func ExportPDF(w io.Writer, s board.State, strokes StrokeBuilder, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", width, height)
	}

	// Portrait keeps Size as given; landscape would swap it.
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetCreator("drawboard", true)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, cmd := range CompileDrawCommands(s, strokes) {
		if cmd.Op != "path" || len(cmd.Path) == 0 {
			continue
		}

		// gofpdf has one alpha for stroke and fill, so a path with a
		// translucent fill takes the fill's alpha.
		stroke := withOpacity(colorOr(cmd.Stroke, black), cmd.Opacity)
		p.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
		p.SetLineWidth(lineWidth(cmd.StrokeWidth))
		alpha := stroke.A

		style := "D"
		if cmd.Fill != "" {
			fill := withOpacity(colorOr(cmd.Fill, black), cmd.Opacity)
			p.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			alpha = fill.A
			style = "FD"
		}
		p.SetAlpha(float64(alpha)/0xff, "Normal")

		if !tracePDF(p, cmd.Path) {
			continue
		}
		p.DrawPath(style)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// tracePDF replays path on p and reports whether anything was added.
func tracePDF(p *gofpdf.Fpdf, path []board.PathCommand) bool {
	started := false
	for _, c := range path {
		a := c.Args
		switch {
		case c.Op == "M" && len(a) >= 2:
			p.MoveTo(a[0], a[1])
			started = true
		case !started:
			// gofpdf needs a current point before any segment.
		case c.Op == "L" && len(a) >= 2:
			p.LineTo(a[0], a[1])
		case c.Op == "Q" && len(a) >= 4:
			p.CurveTo(a[0], a[1], a[2], a[3])
		case c.Op == "C" && len(a) >= 6:
			p.CurveBezierCubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
		case c.Op == "Z":
			p.ClosePath()
		}
	}
	return started
}
