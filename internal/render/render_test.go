package render_test

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawboard/internal/board"
	"github.com/inamate/drawboard/internal/geometry"
	"github.com/inamate/drawboard/internal/render"
)

func drawnState(t *testing.T) board.State {
	t.Helper()
	geo := geometry.New(1)
	r := board.NewReducer(geo)
	s := board.NewState()

	steps := []board.Action{
		board.ChangeTool{Tool: board.ToolRectangle},
		board.DrawDown{X: 10, Y: 10, Style: board.Style{StrokeColor: "#000", StrokeWidth: 4}},
		board.DrawMove{X: 50, Y: 50, Style: board.Style{StrokeColor: "#000", StrokeWidth: 4}},
		board.DrawUp{Style: board.Style{StrokeColor: "#000", StrokeWidth: 4}},
		board.ChangeTool{Tool: board.ToolPencil},
		board.SketchDown{X: 60, Y: 60, StrokeColor: "blue", StrokeWidth: 2},
		board.SketchMove{X: 70, Y: 60, StrokeColor: "blue", StrokeWidth: 2},
		board.SketchUp{},
	}
	for _, a := range steps {
		s = r.Reduce(s, a)
	}
	require.Len(t, s.Elements, 1)
	require.Len(t, s.Path, 1)
	return s
}

func TestCompileDrawCommands(t *testing.T) {
	s := drawnState(t)
	cmds := render.CompileDrawCommands(s, geometry.New(1))

	require.Len(t, cmds, 2)
	assert.Equal(t, "path", cmds[0].Op)
	assert.Equal(t, "shape:0", cmds[0].ObjectID)
	assert.Equal(t, s.Elements[0].Path, cmds[0].Path)
	assert.Equal(t, "#000", cmds[0].Stroke)
	assert.Equal(t, 4.0, cmds[0].StrokeWidth)

	assert.Equal(t, "stroke:0", cmds[1].ObjectID)
	assert.Equal(t, "blue", cmds[1].Stroke)
	assert.Equal(t, board.FullOpacity, cmds[1].Opacity)
	assert.Len(t, cmds[1].Path, 2)
}

func TestCompileDrawCommandsEmptyBoard(t *testing.T) {
	cmds := render.CompileDrawCommands(board.NewState(), geometry.New(1))
	assert.Empty(t, cmds)

	out, err := render.DrawCommandsToJSON(cmds)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestDrawCommandsToJSON(t *testing.T) {
	out, err := render.DrawCommandsToJSON(render.CompileDrawCommands(drawnState(t), geometry.New(1)))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "shape:0", decoded[0]["objectId"])
	assert.NotContains(t, decoded[0], "fill")
}

func TestRecorderFlush(t *testing.T) {
	rec := render.NewRecorder()
	rec.MoveTo(1, 2)
	rec.BeginPath()
	rec.QuadraticCurveTo(1, 2, 3, 4)
	rec.LineTo(5, 6)
	rec.SetStrokeStyle("red")
	rec.SetLineWidth(3)
	rec.Stroke()
	rec.ClosePath()

	assert.Equal(t, 8, rec.Len())
	ops := rec.Flush()
	assert.Equal(t, []render.LiveOp{
		{Op: "moveTo", Args: []float64{1, 2}},
		{Op: "beginPath"},
		{Op: "quadraticCurveTo", Args: []float64{1, 2, 3, 4}},
		{Op: "lineTo", Args: []float64{5, 6}},
		{Op: "strokeStyle", Style: "red"},
		{Op: "lineWidth", Args: []float64{3}},
		{Op: "stroke"},
		{Op: "closePath"},
	}, ops)

	assert.Equal(t, 0, rec.Len())
	assert.Empty(t, rec.Flush())
}

func TestRecorderCapturesControllerEffects(t *testing.T) {
	c := board.NewController(geometry.New(1))
	rec := render.NewRecorder()
	tb := board.DefaultToolbox()

	c.ChangeTool(board.ToolPencil)
	c.PointerDown(board.PointerEvent{X: 0, Y: 0}, rec, tb)
	c.PointerMove(board.PointerEvent{X: 4, Y: 4}, rec, tb)
	c.PointerUp(board.PointerEvent{X: 4, Y: 4}, rec, tb)

	var names []string
	for _, op := range rec.Flush() {
		names = append(names, op.Op)
	}
	assert.Equal(t, []string{
		"moveTo", "beginPath", "quadraticCurveTo", "lineTo",
		"strokeStyle", "lineWidth", "stroke", "closePath",
	}, names)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000", color.NRGBA{A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#ff8000", color.NRGBA{R: 255, G: 128, A: 255}},
		{"#FF800080", color.NRGBA{R: 255, G: 128, A: 128}},
		{"red", color.NRGBA{R: 255, A: 255}},
		{" Blue ", color.NRGBA{B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := render.ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "#gggggg", "notacolour", "12345"} {
		_, err := render.ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.RenderPNG(&buf, drawnState(t), geometry.New(1), 100, 80))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	// Top edge of the rectangle is black, its unfilled interior white.
	r, g, b, _ := img.At(30, 10).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r >> 8, g >> 8, b >> 8})
	r, g, b, _ = img.At(30, 30).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestRenderPNGFill(t *testing.T) {
	geo := geometry.New(1)
	s := board.NewState()
	s.Elements = []board.Shape{
		geo.Build(0, 10, 10, 50, 50, board.ShapeRectangle, board.Style{StrokeColor: "black", FillColor: "#f00", StrokeWidth: 1}),
	}

	var buf bytes.Buffer
	require.NoError(t, render.RenderPNG(&buf, s, geo, 64, 64))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, b, _ := img.At(30, 30).RGBA()
	assert.Equal(t, []uint32{255, 0, 0}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestRenderPNGRejectsEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, render.RenderPNG(&buf, board.NewState(), geometry.New(1), 0, 10))
	assert.Zero(t, buf.Len())
}

func TestRasterDrawsLiveStroke(t *testing.T) {
	raster := render.NewRaster(40, 40, color.White)
	c := board.NewController(geometry.New(1))
	tb := board.Toolbox{board.ToolPencil: {Stroke: "#000000", Size: 6}}

	c.ChangeTool(board.ToolPencil)
	c.PointerDown(board.PointerEvent{X: 5, Y: 20}, raster, tb)
	c.PointerMove(board.PointerEvent{X: 20, Y: 20}, raster, tb)
	c.PointerMove(board.PointerEvent{X: 35, Y: 20}, raster, tb)
	c.PointerUp(board.PointerEvent{X: 35, Y: 20}, raster, tb)

	r, g, b, _ := raster.Image().At(15, 20).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r >> 8, g >> 8, b >> 8})
	r, _, _, _ = raster.Image().At(20, 35).RGBA()
	assert.Equal(t, uint32(255), r>>8)
}

func TestRenderPNGDrawsStrokeInProgress(t *testing.T) {
	r := board.NewReducer(geometry.New(1))
	s := r.Reduce(board.NewState(), board.ChangeTool{Tool: board.ToolPencil})
	s = r.Reduce(s, board.SketchDown{X: 5, Y: 20, StrokeColor: "#000000", StrokeWidth: 6})
	s = r.Reduce(s, board.SketchMove{X: 20, Y: 20, StrokeColor: "#000000", StrokeWidth: 6})
	s = r.Reduce(s, board.SketchMove{X: 35, Y: 20, StrokeColor: "#000000", StrokeWidth: 6})
	require.Empty(t, s.Path)

	var buf bytes.Buffer
	require.NoError(t, render.RenderPNG(&buf, s, geometry.New(1), 40, 40))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	cr, cg, cb, _ := img.At(15, 20).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{cr >> 8, cg >> 8, cb >> 8})
	cr, _, _, _ = img.At(20, 35).RGBA()
	assert.Equal(t, uint32(255), cr>>8)
}

func TestSketchPendingMatchesController(t *testing.T) {
	points := []board.FreehandPoint{
		{X: 0, Y: 0, StrokeColor: "red", StrokeWidth: 3, Transparency: 1},
		{X: 10, Y: 20, StrokeColor: "red", StrokeWidth: 3, Transparency: 1},
	}
	rec := render.NewRecorder()
	render.SketchPending(rec, points)

	ops := rec.Flush()
	require.Len(t, ops, 7)
	assert.Equal(t, "moveTo", ops[0].Op)
	assert.Equal(t, "beginPath", ops[1].Op)
	assert.Equal(t, render.LiveOp{Op: "quadraticCurveTo", Args: []float64{0, 0, 5, 10}}, ops[2])
	assert.Equal(t, "stroke", ops[6].Op)
}

func TestExportPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.ExportPDF(&buf, drawnState(t), geometry.New(1), 800, 600))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestExportPDFUsesColourAlpha(t *testing.T) {
	geo := geometry.New(1)
	s := board.NewState()
	s.Elements = []board.Shape{
		geo.Build(0, 10, 10, 50, 50, board.ShapeLine, board.Style{StrokeColor: "#ff000080", StrokeWidth: 2}),
	}

	var buf bytes.Buffer
	require.NoError(t, render.ExportPDF(&buf, s, geo, 100, 100))
	assert.Contains(t, buf.String(), "/ca 0.502 /CA 0.502")
}

func TestExportPDFOpaqueColours(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.ExportPDF(&buf, drawnState(t), geometry.New(1), 100, 100))
	assert.Contains(t, buf.String(), "/ca 1.000 /CA 1.000")
	assert.NotContains(t, buf.String(), "/ca 0.")
}

func TestExportPDFRejectsEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, render.ExportPDF(&buf, board.NewState(), geometry.New(1), 0, 0))
}
