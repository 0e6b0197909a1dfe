//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/drawboard/internal/board"
	"github.com/inamate/drawboard/internal/geometry"
	"github.com/inamate/drawboard/internal/render"
)

var (
	geo     *geometry.Helpers
	ctrl    *board.Controller
	toolbox board.Toolbox
)

// canvasSurface forwards surface calls to a CanvasRenderingContext2D.
type canvasSurface struct {
	ctx js.Value
}

func (s canvasSurface) MoveTo(x, y float64) { s.ctx.Call("moveTo", x, y) }
func (s canvasSurface) BeginPath()          { s.ctx.Call("beginPath") }
func (s canvasSurface) LineTo(x, y float64) { s.ctx.Call("lineTo", x, y) }
func (s canvasSurface) ClosePath()          { s.ctx.Call("closePath") }
func (s canvasSurface) Stroke()             { s.ctx.Call("stroke") }

func (s canvasSurface) QuadraticCurveTo(cx, cy, x, y float64) {
	s.ctx.Call("quadraticCurveTo", cx, cy, x, y)
}

func (s canvasSurface) SetStrokeStyle(color string) { s.ctx.Set("strokeStyle", color) }
func (s canvasSurface) SetLineWidth(width float64)  { s.ctx.Set("lineWidth", width) }

func main() {
	geo = geometry.New(geometry.DefaultTolerance)
	ctrl = board.NewController(geo)
	toolbox = board.DefaultToolbox()

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → board) ---
	api.Set("changeTool", js.FuncOf(changeTool))
	api.Set("setToolStyle", js.FuncOf(setToolStyle))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))

	// --- Queries (frontend ← board) ---
	api.Set("getState", js.FuncOf(getState))
	api.Set("render", js.FuncOf(renderCommands))

	js.Global().Set("drawboard", api)
	js.Global().Set("drawboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func changeTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing tool")
	}
	tool := board.Tool(args[0].String())
	if !tool.Valid() {
		return errorValue("unknown tool " + string(tool))
	}
	ctrl.ChangeTool(tool)
	return okValue()
}

// setToolStyle(tool, {stroke, fill, size})
func setToolStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[1].Type() != js.TypeObject {
		return errorValue("expected tool and style")
	}
	tool := board.Tool(args[0].String())
	if !tool.Valid() {
		return errorValue("unknown tool " + string(tool))
	}

	style := toolbox.Style(tool)
	if v := args[1].Get("stroke"); v.Type() == js.TypeString {
		style.Stroke = v.String()
	}
	if v := args[1].Get("fill"); v.Type() == js.TypeString {
		style.Fill = v.String()
	}
	if v := args[1].Get("size"); v.Type() == js.TypeNumber {
		style.Size = v.Float()
	}
	toolbox[tool] = style
	return okValue()
}

// pointer handlers take (x, y, ctx) where ctx is the canvas 2D context used
// for live stroke feedback.
func pointerArgs(args []js.Value) (board.PointerEvent, board.Surface, bool) {
	if len(args) < 3 {
		return board.PointerEvent{}, nil, false
	}
	return board.PointerEvent{X: args[0].Float(), Y: args[1].Float()}, canvasSurface{ctx: args[2]}, true
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	ev, surface, ok := pointerArgs(args)
	if !ok {
		return errorValue("expected x, y, ctx")
	}
	ctrl.PointerDown(ev, surface, toolbox)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	ev, surface, ok := pointerArgs(args)
	if !ok {
		return errorValue("expected x, y, ctx")
	}
	ctrl.PointerMove(ev, surface, toolbox)
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ev, surface, ok := pointerArgs(args)
	if !ok {
		return errorValue("expected x, y, ctx")
	}
	ctrl.PointerUp(ev, surface, toolbox)
	return nil
}

func getState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ctrl.Snapshot())
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

func renderCommands(this js.Value, args []js.Value) interface{} {
	out, err := render.DrawCommandsToJSON(render.CompileDrawCommands(ctrl.Snapshot(), geo))
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(out)
}

func okValue() js.Value {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errorValue(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
