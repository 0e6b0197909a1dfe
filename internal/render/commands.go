package render

import (
	"encoding/json"
	"strconv"

	"github.com/inamate/drawboard/internal/board"
)

// DrawCommand is one committed object as a Canvas2D client paints it: trace
// Path, fill if Fill is set, then stroke.
type DrawCommand struct {
	Op          string              `json:"op"`                    // Operation: "path"
	ObjectID    string              `json:"objectId,omitempty"`    // "shape:<id>" or "stroke:<index>"
	Path        []board.PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string              `json:"fill,omitempty"`        // Fill color
	Stroke      string              `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64             `json:"strokeWidth,omitempty"` // Stroke width
	Opacity     float64             `json:"opacity,omitempty"`     // Global alpha
}

// StrokeBuilder turns a finished freehand stroke into a renderable shape.
type StrokeBuilder interface {
	BuildStroke(id int, stroke board.Stroke) board.Shape
}

// ShapeObjectID and StrokeObjectID name the objects a command draws.
func ShapeObjectID(id int) string      { return "shape:" + strconv.Itoa(id) }
func StrokeObjectID(index int) string { return "stroke:" + strconv.Itoa(index) }

// CompileDrawCommands generates a draw command buffer from a board state.
// Commands are in painter's order: shapes first, then committed strokes.
// The stroke being drawn is not included; clients see it through live ops.
func CompileDrawCommands(s board.State, strokes StrokeBuilder) []DrawCommand {
	commands := make([]DrawCommand, 0, len(s.Elements)+len(s.Path))

	for _, e := range s.Elements {
		if len(e.Path) == 0 {
			continue
		}
		commands = append(commands, DrawCommand{
			Op:          "path",
			ObjectID:    ShapeObjectID(e.ID),
			Path:        e.Path,
			Fill:        e.Style.FillColor,
			Stroke:      e.Style.StrokeColor,
			StrokeWidth: e.Style.StrokeWidth,
			Opacity:     board.FullOpacity,
		})
	}

	for i, st := range s.Path {
		if len(st) == 0 {
			continue
		}
		shape := strokes.BuildStroke(i, st)
		commands = append(commands, DrawCommand{
			Op:          "path",
			ObjectID:    StrokeObjectID(i),
			Path:        shape.Path,
			Stroke:      shape.Style.StrokeColor,
			StrokeWidth: shape.Style.StrokeWidth,
			Opacity:     st[0].Transparency,
		})
	}

	return commands
}

// DrawCommandsToJSON encodes commands for clients that take a JSON string,
// such as the wasm build.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
