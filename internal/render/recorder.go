package render

import "github.com/inamate/drawboard/internal/board"

// LiveOp is one Canvas2D call recorded while a stroke is in progress.
type LiveOp struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Style string    `json:"style,omitempty"`
}

// Recorder implements board.Surface by buffering the calls it receives so
// they can be replayed on a remote canvas.
type Recorder struct {
	ops []LiveOp
}

var _ board.Surface = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) MoveTo(x, y float64) { r.add("moveTo", x, y) }
func (r *Recorder) BeginPath()          { r.add("beginPath") }
func (r *Recorder) LineTo(x, y float64) { r.add("lineTo", x, y) }
func (r *Recorder) ClosePath()          { r.add("closePath") }
func (r *Recorder) Stroke()             { r.add("stroke") }

func (r *Recorder) QuadraticCurveTo(cx, cy, x, y float64) {
	r.add("quadraticCurveTo", cx, cy, x, y)
}

func (r *Recorder) SetStrokeStyle(color string) {
	r.ops = append(r.ops, LiveOp{Op: "strokeStyle", Style: color})
}

func (r *Recorder) SetLineWidth(width float64) { r.add("lineWidth", width) }

// Len returns the number of buffered ops.
func (r *Recorder) Len() int { return len(r.ops) }

// Flush returns the buffered ops and empties the buffer.
func (r *Recorder) Flush() []LiveOp {
	ops := r.ops
	r.ops = nil
	return ops
}

func (r *Recorder) add(op string, args ...float64) {
	r.ops = append(r.ops, LiveOp{Op: op, Args: args})
}
