package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/drawboard/internal/board"
	"github.com/inamate/drawboard/internal/render"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBoardBusy     = errors.New("board already has a client attached")
)

// Geometry is what a session needs from the geometry helpers: shape
// construction and hit tests for the reducer, stroke shapes for rendering.
type Geometry interface {
	board.Geometry
	render.StrokeBuilder
}

// Board is one live drawing surface. All access to its controller goes
// through mu, so the websocket client and HTTP readers never race.
type Board struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	geo      Geometry
	ctrl     *board.Controller
	toolbox  board.Toolbox
	recorder *render.Recorder

	attached string // client id, empty when free
	detach   func()
}

func NewBoard(id string, geo Geometry) *Board {
	return &Board{
		ID:        id,
		CreatedAt: time.Now(),
		geo:       geo,
		ctrl:      board.NewController(geo),
		toolbox:   board.DefaultToolbox(),
		recorder:  render.NewRecorder(),
	}
}

// Attach claims the board for clientID. onClose is called if the board is
// closed while the client is attached.
func (b *Board) Attach(clientID string, onClose func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached != "" {
		return ErrBoardBusy
	}
	b.attached = clientID
	b.detach = onClose
	return nil
}

// Detach releases the board if clientID holds it.
func (b *Board) Detach(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached != clientID {
		return
	}
	b.attached = ""
	b.detach = nil

	// A dropped connection can leave a drag half done.
	b.ctrl.PointerUp(board.PointerEvent{}, b.recorder, b.toolbox)
	b.recorder.Flush()
}

// AttachedClient returns the id of the attached client, if any.
func (b *Board) AttachedClient() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Close disconnects the attached client.
func (b *Board) Close() {
	b.mu.Lock()
	onClose := b.detach
	b.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Snapshot returns a copy of the board state and its draw commands.
func (b *Board) Snapshot() (board.State, []render.DrawCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() (board.State, []render.DrawCommand) {
	s := b.ctrl.Snapshot()
	return s, render.CompileDrawCommands(s, b.geo)
}

// Welcome builds the first message sent to a newly attached client.
func (b *Board) Welcome(clientID string) *Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, cmds := b.snapshotLocked()
	msg := newMessage(TypeWelcome, WelcomePayload{
		BoardID:  b.ID,
		ClientID: clientID,
		State:    s,
		Commands: cmds,
		Toolbox:  b.toolbox.Clone(),
	})
	msg.BoardID = b.ID
	msg.ClientID = clientID
	return msg
}

// Handle applies one client message and returns the messages to send back.
// Malformed or unknown messages produce an error message and leave the
// board untouched.
func (b *Board) Handle(msg *Message) []*Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []*Message
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return []*Message{errorMessage("invalid pointer payload")}
		}
		out = b.handlePointer(msg.Type, board.PointerEvent{X: p.X, Y: p.Y})

	case TypeToolChange:
		var p ToolChangePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || !p.Tool.Valid() {
			return []*Message{errorMessage("invalid tool")}
		}
		b.ctrl.ChangeTool(p.Tool)
		out = []*Message{b.stateMessageLocked()}

	case TypeToolboxUpdate:
		var p ToolboxUpdatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || !p.Tool.Valid() {
			return []*Message{errorMessage("invalid toolbox update")}
		}
		if p.Size < 0 {
			return []*Message{errorMessage("size must not be negative")}
		}
		b.toolbox[p.Tool] = board.ToolStyle{Stroke: p.Stroke, Fill: p.Fill, Size: p.Size}

	default:
		slog.Warn("unknown message type", "type", msg.Type, "board", b.ID)
		return []*Message{errorMessage(fmt.Sprintf("unknown message type %q", msg.Type))}
	}

	for _, m := range out {
		m.BoardID = b.ID
	}
	return out
}

func (b *Board) handlePointer(typ string, ev board.PointerEvent) []*Message {
	switch typ {
	case TypePointerDown:
		b.ctrl.PointerDown(ev, b.recorder, b.toolbox)
	case TypePointerMove:
		b.ctrl.PointerMove(ev, b.recorder, b.toolbox)
	case TypePointerUp:
		b.ctrl.PointerUp(ev, b.recorder, b.toolbox)
	}

	var out []*Message
	if ops := b.recorder.Flush(); len(ops) > 0 {
		out = append(out, newMessage(TypeDrawLive, DrawLivePayload{Commands: ops}))
	}

	// Live ops already cover an in-progress stroke, and an idle move
	// changes nothing.
	if typ == TypePointerMove {
		switch b.ctrl.Snapshot().ToolActionType {
		case board.ActionSketching, board.ActionNone:
			return out
		}
	}
	return append(out, b.stateMessageLocked())
}

func (b *Board) stateMessageLocked() *Message {
	s, cmds := b.snapshotLocked()
	return newMessage(TypeBoardState, BoardStatePayload{State: s, Commands: cmds})
}

// RenderPNG writes the committed drawing as a width x height PNG.
func (b *Board) RenderPNG(w io.Writer, width, height int) error {
	s, _ := b.Snapshot()
	return render.RenderPNG(w, s, b.geo, width, height)
}

// ExportPDF writes the committed drawing as a single-page PDF.
func (b *Board) ExportPDF(w io.Writer, width, height float64) error {
	s, _ := b.Snapshot()
	return render.ExportPDF(w, s, b.geo, width, height)
}
