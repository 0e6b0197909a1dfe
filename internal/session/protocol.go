package session

import (
	"encoding/json"

	"github.com/inamate/drawboard/internal/board"
	"github.com/inamate/drawboard/internal/render"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypeToolChange    = "tool.change"
	TypeToolboxUpdate = "toolbox.update"

	// Server → client
	TypeWelcome    = "welcome"
	TypeBoardState = "board.state"
	TypeDrawLive   = "draw.live"
	TypeError      = "error"
)

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ToolChangePayload struct {
	Tool board.Tool `json:"tool"`
}

type ToolboxUpdatePayload struct {
	Tool   board.Tool `json:"tool"`
	Stroke string     `json:"stroke"`
	Fill   string     `json:"fill,omitempty"`
	Size   float64    `json:"size"`
}

type WelcomePayload struct {
	BoardID  string               `json:"boardId"`
	ClientID string               `json:"clientId"`
	State    board.State          `json:"state"`
	Commands []render.DrawCommand `json:"commands"`
	Toolbox  board.Toolbox        `json:"toolbox"`
}

type BoardStatePayload struct {
	State    board.State          `json:"state"`
	Commands []render.DrawCommand `json:"commands"`
}

// DrawLivePayload carries the canvas calls made while a freehand stroke is
// in progress, for the client to replay.
type DrawLivePayload struct {
	Commands []render.LiveOp `json:"commands"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads are plain structs; this only fails on NaN coordinates.
		data, _ = json.Marshal(ErrorPayload{Message: "could not encode " + typ})
		typ = TypeError
	}
	return &Message{Type: typ, Payload: data}
}

func errorMessage(msg string) *Message {
	return newMessage(TypeError, ErrorPayload{Message: msg})
}
