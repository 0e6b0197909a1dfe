package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/drawboard/internal/auth"
	"github.com/inamate/drawboard/internal/board"
	"github.com/inamate/drawboard/internal/render"
)

type Handler struct {
	manager        *Manager
	auth           *auth.Service
	canvasWidth    int
	canvasHeight   int
	originPatterns []string
}

type Option func(*Handler)

// WithCanvasSize sets the export size in surface units.
func WithCanvasSize(width, height int) Option {
	return func(h *Handler) {
		h.canvasWidth = width
		h.canvasHeight = height
	}
}

// WithOriginPatterns sets the hosts allowed to open a websocket.
func WithOriginPatterns(patterns []string) Option {
	return func(h *Handler) { h.originPatterns = patterns }
}

func NewHandler(manager *Manager, authService *auth.Service, opts ...Option) *Handler {
	h := &Handler{
		manager:        manager,
		auth:           authService,
		canvasWidth:    1280,
		canvasHeight:   800,
		originPatterns: []string{"localhost:5173", "localhost:3000"},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type createResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

type boardResponse struct {
	ID       string               `json:"id"`
	State    board.State          `json:"state"`
	Commands []render.DrawCommand `json:"commands"`
}

// Create starts a board and returns its id with a token for it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	b := h.manager.Create()

	token, err := h.auth.IssueBoardToken(b.ID)
	if err != nil {
		slog.Error("issue board token failed", "error", err, "board", b.ID)
		h.manager.Remove(b.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: b.ID, Token: token, CreatedAt: b.CreatedAt})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.List())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.manager.Get(mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	s, cmds := b.Snapshot()
	writeJSON(w, http.StatusOK, boardResponse{ID: b.ID, State: s, Commands: cmds})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Remove(mux.Vars(r)["boardId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	b, err := h.manager.Get(mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := b.RenderPNG(&buf, h.canvasWidth, h.canvasHeight); err != nil {
		handleServiceError(w, err)
		return
	}
	writeFile(w, "image/png", b.ID+".png", buf.Bytes())
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	b, err := h.manager.Get(mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := b.ExportPDF(&buf, float64(h.canvasWidth), float64(h.canvasHeight)); err != nil {
		handleServiceError(w, err)
		return
	}
	writeFile(w, "application/pdf", b.ID+".pdf", buf.Bytes())
}

// ServeWS attaches a websocket client to the board named by {boardId}. The
// board token travels in the "token" query parameter since browsers cannot
// set headers on websocket requests.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	if err := h.auth.Authorize(token, boardID); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	b, err := h.manager.Get(boardID)
	if err != nil {
		http.Error(w, "board not found", http.StatusNotFound)
		return
	}

	// Closing the board cancels ctx, which ends both pumps.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	clientID := uuid.New().String()
	if err := b.Attach(clientID, cancel); err != nil {
		http.Error(w, "board busy", http.StatusConflict)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		b.Detach(clientID)
		return
	}

	client := NewClient(b, conn, clientID)
	client.Send(b.Welcome(clientID))
	slog.Info("client attached", "board", boardID, "client", clientID)

	go client.WritePump(ctx)
	client.ReadPump(ctx)

	slog.Info("client detached", "board", boardID, "client", clientID)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBoardNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrBoardBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "board busy"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
