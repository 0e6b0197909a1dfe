package session

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/inamate/drawboard/internal/typeid"
)

// Manager owns every live board, keyed by board id.
type Manager struct {
	mu     sync.RWMutex
	boards map[string]*Board
	geo    Geometry
}

func NewManager(geo Geometry) *Manager {
	return &Manager{
		boards: make(map[string]*Board),
		geo:    geo,
	}
}

// Create starts an empty board under a fresh id.
func (m *Manager) Create() *Board {
	b := NewBoard(typeid.NewBoardID(), m.geo)

	m.mu.Lock()
	m.boards[b.ID] = b
	m.mu.Unlock()

	slog.Info("board created", "board", b.ID)
	return b
}

func (m *Manager) Get(id string) (*Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.boards[id]
	if !ok {
		return nil, ErrBoardNotFound
	}
	return b, nil
}

// Remove drops the board and disconnects its client.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	b, ok := m.boards[id]
	if ok {
		delete(m.boards, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrBoardNotFound
	}
	b.Close()
	slog.Info("board removed", "board", id)
	return nil
}

type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Attached  bool      `json:"attached"`
	Shapes    int       `json:"shapes"`
	Strokes   int       `json:"strokes"`
}

// List summarises every board, oldest first.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	boards := make([]*Board, 0, len(m.boards))
	for _, b := range m.boards {
		boards = append(boards, b)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(boards))
	for _, b := range boards {
		s, _ := b.Snapshot()
		out = append(out, Summary{
			ID:        b.ID,
			CreatedAt: b.CreatedAt,
			Attached:  b.AttachedClient() != "",
			Shapes:    len(s.Elements),
			Strokes:   len(s.Path),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CloseAll disconnects every attached client. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	boards := make([]*Board, 0, len(m.boards))
	for _, b := range m.boards {
		boards = append(boards, b)
	}
	m.mu.RUnlock()

	for _, b := range boards {
		b.Close()
	}
}
