// internal/store/memory.go
//
// In-memory store of live game snapshots, read by spectators.
//
// Characteristics:
//   - Keeps the latest game.Snapshot per session, keyed by session ID.
//   - Concurrency-safe via RWMutex: the terminal host writes after every key
//     press while HTTP handlers read.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

// ErrNotFound is returned by Get for unknown sessions.
var ErrNotFound = errors.New("not found")

// Store defines the snapshot persistence interface.
type Store interface {
	// Save replaces the snapshot for sessionID.
	Save(ctx context.Context, sessionID string, s game.Snapshot) error

	// Get retrieves the snapshot for sessionID or ErrNotFound.
	Get(ctx context.Context, sessionID string) (game.Snapshot, error)

	// List returns every session's latest snapshot, most recently updated first.
	List(ctx context.Context) ([]Entry, error)
}

// Entry pairs a session with its snapshot.
type Entry struct {
	SessionID string        `json:"sessionId"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu        sync.RWMutex
	snapshots map[string]game.Snapshot
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{snapshots: make(map[string]game.Snapshot)}
}

func (m *memory) Save(_ context.Context, sessionID string, s game.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[sessionID] = s
	return nil
}

func (m *memory) Get(_ context.Context, sessionID string) (game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.snapshots[sessionID]; ok {
		return s, nil
	}
	return game.Snapshot{}, ErrNotFound
}

func (m *memory) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.snapshots))
	for id, s := range m.snapshots {
		out = append(out, Entry{SessionID: id, Snapshot: s})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Snapshot.UpdatedAt.After(out[j].Snapshot.UpdatedAt)
	})
	return out, nil
}
