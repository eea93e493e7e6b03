package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// State is one conversation's accumulated record. It is committed through
// Store.Save only after a turn fully succeeds; failed or cancelled turns
// leave the stored state untouched.
type State struct {
	ID       uuid.UUID
	UserName string
	Data     types.CollectedData
	History  []types.ChatMessage

	// Imported marks a completed LinkedIn import so a retried URL does not
	// re-run the scrape.
	Imported bool
	// Analyzed marks a delivered analysis so completeness does not trigger
	// a second run mid-conversation.
	Analyzed bool
}

// ErrNotFound is returned for unknown conversation IDs.
var ErrNotFound = errors.New("conversation not found")

// Store persists conversation state between turns.
type Store interface {
	// Load returns the state for id, or ErrNotFound.
	Load(ctx context.Context, id uuid.UUID) (State, error)
	// Save commits the state, overwriting any previous version.
	Save(ctx context.Context, state State) error
}

// MemoryStore is the in-process Store used by the server; conversations are
// short-lived and survive only as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[uuid.UUID]State
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[uuid.UUID]State)}
}

// Load returns the state for id, or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	if !ok {
		return State{}, ErrNotFound
	}
	return state, nil
}

// Save commits the state.
func (s *MemoryStore) Save(_ context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.ID] = state
	return nil
}
