package enrollment

import (
	"context"
	"sync"
)

// MemoryStorage keeps sessions in process; used when the database is disabled and in tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[string]*State
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[string]*State)}
}

func (m *MemoryStorage) Save(_ context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.ID] = state.Clone()
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (m *MemoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
