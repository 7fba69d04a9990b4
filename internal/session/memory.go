package session

import "sync"

// MemoryStore holds a session in process memory only. Used by tests and
// as a throwaway backend.
type MemoryStore struct {
	mu      sync.Mutex
	current Session
	held    bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (Session, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.current, ms.held, nil
}

func (ms *MemoryStore) Save(s Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.current = s
	ms.held = true
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.current = Session{}
	ms.held = false
	return nil
}
