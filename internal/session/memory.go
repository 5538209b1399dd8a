package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on
// restart and are not shared between instances.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Data
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Data), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, sid string) (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[sid]
	if !ok {
		return nil, nil
	}
	if d.Expired(m.now()) {
		delete(m.items, sid)
		return nil, nil
	}
	return &d, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, d Data) error {
	m.mu.Lock()
	m.items[sid] = d
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	delete(m.items, sid)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for sid, d := range m.items {
		if d.Expired(now) {
			delete(m.items, sid)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
