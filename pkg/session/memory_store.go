package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-process maps.
// Records are copied in and out; reference types inside T are shared with the caller.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]Data[T]
	groups  map[string]map[string]struct{}
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a new in-memory session store.
// A positive cleanupInterval starts a background sweep of expired records.
func NewMemoryStore[T any](cleanupInterval time.Duration) *MemoryStore[T] {
	return newMemoryStore[T](cleanupInterval, time.Now)
}

// newMemoryStore lets the manager share its clock with the expiry sweep.
func newMemoryStore[T any](cleanupInterval time.Duration, now func() time.Time) *MemoryStore[T] {
	store := &MemoryStore[T]{
		records: make(map[string]Data[T]),
		groups:  make(map[string]map[string]struct{}),
		now:     now,
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Fetch returns a copy of the record stored under id
func (m *MemoryStore[T]) Fetch(ctx context.Context, id string) (Data[T], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[id]
	if !ok {
		return Data[T]{}, ErrNotFound
	}
	return data, nil
}

// Save creates or overwrites the record keyed by data.ID.
// A retired record stays retired.
func (m *MemoryStore[T]) Save(ctx context.Context, data Data[T]) error {
	if data.ID == "" {
		return ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.records[data.ID]; ok {
		if prev.GroupID != data.GroupID {
			m.unlinkLocked(prev.GroupID, prev.ID)
		}
		data.IsRetired = data.IsRetired || prev.IsRetired
	}
	m.records[data.ID] = data
	if data.GroupID != "" {
		members, ok := m.groups[data.GroupID]
		if !ok {
			members = make(map[string]struct{})
			m.groups[data.GroupID] = members
		}
		members[data.ID] = struct{}{}
	}
	return nil
}

// Retire flags the record as retired. The record stays until it expires
// so later lookups observe IsRetired.
func (m *MemoryStore[T]) Retire(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, ok := m.records[id]; ok {
		data.IsRetired = true
		m.records[id] = data
	}
	return nil
}

// RetireGroup flags every record linked to groupID as retired
func (m *MemoryStore[T]) RetireGroup(ctx context.Context, groupID string) error {
	if groupID == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.groups[groupID] {
		if data, ok := m.records[id]; ok {
			data.IsRetired = true
			m.records[id] = data
		}
	}
	return nil
}

// DeleteExpired removes records past their absolute or idle deadline
func (m *MemoryStore[T]) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var removed int64
	for id, data := range m.records {
		if data.IsAbsoluteExpired(now) || data.IsIdleExpired(now) {
			delete(m.records, id)
			m.unlinkLocked(data.GroupID, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored records, retired ones included
func (m *MemoryStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the cleanup goroutine
func (m *MemoryStore[T]) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore[T]) unlinkLocked(groupID, id string) {
	if groupID == "" {
		return
	}
	members := m.groups[groupID]
	delete(members, id)
	if len(members) == 0 {
		delete(m.groups, groupID)
	}
}

// cleanupLoop runs periodic cleanup of expired sessions
func (m *MemoryStore[T]) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_, _ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
