package notes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps notes in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, byID: make(map[int64]*Note)}
}

func (m *MemoryStore) Insert(ctx context.Context, n *Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = nil

	m.byID[n.ID] = cloneNote(n)
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.byID[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (m *MemoryStore) List(ctx context.Context, q ListQuery) ([]*Note, error) {
	m.mu.RLock()
	matched := make([]*Note, 0, len(m.byID))
	for _, n := range m.byID {
		if q.UserID > 0 && n.UserID != q.UserID {
			continue
		}
		matched = append(matched, cloneNote(n))
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if q.Skip >= len(matched) {
		return []*Note{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *MemoryStore) Update(ctx context.Context, n *Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[n.ID]
	if !ok {
		return ErrNoteNotFound
	}
	stored.Title = n.Title
	stored.Content = n.Content
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		stored.UpdatedAt = &t
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return ErrNoteNotFound
	}
	delete(m.byID, id)
	return nil
}

func cloneNote(n *Note) *Note {
	cp := *n
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}
