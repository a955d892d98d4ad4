package users

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store persists users. Insert must reject duplicate usernames and emails
// with ErrUsernameTaken and ErrEmailTaken.
type Store interface {
	Insert(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, q ListQuery) ([]*User, error)
}

// MemoryStore keeps users in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, byID: make(map[int64]*User)}
}

func (m *MemoryStore) Insert(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Usernames are checked before emails, as in MySQLStore.
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}

	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now().UTC()

	stored := *u
	m.byID[u.ID] = &stored
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *MemoryStore) List(ctx context.Context, q ListQuery) ([]*User, error) {
	m.mu.RLock()
	all := make([]*User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		all = append(all, &cp)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if q.Skip >= len(all) {
		return []*User{}, nil
	}
	all = all[q.Skip:]
	if q.Limit > 0 && q.Limit < len(all) {
		all = all[:q.Limit]
	}
	return all, nil
}
