package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"Astrale/internal/model"
)

// MemoryStore keeps everything in process memory behind one mutex.
// Used when no SQLite path is configured and throughout the tests.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	insights []model.Insight
	natal    map[uuid.UUID][]model.NatalPlacement
	journal  map[uuid.UUID][]model.JournalEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*model.User),
		natal:   make(map[uuid.UUID][]model.NatalPlacement),
		journal: make(map[uuid.UUID][]model.JournalEntry),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *MemoryStore) IsSubscriber(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return ok && u.Subscriber, nil
}

func (m *MemoryStore) DebitCredits(_ context.Context, id uuid.UUID, amount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.Credits < amount {
		return false, nil
	}
	u.Credits -= amount
	return true, nil
}

func (m *MemoryStore) RefundCredits(_ context.Context, id uuid.UUID, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Credits += amount
	}
	return nil
}

func (m *MemoryStore) SaveInsight(_ context.Context, ins *model.Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights = append(m.insights, *ins)
	return nil
}

func (m *MemoryStore) LatestInsight(_ context.Context, userID uuid.UUID, kind, key string, since time.Time) (*model.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Newest row wins; scan from the end since appends are in order.
	for i := len(m.insights) - 1; i >= 0; i-- {
		ins := m.insights[i]
		if ins.UserID != userID || ins.Kind != kind {
			continue
		}
		if key != "" && ins.Key != key {
			continue
		}
		if ins.CreatedAt.Before(since) {
			continue
		}
		cp := ins
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryStore) SaveNatalPlacements(_ context.Context, userID uuid.UUID, placements []model.NatalPlacement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.natal[userID] = append([]model.NatalPlacement(nil), placements...)
	return nil
}

func (m *MemoryStore) NatalPlacements(_ context.Context, userID uuid.UUID) ([]model.NatalPlacement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.NatalPlacement(nil), m.natal[userID]...), nil
}

func (m *MemoryStore) AddJournalEntry(_ context.Context, e *model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journal[e.UserID] = append(m.journal[e.UserID], *e)
	return nil
}

func (m *MemoryStore) CountJournalEntries(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.journal[userID]), nil
}

func (m *MemoryStore) LatestJournalAt(_ context.Context, userID uuid.UUID) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.journal[userID]
	if len(entries) == 0 {
		return time.Time{}, false, nil
	}
	latest := entries[0].CreatedAt
	for _, e := range entries[1:] {
		if e.CreatedAt.After(latest) {
			latest = e.CreatedAt
		}
	}
	return latest, true, nil
}

func (m *MemoryStore) Close() error { return nil }
