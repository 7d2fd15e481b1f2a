package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/Harshitk-cp/cloudtail/internal/store"
	"github.com/google/uuid"
)

// mockMemoryStore implements domain.MemoryStore for testing.
type mockMemoryStore struct {
	mu       sync.Mutex
	memories map[uuid.UUID]*domain.Memory
	clock    time.Time
	err      error
}

func newMockMemoryStore() *mockMemoryStore {
	return &mockMemoryStore{
		memories: make(map[uuid.UUID]*domain.Memory),
		clock:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockMemoryStore) Create(ctx context.Context, mem *domain.Memory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	mem.ID = uuid.New()
	if mem.CreatedAt.IsZero() {
		m.clock = m.clock.Add(time.Minute)
		mem.CreatedAt = m.clock
	}
	mem.UpdatedAt = mem.CreatedAt
	cp := *mem
	m.memories[mem.ID] = &cp
	return nil
}

func (m *mockMemoryStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memories[id]
	if !ok || mem.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := *mem
	return &cp, nil
}

func (m *mockMemoryStore) sorted(userID uuid.UUID, keep func(*domain.Memory) bool) []domain.Memory {
	var out []domain.Memory
	for _, mem := range m.memories {
		if mem.UserID == userID && keep(mem) {
			out = append(out, *mem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *mockMemoryStore) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := m.sorted(userID, func(*domain.Memory) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMemoryStore) Update(ctx context.Context, id, userID uuid.UUID, u domain.MemoryUpdate) (*domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memories[id]
	if !ok || mem.UserID != userID {
		return nil, store.ErrNotFound
	}
	if u.ManualOverride != nil {
		e := *u.ManualOverride
		mem.ManualOverride = &e
	}
	if u.IsPrivate != nil {
		mem.IsPrivate = *u.IsPrivate
	}
	if u.Keywords != nil {
		mem.Keywords = u.Keywords
	}
	cp := *mem
	return &cp, nil
}

func (m *mockMemoryStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memories[id]
	if !ok || mem.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.memories, id)
	return nil
}

func (m *mockMemoryStore) History(ctx context.Context, userID uuid.UUID, opts domain.HistoryOpts) ([]domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := m.sorted(userID, func(mem *domain.Memory) bool {
		if mem.IsPrivate {
			return false
		}
		return opts.Since.IsZero() || !mem.CreatedAt.Before(opts.Since)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// add stores a memory with the given detected emotion at an explicit time.
func (m *mockMemoryStore) add(t *testing.T, userID uuid.UUID, e domain.Emotion, at time.Time) *domain.Memory {
	t.Helper()
	mem := &domain.Memory{UserID: userID, Content: string(e), DetectedEmotion: e, CreatedAt: at}
	if err := m.Create(context.Background(), mem); err != nil {
		t.Fatalf("add memory: %v", err)
	}
	return mem
}

// mockAuditSink implements domain.AuditSink for testing.
type mockAuditSink struct {
	mu       sync.Mutex
	emotions []domain.EmotionEvent
	planets  []domain.PlanetEvent
	rituals  []domain.RitualEvent
	err      error
}

func (s *mockAuditSink) RecordEmotion(ctx context.Context, e domain.EmotionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emotions = append(s.emotions, e)
	return s.err
}

func (s *mockAuditSink) RecordPlanet(ctx context.Context, e domain.PlanetEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planets = append(s.planets, e)
	return s.err
}

func (s *mockAuditSink) RecordRitual(ctx context.Context, e domain.RitualEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rituals = append(s.rituals, e)
	return s.err
}

// mockUserStore implements domain.UserStore for testing.
type mockUserStore struct {
	users map[string]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	if _, ok := m.users[u.APIKeyHash]; ok {
		return store.ErrConflict
	}
	u.ID = uuid.New()
	m.users[u.APIKeyHash] = u
	return nil
}

func (m *mockUserStore) GetByAPIKeyHash(ctx context.Context, hash string) (*domain.User, error) {
	u, ok := m.users[hash]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}
