package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Load(ctx context.Context, id uuid.UUID) (State, error)
	Save(ctx context.Context, st State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// JSONCache is the subset of the redis cache used for session persistence.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type CacheStore struct {
	cache JSONCache
	ttl   time.Duration
}

func NewCacheStore(cache JSONCache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: cache, ttl: ttl}
}

func Key(id uuid.UUID) string {
	return "session:" + id.String()
}

func (s *CacheStore) Load(ctx context.Context, id uuid.UUID) (State, error) {
	var st State
	hit, err := s.cache.GetJSON(ctx, Key(id), &st)
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	if !hit {
		return State{}, ErrNotFound
	}
	return st, nil
}

func (s *CacheStore) Save(ctx context.Context, st State) error {
	if err := s.cache.SetJSON(ctx, Key(st.ID), st, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *CacheStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, Key(id))
}

// MemoryStore keeps sessions in process. Entries expire after ttl when ttl > 0.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: map[uuid.UUID]memoryEntry{}, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (State, error) {
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return State{}, ErrNotFound
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, id)
		s.mu.Unlock()
		return State{}, ErrNotFound
	}
	st := e.state
	st.Levels = e.state.Levels.Clone()
	return st, nil
}

func (s *MemoryStore) Save(_ context.Context, st State) error {
	e := memoryEntry{state: st}
	e.state.Levels = st.Levels.Clone()
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.items[st.ID] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}
