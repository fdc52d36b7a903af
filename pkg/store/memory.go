package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// MemoryStore keeps universes in process memory. Stored and returned
// universes are deep-copied so callers can never mutate store state through
// shared slices or maps.
type MemoryStore struct {
	mu        sync.RWMutex
	universes map[string]*rule.Universe
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{universes: make(map[string]*rule.Universe)}
}

// Put stores a universe under its name.
func (s *MemoryStore) Put(ctx context.Context, u *rule.Universe) error {
	if err := errors.ValidateUniverseName(u.Name); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}
	cp, err := deepCopy(u)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.universes[u.Name] = cp
	return nil
}

// Get returns the universe stored under name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*rule.Universe, error) {
	s.mu.RLock()
	u, ok := s.universes[name]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeUniverseNotFound, "universe %q not found", name)
	}
	return deepCopy(u)
}

// List returns the stored universe names in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.universes))
	for name := range s.universes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the universe stored under name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.universes[name]; !ok {
		return errors.New(errors.ErrCodeUniverseNotFound, "universe %q not found", name)
	}
	delete(s.universes, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func deepCopy(u *rule.Universe) (*rule.Universe, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy universe")
	}
	var cp rule.Universe
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy universe")
	}
	return &cp, nil
}

var _ Store = (*MemoryStore)(nil)
