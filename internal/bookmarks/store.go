package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the JSON array of titles.
const DefaultKey = "bookmarks"

// Backend is the key-value storage the store persists into.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// PersistenceError reports a failed read or write of the bookmark key.
// The in-memory set stays authoritative when it is returned.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bookmarks %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Store struct {
	backend Backend
	key     string
	logger  *zap.Logger

	mu  sync.Mutex
	set Set
}

func NewStore(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  logger,
		set:     NewSet(),
	}
}

// Load reads the persisted set. Missing, unreadable or corrupt payloads
// all yield an empty set.
func (s *Store) Load(ctx context.Context) Set {
	loaded := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = loaded
	return s.set.Clone()
}

func (s *Store) read(ctx context.Context) Set {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("bookmark load failed, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return NewSet()
	}
	if !ok {
		return NewSet()
	}

	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		s.logger.Warn("bookmark payload corrupt, starting empty",
			zap.String("key", s.key), zap.Int("bytes", len(raw)), zap.Error(err))
		return NewSet()
	}
	return NewSet(titles...)
}

func (s *Store) IsBookmarked(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Has(title)
}

// Snapshot returns a copy of the current set.
func (s *Store) Snapshot() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Clone()
}

// Toggle adds or removes title and persists the result before returning.
// A non-nil error is a *PersistenceError; the returned set is valid
// either way.
func (s *Store) Toggle(ctx context.Context, title string) (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set.Has(title) {
		delete(s.set, title)
	} else {
		s.set[title] = struct{}{}
	}
	err := s.saveLocked(ctx, s.set)
	return s.set.Clone(), err
}

// Save replaces the in-memory set and persists it.
func (s *Store) Save(ctx context.Context, set Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set.Clone()
	return s.saveLocked(ctx, s.set)
}

func (s *Store) saveLocked(ctx context.Context, set Set) error {
	payload, err := json.Marshal(set.Titles())
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.backend.Set(ctx, s.key, payload); err != nil {
		s.logger.Warn("bookmark save failed, keeping in-memory set",
			zap.String("key", s.key), zap.Int("count", set.Len()), zap.Error(err))
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	return nil
}
