package categorystore

import (
	"context"
	"sync"

	"github.com/murkotick/storefront-service/internal/app/settings/domain"
)

// Loader reads the current category lists.
type Loader interface {
	Categories(ctx context.Context) (domain.Categories, error)
}

// Store caches the category lists. It is built once at start-up and handed
// to whatever needs categories; nothing loads until Fetch or Refresh is called.
type Store struct {
	loader Loader

	mu     sync.RWMutex
	cats   domain.Categories
	loaded bool
	// serializes loads so concurrent Fetch calls hit the store once
	loadMu sync.Mutex
}

func New(loader Loader) *Store {
	return &Store{loader: loader}
}

// Fetch loads the categories unless they are already loaded.
func (s *Store) Fetch(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.Loaded() {
		return nil
	}
	return s.load(ctx)
}

// Refresh always reloads the categories.
func (s *Store) Refresh(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx)
}

// Snapshot returns a copy of the cached lists; empty lists before the first load.
func (s *Store) Snapshot() domain.Categories {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cats.Clone()
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get fetches when needed and returns a snapshot.
func (s *Store) Get(ctx context.Context) (domain.Categories, error) {
	if err := s.Fetch(ctx); err != nil {
		return domain.Categories{}, err
	}
	return s.Snapshot(), nil
}

func (s *Store) load(ctx context.Context) error {
	cats, err := s.loader.Categories(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cats = cats.Clone()
	s.loaded = true
	s.mu.Unlock()
	return nil
}
