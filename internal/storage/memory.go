// Package storage provides recipe persistence implementations behind the
// domain.RecipeStore port.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory recipe store. Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]*domain.SavedRecipe
	log     *logger.Logger
}

// NewMemoryStore creates an empty in-memory recipe store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		recipes: make(map[string]*domain.SavedRecipe),
		log:     log,
	}
}

// Save persists a recipe, assigning an id and timestamp when absent.
func (s *MemoryStore) Save(ctx context.Context, rec *domain.SavedRecipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.log.Debug("saving recipe %s (owner=%s, url=%s)", rec.ID, rec.Owner, rec.SourceURL)
	s.recipes[rec.ID] = rec
	return nil
}

// List returns an owner's recipes, newest first.
func (s *MemoryStore) List(ctx context.Context, owner string) ([]*domain.SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.SavedRecipe
	for _, r := range s.recipes {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Get returns a recipe by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// Delete removes a recipe by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

// FindByURL returns an owner's recipe for a source URL, if any.
func (s *MemoryStore) FindByURL(ctx context.Context, owner, url string) (*domain.SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.Owner == owner && r.SourceURL == url {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}
