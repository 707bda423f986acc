package memory

import (
	"fmt"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
)

// CatalogStore holds the provider set loaded at startup. It is never mutated
// after construction, so reads need no locking. Records are copied on the way
// in and on the way out.
type CatalogStore struct {
	providers []*entities.Provider
	byID      map[string]*entities.Provider
}

// NewCatalogStore builds a store from providers in catalog order.
// Duplicate ids are rejected.
func NewCatalogStore(providers []*entities.Provider) (*CatalogStore, error) {
	store := &CatalogStore{
		providers: make([]*entities.Provider, 0, len(providers)),
		byID:      make(map[string]*entities.Provider, len(providers)),
	}

	for _, p := range providers {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return nil, fmt.Errorf("provider %q has no id", p.Name)
		}
		if _, exists := store.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate provider id %s", p.ID)
		}
		p = p.Clone()
		store.providers = append(store.providers, p)
		store.byID[p.ID] = p
	}

	return store, nil
}

var _ repositories.CatalogReader = (*CatalogStore)(nil)

// All returns copies of every provider in catalog order
func (s *CatalogStore) All() []*entities.Provider {
	out := make([]*entities.Provider, len(s.providers))
	for i, p := range s.providers {
		out[i] = p.Clone()
	}
	return out
}

// GetByID retrieves a copy of the provider with the given ID
func (s *CatalogStore) GetByID(id string) (*entities.Provider, bool) {
	p, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Len returns the number of providers
func (s *CatalogStore) Len() int {
	return len(s.providers)
}
