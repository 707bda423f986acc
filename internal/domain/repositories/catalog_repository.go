package repositories

import (
	"context"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// CatalogSource supplies the initial provider and review records.
// It is read once at startup and never refreshed.
type CatalogSource interface {
	// LoadProviders returns providers in catalog order
	LoadProviders(ctx context.Context) ([]*entities.Provider, error)

	// LoadReviews returns the seed reviews in catalog order
	LoadReviews(ctx context.Context) ([]*entities.Review, error)
}

// CatalogReader provides read access to the loaded provider set
type CatalogReader interface {
	// All returns every provider in catalog order
	All() []*entities.Provider

	// GetByID retrieves a provider by ID. Implementations return a copy.
	GetByID(id string) (*entities.Provider, bool)
}
