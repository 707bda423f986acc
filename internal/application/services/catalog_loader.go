package services

import (
	"context"
	"fmt"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	"github.com/athul0622-dotcom/local-service/pkg/retry"
)

// Catalog is the provider and seed review set read at startup
type Catalog struct {
	Providers []*entities.Provider
	Reviews   []*entities.Review
}

// LoadCatalog reads the catalog from source, retrying transient failures.
// Providers must have unique ids and ratings within [0,5]. Nil entries and
// seed reviews that reference an unknown provider are dropped.
func LoadCatalog(ctx context.Context, source repositories.CatalogSource, cfg retry.Config) (*Catalog, error) {
	logger := observability.LoggerFromContext(ctx)

	var providers []*entities.Provider
	err := retry.Do(ctx, cfg, func() error {
		var err error
		providers, err = source.LoadProviders(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}

	var reviews []*entities.Review
	err = retry.Do(ctx, cfg, func() error {
		var err error
		reviews, err = source.LoadReviews(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	known := make(map[string]struct{}, len(providers))
	keptProviders := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		if _, dup := known[p.ID]; dup {
			return nil, fmt.Errorf("duplicate provider id %s", p.ID)
		}
		if !(p.Rating >= entities.MinProviderRating && p.Rating <= entities.MaxProviderRating) {
			return nil, fmt.Errorf("provider %s has rating %v outside [0,5]", p.ID, p.Rating)
		}
		known[p.ID] = struct{}{}
		keptProviders = append(keptProviders, p)
	}

	kept := make([]*entities.Review, 0, len(reviews))
	for _, r := range reviews {
		if r == nil {
			continue
		}
		if _, ok := known[r.ProviderID]; !ok {
			logger.Warn().
				Str("review_id", r.ID).
				Str("provider_id", r.ProviderID).
				Msg("dropping seed review for unknown provider")
			continue
		}
		kept = append(kept, r)
	}

	logger.Info().
		Int("providers", len(keptProviders)).
		Int("reviews", len(kept)).
		Msg("catalog loaded")

	return &Catalog{Providers: keptProviders, Reviews: kept}, nil
}
