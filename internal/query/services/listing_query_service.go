package services

import (
	"context"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// ListingQueryService runs listing queries against the loaded catalog
type ListingQueryService struct {
	catalog   repositories.CatalogReader
	metrics   *observability.Metrics
	locations []string
}

// NewListingQueryService creates a new listing query service.
// The location list is derived once since the catalog never changes.
func NewListingQueryService(catalog repositories.CatalogReader, metrics *observability.Metrics) *ListingQueryService {
	return &ListingQueryService{
		catalog:   catalog,
		metrics:   metrics,
		locations: DistinctLocations(catalog.All()),
	}
}

// Search returns the providers matching state in display order
func (s *ListingQueryService) Search(ctx context.Context, state entities.QueryState) []*entities.Provider {
	ctx, span := observability.StartSpan(ctx, "ListingQueryService.Search")
	defer span.End()

	if state.SortBy == "" {
		state.SortBy = entities.SortByRating
	}

	results := Search(s.catalog.All(), state)

	observability.SetSpanAttributes(span,
		attribute.String("listing.category", state.Category),
		attribute.String("listing.location", state.Location),
		attribute.String("listing.sort_by", string(state.SortBy)),
		attribute.Int("listing.results", len(results)),
	)
	observability.RecordSearchMetric(ctx, s.metrics, string(state.SortBy), len(results))

	observability.LoggerFromContext(ctx).Debug().
		Str("search_text", state.SearchText).
		Str("category", state.Category).
		Str("location", state.Location).
		Str("sort_by", string(state.SortBy)).
		Int("results", len(results)).
		Msg("listing search")

	return results
}

// Locations returns the distinct catalog locations for the location filter
func (s *ListingQueryService) Locations() []string {
	out := make([]string, len(s.locations))
	copy(out, s.locations)
	return out
}
