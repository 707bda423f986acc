package handlers

import (
	"context"
	"net/http"

	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// ListingQuery defines the listing operations used by the handler
type ListingQuery interface {
	Search(ctx context.Context, state entities.QueryState) []*entities.Provider
	Locations() []string
}

// ProfileReader defines the profile operation used by the handler
type ProfileReader interface {
	GetProfile(ctx context.Context, providerID string) (*entities.ProfileView, error)
}

// ProviderHandler serves the listing, location filter and profile views
type ProviderHandler struct {
	listing  ListingQuery
	profiles ProfileReader
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(listing ListingQuery, profiles ProfileReader) *ProviderHandler {
	return &ProviderHandler{
		listing:  listing,
		profiles: profiles,
	}
}

// ListProviders handles GET /api/providers
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := entities.QueryState{
		SearchText: query.Get("q"),
		Category:   query.Get("category"),
		Location:   query.Get("location"),
		SortBy:     entities.ParseSortBy(query.Get("sort")),
	}

	providers := h.listing.Search(r.Context(), state)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
		"query":     state,
	})
}

// ListLocations handles GET /api/providers/locations
func (h *ProviderHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"locations": h.listing.Locations(),
	})
}

// GetProvider handles GET /api/providers/{id}. Reviews are returned newest
// first.
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	view, err := h.profiles.GetProfile(r.Context(), providerID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	view.Reviews = services.SortReviewsByRecency(view.Reviews)
	respondWithJSON(w, http.StatusOK, view)
}

// ListCategories handles GET /api/categories
func ListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": entities.DefaultCategories(),
	})
}
