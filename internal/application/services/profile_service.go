package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	apperrors "github.com/athul0622-dotcom/local-service/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ProfileService assembles a provider's detail view from the catalog and the
// review log. Nothing is cached: every call reads the current review set.
type ProfileService struct {
	catalog repositories.CatalogReader
	reviews repositories.ReviewRepository
	rating  RatingPolicy
}

// NewProfileService creates a new profile service. A nil policy means the
// stored catalog rating is used.
func NewProfileService(catalog repositories.CatalogReader, reviews repositories.ReviewRepository, rating RatingPolicy) *ProfileService {
	if rating == nil {
		rating = StoredRatingPolicy
	}
	return &ProfileService{
		catalog: catalog,
		reviews: reviews,
		rating:  rating,
	}
}

// GetProfile returns the provider with its reviews and derived rating
func (s *ProfileService) GetProfile(ctx context.Context, providerID string) (*entities.ProfileView, error) {
	ctx, span := observability.StartSpan(ctx, "ProfileService.GetProfile")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("provider.id", providerID))

	provider, ok := s.catalog.GetByID(providerID)
	if !ok {
		err := apperrors.Wrap(apperrors.ErrorTypeNotFound,
			fmt.Sprintf("provider with id %s not found", providerID), entities.ErrProviderNotFound)
		observability.RecordError(span, err)
		return nil, err
	}

	reviews, err := s.reviews.ListByProvider(ctx, providerID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to load reviews", err)
	}

	rating := s.rating(provider, reviews)

	return &entities.ProfileView{
		Provider:      provider,
		Reviews:       reviews,
		ReviewCount:   len(reviews),
		Rating:        rating,
		DisplayRating: displayRating(rating),
		FullStars:     int(math.Floor(rating)),
	}, nil
}

// displayRating formats rating with one decimal, rounding halves up
func displayRating(rating float64) string {
	return strconv.FormatFloat(math.Round(rating*10)/10, 'f', 1, 64)
}

// SortReviewsByRecency returns a copy of reviews ordered newest first.
// Reviews with equal timestamps keep their relative order.
func SortReviewsByRecency(reviews []*entities.Review) []*entities.Review {
	out := make([]*entities.Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
