package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	apperrors "github.com/athul0622-dotcom/local-service/pkg/errors"
	"github.com/google/uuid"
)

const (
	maxCustomerNameLength = 200
	maxCommentLength      = 1000
)

// ReviewService appends customer reviews to the session's review log
type ReviewService struct {
	catalog  repositories.CatalogReader
	reviews  repositories.ReviewRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewReviewService creates a new review service
func NewReviewService(catalog repositories.CatalogReader, reviews repositories.ReviewRepository, metrics *observability.Metrics) *ReviewService {
	return &ReviewService{
		catalog: catalog,
		reviews: reviews,
		metrics: metrics,
	}
}

// SetEventBus sets the event bus used to announce new reviews
func (s *ReviewService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// SubmitReview validates and appends a review. On error neither the log nor
// review is changed. On success review holds the stored values, with a missing
// ID or CreatedAt filled in.
func (s *ReviewService) SubmitReview(ctx context.Context, review *entities.Review) error {
	ctx, span := observability.StartSpan(ctx, "ReviewService.SubmitReview")
	defer span.End()

	if review == nil {
		err := apperrors.NewValidationError("review is required")
		observability.RecordReviewMetric(ctx, s.metrics, "rejected")
		observability.RecordError(span, err)
		return err
	}

	candidate := *review
	if err := s.validate(&candidate); err != nil {
		observability.RecordReviewMetric(ctx, s.metrics, "rejected")
		observability.RecordError(span, err)
		return err
	}

	if candidate.ID == "" {
		candidate.ID = uuid.New().String()
	}
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = time.Now().UTC()
	}

	exists, err := s.reviews.Exists(ctx, candidate.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to check review id", err)
	}
	if exists {
		observability.RecordReviewMetric(ctx, s.metrics, "duplicate")
		return apperrors.Wrap(apperrors.ErrorTypeConflict,
			fmt.Sprintf("review %s already exists", candidate.ID), entities.ErrDuplicateReviewID)
	}

	if err := s.reviews.Append(ctx, &candidate); err != nil {
		// a concurrent submission may take the id between Exists and Append
		if errors.Is(err, entities.ErrDuplicateReviewID) {
			observability.RecordReviewMetric(ctx, s.metrics, "duplicate")
		}
		observability.RecordError(span, err)
		return err
	}
	observability.RecordReviewMetric(ctx, s.metrics, "accepted")
	*review = candidate

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("review_id", review.ID).
		Str("provider_id", review.ProviderID).
		Int("rating", review.Rating).
		Msg("review submitted")

	if s.eventBus != nil {
		event := entities.NewListingEvent(review.ProviderID, entities.ListingEventTypeReviewSubmitted, map[string]interface{}{
			"review_id": review.ID,
			"rating":    review.Rating,
		})
		if err := s.eventBus.Publish(ctx, providers.EventChannelListing, event); err != nil {
			logger.Warn().Err(err).Str("review_id", review.ID).Msg("failed to publish review event")
		}
	}

	return nil
}

func (s *ReviewService) validate(review *entities.Review) error {
	if !review.ValidRating() {
		return apperrors.Wrap(apperrors.ErrorTypeValidation,
			fmt.Sprintf("rating must be between %d and %d", entities.MinReviewRating, entities.MaxReviewRating),
			entities.ErrInvalidRating)
	}
	if _, ok := s.catalog.GetByID(review.ProviderID); !ok {
		return apperrors.Wrap(apperrors.ErrorTypeNotFound,
			fmt.Sprintf("provider with id %s not found", review.ProviderID), entities.ErrProviderNotFound)
	}

	review.CustomerName = strings.TrimSpace(review.CustomerName)
	review.Comment = strings.TrimSpace(review.Comment)

	if review.CustomerName == "" {
		return apperrors.NewValidationError("customer name is required")
	}
	if len(review.CustomerName) > maxCustomerNameLength {
		return apperrors.NewValidationError("customer name is too long")
	}
	if len(review.Comment) > maxCommentLength {
		return apperrors.NewValidationError("comment is too long")
	}
	return nil
}
