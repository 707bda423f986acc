package services

import (
	"context"
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

// BookingService hands booking requests to downstream consumers via the event
// bus. Bookings are not stored and do not change provider or review state.
type BookingService struct {
	catalog  repositories.CatalogReader
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(catalog repositories.CatalogReader, eventBus providers.EventBus, metrics *observability.Metrics) *BookingService {
	return &BookingService{
		catalog:  catalog,
		eventBus: eventBus,
		metrics:  metrics,
	}
}

// RequestBooking validates a booking and announces it
func (s *BookingService) RequestBooking(ctx context.Context, booking *entities.Booking) error {
	ctx, span := observability.StartSpan(ctx, "BookingService.RequestBooking")
	defer span.End()

	if booking == nil {
		return apperrors.NewValidationError("booking is required")
	}
	if _, ok := s.catalog.GetByID(booking.ProviderID); !ok {
		return apperrors.Wrap(apperrors.ErrorTypeNotFound,
			fmt.Sprintf("provider with id %s not found", booking.ProviderID), entities.ErrProviderNotFound)
	}

	booking.CustomerName = strings.TrimSpace(booking.CustomerName)
	booking.CustomerPhone = strings.TrimSpace(booking.CustomerPhone)
	if booking.CustomerName == "" {
		return apperrors.NewValidationError("customer name is required")
	}
	if booking.CustomerPhone == "" {
		return apperrors.NewValidationError("customer phone is required")
	}

	booking.ID = uuid.New().String()
	booking.Status = entities.BookingStatusRequested
	booking.CreatedAt = time.Now().UTC()

	observability.RecordBookingMetric(ctx, s.metrics)

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("booking_id", booking.ID).
		Str("provider_id", booking.ProviderID).
		Msg("booking requested")

	if s.eventBus != nil {
		event := entities.NewListingEvent(booking.ProviderID, entities.ListingEventTypeBookingRequested, map[string]interface{}{
			"booking_id":     booking.ID,
			"customer_name":  booking.CustomerName,
			"preferred_date": booking.PreferredDate,
		})
		if err := s.eventBus.Publish(ctx, providers.EventChannelListing, event); err != nil {
			logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}

	return nil
}
