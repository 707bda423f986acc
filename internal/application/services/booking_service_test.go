package services_test

import (
	"context"
	"testing"

	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	apperrors "github.com/athul0622-dotcom/local-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingService_RequestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts and announces a booking", func(t *testing.T) {
		catalog, reviews := newStores()
		bus := new(MockEventBus)
		bus.On("Publish", mock.Anything, providers.EventChannelListing, mock.MatchedBy(func(e *entities.ListingEvent) bool {
			return e.Type == entities.ListingEventTypeBookingRequested && e.ProviderID == "2"
		})).Return(nil).Once()

		service := services.NewBookingService(catalog, bus, nil)
		booking := &entities.Booking{ProviderID: "2", CustomerName: "Meera", CustomerPhone: "+91 7", PreferredDate: "2024-02-01"}

		require.NoError(t, service.RequestBooking(ctx, booking))
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, entities.BookingStatusRequested, booking.Status)
		bus.AssertExpectations(t)

		count, _ := reviews.Count(ctx)
		assert.Equal(t, 2, count)
	})

	t.Run("works without an event bus", func(t *testing.T) {
		catalog, _ := newStores()
		service := services.NewBookingService(catalog, nil, nil)
		assert.NoError(t, service.RequestBooking(ctx, &entities.Booking{ProviderID: "1", CustomerName: "A", CustomerPhone: "1"}))
	})

	t.Run("unknown provider", func(t *testing.T) {
		catalog, _ := newStores()
		service := services.NewBookingService(catalog, nil, nil)

		err := service.RequestBooking(ctx, &entities.Booking{ProviderID: "nope", CustomerName: "A", CustomerPhone: "1"})
		assert.ErrorIs(t, err, entities.ErrProviderNotFound)
	})

	t.Run("missing contact details", func(t *testing.T) {
		catalog, _ := newStores()
		service := services.NewBookingService(catalog, nil, nil)

		err := service.RequestBooking(ctx, &entities.Booking{ProviderID: "1", CustomerName: "A"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		err = service.RequestBooking(ctx, &entities.Booking{ProviderID: "1", CustomerPhone: "1"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		err = service.RequestBooking(ctx, nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
