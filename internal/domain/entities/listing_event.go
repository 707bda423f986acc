package entities

import (
	"time"

	"github.com/google/uuid"
)

// ListingEventType represents the type of listing event
type ListingEventType string

const (
	ListingEventTypeReviewSubmitted  ListingEventType = "review.submitted"
	ListingEventTypeBookingRequested ListingEventType = "booking.requested"
)

// ListingEvent is published whenever the session state around a provider changes
type ListingEvent struct {
	ID         string                 `json:"id"`
	Type       ListingEventType       `json:"type"`
	ProviderID string                 `json:"provider_id"`
	Timestamp  time.Time              `json:"timestamp"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// NewListingEvent creates a new listing event
func NewListingEvent(providerID string, eventType ListingEventType, payload map[string]interface{}) *ListingEvent {
	return &ListingEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ProviderID: providerID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}
