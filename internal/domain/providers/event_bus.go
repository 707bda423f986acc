package providers

import (
	"context"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to listing events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ListingEvent) error

	// Subscribe subscribes to events on a channel until ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ListingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelListing is the channel for all listing events
const EventChannelListing = "listing:events"
