package services

import (
	"context"
	"fmt"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
)

// ListingEventLogger consumes listing events and writes them to the log
type ListingEventLogger struct {
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
	handled  func(*entities.ListingEvent)
}

// NewListingEventLogger creates a new listing event logger
func NewListingEventLogger(eventBus providers.EventBus) *ListingEventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &ListingEventLogger{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins consuming events
func (l *ListingEventLogger) Start() error {
	eventChan, err := l.eventBus.Subscribe(l.ctx, providers.EventChannelListing)
	if err != nil {
		return fmt.Errorf("failed to subscribe to listing events: %w", err)
	}

	l.started = true
	go l.processEvents(eventChan)
	observability.GetLogger().Info().Msg("listing event logger started")
	return nil
}

// Stop stops consuming events and waits for the consumer to exit
func (l *ListingEventLogger) Stop() {
	l.cancel()
	if l.started {
		<-l.done
	}
	observability.GetLogger().Info().Msg("listing event logger stopped")
}

func (l *ListingEventLogger) processEvents(eventChan <-chan *entities.ListingEvent) {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			observability.GetLogger().Info().
				Str("event_id", event.ID).
				Str("event_type", string(event.Type)).
				Str("provider_id", event.ProviderID).
				Interface("payload", event.Payload).
				Msg("listing event")
			if l.handled != nil {
				l.handled(event)
			}
		}
	}
}
