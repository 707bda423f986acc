package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanBus struct {
	ch  chan *entities.ListingEvent
	err error
}

func (b *chanBus) Publish(ctx context.Context, channel string, event *entities.ListingEvent) error {
	b.ch <- event
	return nil
}

func (b *chanBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ListingEvent, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.ch, nil
}

func (b *chanBus) Close() error { return nil }

func TestListingEventLogger_HandlesEvents(t *testing.T) {
	bus := &chanBus{ch: make(chan *entities.ListingEvent, 4)}
	logger := NewListingEventLogger(bus)

	handled := make(chan *entities.ListingEvent, 4)
	logger.handled = func(e *entities.ListingEvent) { handled <- e }

	require.NoError(t, logger.Start())
	defer logger.Stop()

	event := entities.NewListingEvent("1", entities.ListingEventTypeReviewSubmitted, map[string]interface{}{"rating": 5})
	require.NoError(t, bus.Publish(context.Background(), "listing:events", event))

	select {
	case got := <-handled:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("event was not handled")
	}
}

func TestListingEventLogger_StopsWhenChannelCloses(t *testing.T) {
	bus := &chanBus{ch: make(chan *entities.ListingEvent)}
	logger := NewListingEventLogger(bus)
	require.NoError(t, logger.Start())

	close(bus.ch)

	select {
	case <-logger.done:
	case <-time.After(time.Second):
		t.Fatal("logger did not exit")
	}
	logger.Stop()
}

func TestListingEventLogger_SubscribeError(t *testing.T) {
	logger := NewListingEventLogger(&chanBus{err: errors.New("no redis")})
	assert.Error(t, logger.Start())
	logger.Stop()
}
