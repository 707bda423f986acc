package services_test

import (
	"context"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/adapters/memory"
	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.ListingEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ListingEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.ListingEvent), args.Error(1)
}

func (m *MockEventBus) Close() error {
	return nil
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Append(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Fixtures

func testProviders() []*entities.Provider {
	return []*entities.Provider{
		{ID: "1", Name: "Manoj Kumar", Profession: "Plumber", Location: "Delhi", Phone: "+91 1", Rating: 4.5, Skills: []string{"Leak Repair"}},
		{ID: "2", Name: "Priya Sharma", Profession: "Electrician", Location: "Mumbai", Phone: "+91 2", Rating: 4.8, Skills: []string{"Wiring"}},
		{ID: "3", Name: "Asha Patil", Profession: "Plumber", Location: "Mumbai", Phone: "+91 3", Rating: 4.2},
	}
}

func testReviews() []*entities.Review {
	return []*entities.Review{
		{ID: "rev1", ProviderID: "1", CustomerName: "Rahul S.", Rating: 5, Comment: "Excellent", CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{ID: "rev2", ProviderID: "2", CustomerName: "Deepa K.", Rating: 4, Comment: "Great", CreatedAt: time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)},
	}
}

func newStores() (*memory.CatalogStore, *memory.ReviewLog) {
	catalog, err := memory.NewCatalogStore(testProviders())
	if err != nil {
		panic(err)
	}
	reviews, err := memory.NewReviewLog(testReviews())
	if err != nil {
		panic(err)
	}
	return catalog, reviews
}
