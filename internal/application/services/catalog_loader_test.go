package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	providers []*entities.Provider
	reviews   []*entities.Review
	failures  int
	err       error
	calls     int
}

func (s *stubSource) LoadProviders(ctx context.Context) ([]*entities.Provider, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return s.providers, nil
}

func (s *stubSource) LoadReviews(ctx context.Context) ([]*entities.Review, error) {
	return s.reviews, nil
}

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("loads providers and reviews", func(t *testing.T) {
		source := &stubSource{providers: testProviders(), reviews: testReviews()}

		catalog, err := services.LoadCatalog(ctx, source, fastRetry())
		require.NoError(t, err)
		assert.Len(t, catalog.Providers, 3)
		assert.Len(t, catalog.Reviews, 2)
	})

	t.Run("drops reviews for unknown providers", func(t *testing.T) {
		reviews := append(testReviews(), &entities.Review{ID: "orphan", ProviderID: "404", Rating: 3})
		source := &stubSource{providers: testProviders(), reviews: reviews}

		catalog, err := services.LoadCatalog(ctx, source, fastRetry())
		require.NoError(t, err)
		require.Len(t, catalog.Reviews, 2)
		for _, r := range catalog.Reviews {
			assert.NotEqual(t, "orphan", r.ID)
		}
	})

	t.Run("rejects duplicate provider ids", func(t *testing.T) {
		providers := append(testProviders(), &entities.Provider{ID: "1", Name: "Dup"})
		_, err := services.LoadCatalog(ctx, &stubSource{providers: providers}, fastRetry())
		assert.Error(t, err)
	})

	t.Run("rejects ratings outside range", func(t *testing.T) {
		providers := []*entities.Provider{{ID: "x", Rating: 5.1}}
		_, err := services.LoadCatalog(ctx, &stubSource{providers: providers}, fastRetry())
		assert.Error(t, err)
	})

	t.Run("rejects NaN ratings", func(t *testing.T) {
		providers := []*entities.Provider{{ID: "a", Rating: math.NaN()}}
		_, err := services.LoadCatalog(ctx, &stubSource{providers: providers}, fastRetry())
		assert.Error(t, err)
	})

	t.Run("skips nil entries", func(t *testing.T) {
		providers := append([]*entities.Provider{nil}, testProviders()...)
		reviews := append(testReviews(), nil)

		catalog, err := services.LoadCatalog(ctx, &stubSource{providers: providers, reviews: reviews}, fastRetry())
		require.NoError(t, err)
		assert.Len(t, catalog.Providers, 3)
		assert.Len(t, catalog.Reviews, 2)
		for _, p := range catalog.Providers {
			assert.NotNil(t, p)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		source := &stubSource{providers: testProviders(), failures: 2, err: errors.New("connection reset")}

		catalog, err := services.LoadCatalog(ctx, source, fastRetry())
		require.NoError(t, err)
		assert.Len(t, catalog.Providers, 3)
		assert.Equal(t, 3, source.calls)
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		source := &stubSource{failures: 5, err: retry.Permanent(errors.New("schema violation"))}

		_, err := services.LoadCatalog(ctx, source, fastRetry())
		require.Error(t, err)
		assert.Equal(t, 1, source.calls)
	})
}
