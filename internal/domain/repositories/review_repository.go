package repositories

import (
	"context"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// ReviewRepository is an append-only log of reviews.
// There are no update or delete operations.
type ReviewRepository interface {
	// Append adds a review to the log
	Append(ctx context.Context, review *entities.Review) error

	// ListByProvider returns a provider's reviews in append order
	ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error)

	// Exists checks whether a review id is already in the log
	Exists(ctx context.Context, id string) (bool, error)

	// Count returns the total number of reviews
	Count(ctx context.Context) (int, error)
}
