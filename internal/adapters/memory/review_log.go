package memory

import (
	"context"
	"sync"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	apperrors "github.com/athul0622-dotcom/local-service/pkg/errors"
)

// ReviewLog is the session's append-only review collection
type ReviewLog struct {
	mu      sync.RWMutex
	reviews []*entities.Review
	ids     map[string]struct{}
}

// NewReviewLog creates a log seeded with the catalog's reviews
func NewReviewLog(seed []*entities.Review) (*ReviewLog, error) {
	l := &ReviewLog{
		reviews: make([]*entities.Review, 0, len(seed)),
		ids:     make(map[string]struct{}, len(seed)),
	}
	for _, r := range seed {
		if err := l.Append(context.Background(), r); err != nil {
			return nil, err
		}
	}
	return l, nil
}

var _ repositories.ReviewRepository = (*ReviewLog)(nil)

// Append adds a review to the log. A review whose id is already present is
// rejected and the log is left unchanged.
func (l *ReviewLog) Append(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewValidationError("review is nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.ids[review.ID]; exists {
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "review "+review.ID+" already exists", entities.ErrDuplicateReviewID)
	}

	stored := *review
	l.reviews = append(l.reviews, &stored)
	l.ids[review.ID] = struct{}{}
	return nil
}

// ListByProvider returns copies of a provider's reviews in append order
func (l *ReviewLog) ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*entities.Review, 0)
	for _, r := range l.reviews {
		if r.ProviderID == providerID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

// Exists checks whether a review id is already in the log
func (l *ReviewLog) Exists(ctx context.Context, id string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.ids[id]
	return ok, nil
}

// Count returns the total number of reviews
func (l *ReviewLog) Count(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.reviews), nil
}
