package services

import (
	"fmt"
	"math"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// RatingPolicy derives the display rating for a provider from its record and reviews
type RatingPolicy func(provider *entities.Provider, reviews []*entities.Review) float64

const (
	RatingPolicyStored = "stored"
	RatingPolicyMean   = "mean"
)

// StoredRatingPolicy uses the catalog's rating field. Reviews do not affect it.
func StoredRatingPolicy(provider *entities.Provider, _ []*entities.Review) float64 {
	return clampRating(provider.Rating)
}

// MeanReviewRatingPolicy averages review ratings, falling back to the stored
// rating when the provider has no reviews.
func MeanReviewRatingPolicy(provider *entities.Provider, reviews []*entities.Review) float64 {
	if len(reviews) == 0 {
		return clampRating(provider.Rating)
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return clampRating(math.Round(mean*10) / 10)
}

// RatingPolicyByName resolves a configured policy name
func RatingPolicyByName(name string) (RatingPolicy, error) {
	switch name {
	case "", RatingPolicyStored:
		return StoredRatingPolicy, nil
	case RatingPolicyMean:
		return MeanReviewRatingPolicy, nil
	default:
		return nil, fmt.Errorf("unknown rating policy %q", name)
	}
}

func clampRating(v float64) float64 {
	return math.Max(entities.MinProviderRating, math.Min(entities.MaxProviderRating, v))
}
