package entities

import "errors"

var (
	// ErrProviderNotFound is returned when no provider has the requested id
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidRating is returned when a review rating is outside [1,5]
	ErrInvalidRating = errors.New("invalid rating")

	// ErrDuplicateReviewID is returned when a review id is already in the log
	ErrDuplicateReviewID = errors.New("duplicate review id")
)
