package entities

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a customer's review of a provider. Reviews are append-only.
type Review struct {
	ID           string    `json:"id" db:"id"`
	ProviderID   string    `json:"provider_id" db:"provider_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ValidRating reports whether the review rating is within [1,5]
func (r *Review) ValidRating() bool {
	return r.Rating >= MinReviewRating && r.Rating <= MaxReviewRating
}
