package entities

// ProfileView is a provider combined with its reviews for the detail view
type ProfileView struct {
	Provider      *Provider `json:"provider"`
	Reviews       []*Review `json:"reviews"`
	ReviewCount   int       `json:"review_count"`
	Rating        float64   `json:"rating"`
	DisplayRating string    `json:"display_rating"`
	FullStars     int       `json:"full_stars"`
}
