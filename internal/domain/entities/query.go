package entities

import "strings"

// SortBy selects the ordering of listing results
type SortBy string

const (
	SortByRating SortBy = "rating"
	SortByName   SortBy = "name"
)

// ParseSortBy maps user input to a SortBy, defaulting to rating
func ParseSortBy(value string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(value))) {
	case SortByName:
		return SortByName
	default:
		return SortByRating
	}
}

// QueryState is the user's current combination of search text, category,
// location and sort preference. Empty fields mean "no filter".
type QueryState struct {
	SearchText string `json:"search_text"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	SortBy     SortBy `json:"sort_by"`
}
