package services

import (
	"sort"
	"strings"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// Search filters and orders the catalog for the given query state.
// It is pure: the input slice is never modified and the same inputs always
// produce the same output. All active filters must pass.
func Search(catalog []*entities.Provider, state entities.QueryState) []*entities.Provider {
	category := strings.TrimSpace(state.Category)
	text := strings.ToLower(strings.TrimSpace(state.SearchText))
	location := strings.TrimSpace(state.Location)

	results := make([]*entities.Provider, 0, len(catalog))
	for _, p := range catalog {
		if p == nil {
			continue
		}
		if category != "" && !CategoryMatches(p, category) {
			continue
		}
		if text != "" && !SearchTextMatches(p, text) {
			continue
		}
		if location != "" && !LocationMatches(p, location) {
			continue
		}
		results = append(results, p)
	}

	SortProviders(results, state.SortBy)
	return results
}

// CategoryMatches is the category policy: the category equals the
// profession, or is contained in one of the provider's skills. Both
// comparisons ignore case.
func CategoryMatches(p *entities.Provider, category string) bool {
	if strings.EqualFold(p.Profession, category) {
		return true
	}
	return p.HasSkill(category)
}

// SearchTextMatches reports whether text is a substring of the profession or
// the location, ignoring case. Name and description are not searched.
func SearchTextMatches(p *entities.Provider, text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(strings.ToLower(p.Profession), text) ||
		strings.Contains(strings.ToLower(p.Location), text)
}

// LocationMatches requires an exact location match. Options come from
// DistinctLocations, not free text.
func LocationMatches(p *entities.Provider, location string) bool {
	return p.Location == location
}

// SortProviders orders providers in place. The sort is stable so equal keys
// keep catalog order.
func SortProviders(providers []*entities.Provider, by entities.SortBy) {
	switch by {
	case entities.SortByName:
		sort.SliceStable(providers, func(i, j int) bool {
			return strings.ToLower(providers[i].Name) < strings.ToLower(providers[j].Name)
		})
	default:
		sort.SliceStable(providers, func(i, j int) bool {
			return providers[i].Rating > providers[j].Rating
		})
	}
}

// DistinctLocations returns the unique provider locations in order of first
// occurrence in the catalog.
func DistinctLocations(catalog []*entities.Provider) []string {
	seen := make(map[string]struct{})
	locations := make([]string, 0)
	for _, p := range catalog {
		if p == nil || p.Location == "" {
			continue
		}
		if _, ok := seen[p.Location]; ok {
			continue
		}
		seen[p.Location] = struct{}{}
		locations = append(locations, p.Location)
	}
	return locations
}
