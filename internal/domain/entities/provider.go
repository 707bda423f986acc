package entities

import "strings"

// Provider represents a local service provider listed in the catalog
type Provider struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	Profession      string   `json:"profession" db:"profession"`
	Location        string   `json:"location" db:"location"`
	Phone           string   `json:"phone" db:"phone"`
	Email           *string  `json:"email" db:"email"`
	Rating          float64  `json:"rating" db:"rating"`
	Skills          []string `json:"skills" db:"-"`
	Availability    string   `json:"availability" db:"availability"`
	PhotoURL        *string  `json:"photo_url" db:"photo_url"`
	Description     string   `json:"description" db:"description"`
	ExperienceYears int      `json:"experience_years" db:"experience_years"`
}

const (
	MinProviderRating = 0.0
	MaxProviderRating = 5.0
)

// HasSkill reports whether any skill contains term, ignoring case
func (p *Provider) HasSkill(term string) bool {
	term = strings.ToLower(term)
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the provider
func (p *Provider) Clone() *Provider {
	if p == nil {
		return nil
	}
	c := *p
	if p.Email != nil {
		email := *p.Email
		c.Email = &email
	}
	if p.PhotoURL != nil {
		photoURL := *p.PhotoURL
		c.PhotoURL = &photoURL
	}
	if p.Skills != nil {
		c.Skills = append([]string(nil), p.Skills...)
	}
	return &c
}
