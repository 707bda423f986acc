package entities

// Category is a browseable service category
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DefaultCategories returns the categories offered on the landing page.
// Category names map to provider professions.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Plumber", Slug: "plumber"},
		{Name: "Electrician", Slug: "electrician"},
		{Name: "Carpenter", Slug: "carpenter"},
		{Name: "Cleaner", Slug: "cleaner"},
		{Name: "Painter", Slug: "painter"},
		{Name: "Home Repair", Slug: "home-repair"},
	}
}
