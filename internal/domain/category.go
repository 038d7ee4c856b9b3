package domain

// Category is the catalog section a course belongs to.
type Category string

const (
	CategoryProgramming Category = "Programming"
	CategoryDatabase    Category = "Database"
	CategoryNetworking  Category = "Networking"
	CategoryUXUI        Category = "UX/UI"
	CategoryOther       Category = "Other"
)

var categories = []Category{
	CategoryProgramming,
	CategoryDatabase,
	CategoryNetworking,
	CategoryUXUI,
	CategoryOther,
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
