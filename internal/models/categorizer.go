package models

// CategoryConfig is one category and the keywords that identify it.
type CategoryConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// CategoriesConfig represents a categories file with a top-level "categories" key.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryMap is the ordered list of categories used for keyword matching.
// Order is the matching order.
type CategoryMap []CategoryConfig

// Names returns the category names in matching order.
func (m CategoryMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, c := range m {
		names = append(names, c.Name)
	}
	return names
}

// KeywordCount returns the total number of keywords across all categories.
func (m CategoryMap) KeywordCount() int {
	n := 0
	for _, c := range m {
		n += len(c.Keywords)
	}
	return n
}
