package catalog

import (
	"github.com/timmy/memeforge/internal/domain"
)

// CategoryAll is the wildcard category: filtering by it returns the full
// catalog.
const CategoryAll = "All"

// Catalog is the static registry of meme templates. Templates are defined
// at build time; there is no mutation API.
type Catalog struct {
	templates []domain.MemeTemplate
	byID      map[string]*domain.MemeTemplate
}

// New returns the default catalog.
// Parameters: none.
// Returns:
//   - *Catalog: catalog backed by the built-in template set.
func New() *Catalog {
	return NewWithTemplates(defaultTemplates)
}

// NewWithTemplates builds a catalog from an explicit template list.
// Intended for tests that need a small, controlled catalog.
func NewWithTemplates(templates []domain.MemeTemplate) *Catalog {
	byID := make(map[string]*domain.MemeTemplate, len(templates))
	for i := range templates {
		byID[templates[i].ID] = &templates[i]
	}
	return &Catalog{templates: templates, byID: byID}
}

// All returns every template in catalog order.
func (c *Catalog) All() []domain.MemeTemplate {
	return c.templates
}

// Size returns the number of templates in the catalog.
func (c *Catalog) Size() int {
	return len(c.templates)
}

// ByID looks up a template by its ID.
// Parameters:
//   - id: template ID.
// Returns:
//   - *domain.MemeTemplate: the template, or nil if unknown.
func (c *Catalog) ByID(id string) *domain.MemeTemplate {
	return c.byID[id]
}

// ByCategory returns templates carrying the given category tag. An empty
// category, CategoryAll, or a filter that matches nothing all fall back to
// the full catalog; category filters never produce a hard failure.
// Parameters:
//   - category: category tag to filter by.
// Returns:
//   - []domain.MemeTemplate: matching templates, or the full catalog.
func (c *Catalog) ByCategory(category string) []domain.MemeTemplate {
	if category == "" || category == CategoryAll {
		return c.templates
	}

	var matched []domain.MemeTemplate
	for _, t := range c.templates {
		if t.HasCategory(category) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return c.templates
	}
	return matched
}

// Categories returns the distinct category tags across the catalog, in
// first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, t := range c.templates {
		for _, cat := range t.Categories {
			if !seen[cat] {
				seen[cat] = true
				categories = append(categories, cat)
			}
		}
	}
	return categories
}
