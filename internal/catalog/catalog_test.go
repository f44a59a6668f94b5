package catalog

import (
	"strings"
	"testing"

	"github.com/timmy/memeforge/internal/domain"
)

func testTemplates() []domain.MemeTemplate {
	return []domain.MemeTemplate{
		{ID: "a", Name: "A", Categories: []string{"Programming", "Work"}},
		{ID: "b", Name: "B", Categories: []string{"Work"}},
		{ID: "c", Name: "C", Categories: []string{"Life"}},
	}
}

func TestDefaultCatalogIsWellFormed(t *testing.T) {
	c := New()
	if c.Size() == 0 {
		t.Fatal("default catalog is empty")
	}
	seen := make(map[string]bool, c.Size())
	for _, tpl := range c.All() {
		if tpl.ID == "" || tpl.Name == "" {
			t.Errorf("template with empty id or name: %+v", tpl)
		}
		if seen[tpl.ID] {
			t.Errorf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		if !strings.HasPrefix(tpl.ImageURL, "https://") {
			t.Errorf("template %q: image URL %q is not https", tpl.ID, tpl.ImageURL)
		}
		if len(tpl.Categories) == 0 {
			t.Errorf("template %q has no categories", tpl.ID)
		}
		if len(tpl.TextSlots) == 0 {
			t.Errorf("template %q has no text slots", tpl.ID)
		}
	}
}

func TestByID(t *testing.T) {
	c := NewWithTemplates(testTemplates())
	if got := c.ByID("b"); got == nil || got.Name != "B" {
		t.Fatalf("ByID(b) = %+v, want template B", got)
	}
	if got := c.ByID("missing"); got != nil {
		t.Fatalf("ByID(missing) = %+v, want nil", got)
	}
}

func TestByCategory(t *testing.T) {
	c := NewWithTemplates(testTemplates())

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{"exact match", "Work", []string{"a", "b"}},
		{"case insensitive", "work", []string{"a", "b"}},
		{"single match", "Life", []string{"c"}},
		{"empty falls back to all", "", []string{"a", "b", "c"}},
		{"wildcard falls back to all", CategoryAll, []string{"a", "b", "c"}},
		{"no match falls back to all", "Sports", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ByCategory(tt.category)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ByCategory(%q) returned %d templates, want %d", tt.category, len(got), len(tt.wantIDs))
			}
			for i, tpl := range got {
				if tpl.ID != tt.wantIDs[i] {
					t.Errorf("ByCategory(%q)[%d] = %q, want %q", tt.category, i, tpl.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestCategories(t *testing.T) {
	c := NewWithTemplates(testTemplates())
	got := c.Categories()
	want := []string{"Programming", "Work", "Life"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
