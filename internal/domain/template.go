package domain

import "strings"

// SlotName identifies a caption slot on a meme template.
// Values include SlotTop and SlotBottom.
type SlotName string

const (
	SlotTop    SlotName = "top"
	SlotBottom SlotName = "bottom"
)

// TextSlot describes where a caption is drawn on a template image.
type TextSlot struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	MaxWidth int `json:"max_width"`
}

// MemeTemplate represents one entry of the static template catalog.
// Templates are immutable and defined at build time; they are never
// persisted to the database.
// Invariant: every template has at least one text slot.
type MemeTemplate struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	ImageURL   string                `json:"image_url"`
	Categories []string              `json:"categories"`
	TextSlots  map[SlotName]TextSlot `json:"text_slots"`
}

// HasSlot reports whether the template defines the given caption slot.
// Parameters:
//   - slot: slot name to check.
// Returns:
//   - bool: true if the slot exists.
func (t *MemeTemplate) HasSlot(slot SlotName) bool {
	_, ok := t.TextSlots[slot]
	return ok
}

// HasCategory reports whether the template carries the given category tag.
// Matching ignores case.
func (t *MemeTemplate) HasCategory(category string) bool {
	for _, c := range t.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}
