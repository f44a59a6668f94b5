package prompts

import (
	"fmt"
	"strings"

	"github.com/timmy/memeforge/internal/domain"
)

// ============================================================================
// Template Selection Prompts (LLM)
// ============================================================================

// TemplateSelectionSystemPrompt instructs the model to pick one template ID
// from a candidate list. Output must be a bare template ID with no
// explanation, so the response can be matched against the catalog directly.
const TemplateSelectionSystemPrompt = `You are a meme template selection assistant. Given a user's meme idea and a list of candidate templates, pick the single template that best fits the idea.

Rules:
- Respond with ONLY the template id, exactly as listed. No quotes, no explanation, no punctuation.
- Prefer templates whose typical usage matches the idea's emotional tone (comparison, surprise, frustration, success, opinion).
- If nothing fits well, pick the closest general-purpose template.`

// TemplateSelectionUserPrompt renders the selection request for one prompt
// against a candidate set.
func TemplateSelectionUserPrompt(prompt string, candidates []domain.MemeTemplate) string {
	var b strings.Builder
	b.WriteString("Meme idea: ")
	b.WriteString(prompt)
	b.WriteString("\n\nCandidate templates:\n")
	for _, t := range candidates {
		fmt.Fprintf(&b, "- %s: %s (categories: %s)\n", t.ID, t.Name, strings.Join(t.Categories, ", "))
	}
	b.WriteString("\nBest template id:")
	return b.String()
}

// ============================================================================
// Caption Generation Prompts (LLM)
// ============================================================================

// CaptionSystemPrompt defines the role and output contract for caption
// generation.
//
// Output format: a single JSON object, no markdown fences:
//
//	{"topText": "...", "bottomText": "..."}
//
// A template may only have one slot; the unused field is the empty string.
const CaptionSystemPrompt = `You are a meme caption writer. Given a meme idea and a template, write captions for the template's text slots.

Output format:
Respond with exactly one JSON object and nothing else (no markdown code block):
{"topText": "...", "bottomText": "..."}

Rules:
- Keep each caption short and punchy, at most 10 words.
- Match the template's established joke structure (e.g. Drake rejects the top, approves the bottom; Surprised Pikachu reacts to an obvious outcome).
- If the template only has one text slot, set the other field to an empty string.
- Plain text only. No hashtags, no emoji.`

// CaptionUserPrompt renders the caption request for one prompt and template.
func CaptionUserPrompt(prompt string, template *domain.MemeTemplate) string {
	slots := make([]string, 0, len(template.TextSlots))
	for _, name := range []domain.SlotName{domain.SlotTop, domain.SlotBottom} {
		if template.HasSlot(name) {
			slots = append(slots, string(name))
		}
	}
	return fmt.Sprintf("Meme idea: %s\nTemplate: %s (%s)\nAvailable slots: %s\n\nCaptions:",
		prompt, template.Name, template.ID, strings.Join(slots, ", "))
}
