package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/prompts"
)

// Captions is the generated text for a meme's slots. A slot the template
// does not have is left empty.
type Captions struct {
	TopText    string `json:"topText"`
	BottomText string `json:"bottomText"`
}

// CaptionGenerator produces captions for a prompt and template. It asks the
// LLM for a JSON caption pair and falls back to rule-based generation when
// the LLM is unavailable or returns something unparseable.
type CaptionGenerator struct {
	llm    *llmClient
	logger *logger.Logger
}

// NewCaptionGenerator creates a caption generator.
func NewCaptionGenerator(cfg *LLMConfig, log *logger.Logger) *CaptionGenerator {
	return &CaptionGenerator{
		llm:    newLLMClient(cfg),
		logger: log,
	}
}

// log returns the logger from context, or the service logger.
func (g *CaptionGenerator) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return g.logger
}

// Generate returns captions for the prompt on the given template. It never
// fails: any LLM problem degrades to the rule-based fallback.
// Parameters:
//   - ctx: request context.
//   - prompt: the meme idea.
//   - template: the selected template.
// Returns:
//   - Captions: caption text for the template's slots.
func (g *CaptionGenerator) Generate(ctx context.Context, prompt string, template *domain.MemeTemplate) Captions {
	if !g.llm.IsEnabled() {
		return FallbackCaptions(prompt, template)
	}

	content, err := g.llm.Complete(ctx,
		prompts.CaptionSystemPrompt,
		prompts.CaptionUserPrompt(prompt, template),
		100, 0.8)
	if err != nil {
		g.log(ctx).WithError(err).Warn("Caption LLM call failed, using fallback")
		return FallbackCaptions(prompt, template)
	}

	captions, err := parseCaptions(content)
	if err != nil {
		g.log(ctx).WithError(err).Warn("Caption LLM response unparseable, using fallback")
		return FallbackCaptions(prompt, template)
	}
	return clampToSlots(captions, template)
}

// parseCaptions extracts the caption JSON object from an LLM completion.
func parseCaptions(content string) (Captions, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return Captions{}, err
	}

	var captions Captions
	if err := json.Unmarshal([]byte(jsonStr), &captions); err != nil {
		return Captions{}, err
	}
	return captions, nil
}

// clampToSlots blanks caption text for slots the template does not have.
func clampToSlots(c Captions, template *domain.MemeTemplate) Captions {
	if !template.HasSlot(domain.SlotTop) {
		c.TopText = ""
	}
	if !template.HasSlot(domain.SlotBottom) {
		c.BottomText = ""
	}
	return c
}

// FallbackCaptions is the rule-based caption path. Well-known templates get
// their established joke structure; everything else splits the prompt
// across the available slots.
func FallbackCaptions(prompt string, template *domain.MemeTemplate) Captions {
	switch template.ID {
	case "drake":
		return Captions{TopText: "The old way", BottomText: prompt}

	case "distracted-boyfriend":
		parts := strings.Split(prompt, " vs ")
		if len(parts) > 1 {
			return Captions{TopText: parts[1], BottomText: parts[0]}
		}
		return Captions{TopText: "The new thing", BottomText: "What I should be focusing on"}

	case "success-kid":
		return Captions{BottomText: strings.ToUpper(prompt)}

	case "surprised-pikachu":
		return Captions{TopText: prompt}

	case "change-my-mind":
		return Captions{BottomText: prompt}
	}

	hasTop := template.HasSlot(domain.SlotTop)
	hasBottom := template.HasSlot(domain.SlotBottom)

	switch {
	case hasTop && hasBottom:
		// Single-space split: consecutive spaces count as empty words
		// rather than collapsing, so the halves keep their spacing.
		words := strings.Split(prompt, " ")
		mid := int(math.Ceil(float64(len(words)) / 2))
		return Captions{
			TopText:    strings.Join(words[:mid], " "),
			BottomText: strings.Join(words[mid:], " "),
		}
	case hasTop:
		return Captions{TopText: prompt}
	case hasBottom:
		return Captions{BottomText: prompt}
	default:
		return Captions{}
	}
}
