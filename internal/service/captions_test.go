package service

import (
	"context"
	"testing"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
)

func TestFallbackCaptions_KnownTemplates(t *testing.T) {
	twoSlot := testTemplate("generic")

	tests := []struct {
		name           string
		templateID     string
		prompt         string
		expectedTop    string
		expectedBottom string
	}{
		{
			name:           "drake contrasts with the prompt",
			templateID:     "drake",
			prompt:         "using the new deploy script",
			expectedTop:    "The old way",
			expectedBottom: "using the new deploy script",
		},
		{
			name:           "distracted boyfriend splits on vs",
			templateID:     "distracted-boyfriend",
			prompt:         "my homework vs a new video game",
			expectedTop:    "a new video game",
			expectedBottom: "my homework",
		},
		{
			name:           "distracted boyfriend without vs uses defaults",
			templateID:     "distracted-boyfriend",
			prompt:         "just one thing",
			expectedTop:    "The new thing",
			expectedBottom: "What I should be focusing on",
		},
		{
			name:           "success kid shouts in uppercase",
			templateID:     "success-kid",
			prompt:         "finally fixed the bug",
			expectedBottom: "FINALLY FIXED THE BUG",
		},
		{
			name:        "surprised pikachu repeats the prompt on top",
			templateID:  "surprised-pikachu",
			prompt:      "tests fail after skipping them",
			expectedTop: "tests fail after skipping them",
		},
		{
			name:           "change my mind uses the bottom slot",
			templateID:     "change-my-mind",
			prompt:         "tabs are fine",
			expectedBottom: "tabs are fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := twoSlot
			template.ID = tt.templateID

			captions := FallbackCaptions(tt.prompt, &template)
			if captions.TopText != tt.expectedTop {
				t.Errorf("expected top %q, got %q", tt.expectedTop, captions.TopText)
			}
			if captions.BottomText != tt.expectedBottom {
				t.Errorf("expected bottom %q, got %q", tt.expectedBottom, captions.BottomText)
			}
		})
	}
}

func TestFallbackCaptions_SplitsPromptAcrossSlots(t *testing.T) {
	template := testTemplate("unknown-template")

	captions := FallbackCaptions("a b c d", &template)
	if captions.TopText != "a b" {
		t.Errorf("expected top %q, got %q", "a b", captions.TopText)
	}
	if captions.BottomText != "c d" {
		t.Errorf("expected bottom %q, got %q", "c d", captions.BottomText)
	}

	// Odd word counts round the split up.
	captions = FallbackCaptions("a b c", &template)
	if captions.TopText != "a b" || captions.BottomText != "c" {
		t.Errorf("unexpected odd split: top=%q bottom=%q", captions.TopText, captions.BottomText)
	}

	// Consecutive spaces count as empty words instead of collapsing.
	captions = FallbackCaptions("a  b c", &template)
	if captions.TopText != "a " || captions.BottomText != "b c" {
		t.Errorf("unexpected multi-space split: top=%q bottom=%q", captions.TopText, captions.BottomText)
	}
}

func TestFallbackCaptions_SingleSlotGetsWholePrompt(t *testing.T) {
	topOnly := domain.MemeTemplate{
		ID:       "top-only",
		Name:     "Top Only",
		ImageURL: "https://example.com/top.jpg",
		TextSlots: map[domain.SlotName]domain.TextSlot{
			domain.SlotTop: {X: 250, Y: 50, MaxWidth: 400},
		},
	}
	captions := FallbackCaptions("one two three", &topOnly)
	if captions.TopText != "one two three" {
		t.Errorf("expected whole prompt on top, got %q", captions.TopText)
	}
	if captions.BottomText != "" {
		t.Errorf("expected empty bottom, got %q", captions.BottomText)
	}

	bottomOnly := domain.MemeTemplate{
		ID:       "bottom-only",
		Name:     "Bottom Only",
		ImageURL: "https://example.com/bottom.jpg",
		TextSlots: map[domain.SlotName]domain.TextSlot{
			domain.SlotBottom: {X: 250, Y: 250, MaxWidth: 400},
		},
	}
	captions = FallbackCaptions("one two three", &bottomOnly)
	if captions.BottomText != "one two three" {
		t.Errorf("expected whole prompt on bottom, got %q", captions.BottomText)
	}
	if captions.TopText != "" {
		t.Errorf("expected empty top, got %q", captions.TopText)
	}
}

// The fallback path is pure: repeated calls with the same input produce
// the same captions, and a disabled generator always takes it.
func TestCaptionGenerator_DisabledUsesFallback(t *testing.T) {
	gen := NewCaptionGenerator(nil, logger.NewDefault())
	template := testTemplate("drake")
	template.ID = "drake"

	first := gen.Generate(context.Background(), "ship it on friday", &template)
	second := gen.Generate(context.Background(), "ship it on friday", &template)

	if first != second {
		t.Errorf("expected deterministic captions, got %+v and %+v", first, second)
	}
	if first.TopText != "The old way" || first.BottomText != "ship it on friday" {
		t.Errorf("unexpected fallback captions: %+v", first)
	}
}
