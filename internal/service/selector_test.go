package service

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
)

func testTemplate(id string, categories ...string) domain.MemeTemplate {
	return domain.MemeTemplate{
		ID:         id,
		Name:       id,
		ImageURL:   "https://example.com/" + id + ".jpg",
		Categories: categories,
		TextSlots: map[domain.SlotName]domain.TextSlot{
			domain.SlotTop:    {X: 250, Y: 50, MaxWidth: 400},
			domain.SlotBottom: {X: 250, Y: 350, MaxWidth: 400},
		},
	}
}

func newTestSelector(templates []domain.MemeTemplate, seed int64) *TemplateSelector {
	cat := catalog.NewWithTemplates(templates)
	return NewTemplateSelector(cat, nil, rand.New(rand.NewSource(seed)), logger.NewDefault())
}

func TestTemplateSelector_FallbackKeywords(t *testing.T) {
	templates := []domain.MemeTemplate{
		testTemplate("drake", "Classic"),
		testTemplate("success-kid", "Reaction"),
		testTemplate("distracted-boyfriend", "Classic"),
	}
	selector := newTestSelector(templates, 1)

	tests := []struct {
		name       string
		prompt     string
		expectedID string
	}{
		{"success keyword", "when my success story finally lands", "success-kid"},
		{"win keyword", "big win today", "success-kid"},
		{"choose keyword", "hard to choose between them", "drake"},
		{"better keyword", "this one is better", "drake"},
		{"relationship keyword", "my relationship with deadlines", "distracted-boyfriend"},
		{"distracted keyword", "getting distracted again", "distracted-boyfriend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := selector.Select(context.Background(), tt.prompt, "", NewBatchState())
			if selected == nil {
				t.Fatal("expected a selection")
			}
			if selected.ID != tt.expectedID {
				t.Errorf("expected template %q, got %q", tt.expectedID, selected.ID)
			}
		})
	}
}

// An LLM completion naming a template outside the candidate set falls back
// to a uniform-random pick; the keyword table is only for the error path,
// so a keyword-bearing prompt must not pin the selection.
func TestTemplateSelector_UnknownLLMIDFallsBackToRandom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"not-a-real-template"}}]}`))
	}))
	defer server.Close()

	templates := []domain.MemeTemplate{
		testTemplate("drake"),
		testTemplate("success-kid"),
		testTemplate("distracted-boyfriend"),
		testTemplate("surprised-pikachu"),
		testTemplate("change-my-mind"),
	}
	cat := catalog.NewWithTemplates(templates)
	cfg := &LLMConfig{Enabled: true, APIKey: "test-key", Model: "test", BaseURL: server.URL}

	picked := make(map[string]int)
	for seed := int64(0); seed < 20; seed++ {
		selector := NewTemplateSelector(cat, cfg, rand.New(rand.NewSource(seed)), logger.NewDefault())
		selected := selector.Select(context.Background(), "my success story", "", NewBatchState())
		if selected == nil {
			t.Fatal("expected a selection")
		}
		picked[selected.ID]++
	}

	if len(picked) < 2 {
		t.Errorf("expected the unknown-id path to vary across seeds, always picked %v", picked)
	}
}

func TestTemplateSelector_RandomFallbackStaysInCandidates(t *testing.T) {
	templates := []domain.MemeTemplate{
		testTemplate("a", "One"),
		testTemplate("b", "Two"),
		testTemplate("c", "Two"),
	}
	selector := newTestSelector(templates, 42)

	for i := 0; i < 20; i++ {
		selected := selector.Select(context.Background(), "no keyword here", "Two", NewBatchState())
		if selected == nil {
			t.Fatal("expected a selection")
		}
		if selected.ID != "b" && selected.ID != "c" {
			t.Errorf("selection %q outside the category candidates", selected.ID)
		}
	}
}

// A batch of K generations over a catalog of K templates must produce K
// distinct templates; the K+1-th generation reuses one.
func TestTemplateSelector_BatchDistinctness(t *testing.T) {
	templates := []domain.MemeTemplate{
		testTemplate("a"),
		testTemplate("b"),
		testTemplate("c"),
		testTemplate("d"),
	}
	selector := newTestSelector(templates, 7)
	state := NewBatchState()

	seen := make(map[string]bool)
	for i := 0; i < len(templates); i++ {
		selected := selector.SelectAt(context.Background(), "anything", "", i, state)
		if selected == nil {
			t.Fatalf("expected a selection at index %d", i)
		}
		if seen[selected.ID] {
			t.Errorf("template %q repeated within the batch at index %d", selected.ID, i)
		}
		seen[selected.ID] = true
	}
	if len(seen) != len(templates) {
		t.Fatalf("expected %d distinct templates, got %d", len(templates), len(seen))
	}

	extra := selector.SelectAt(context.Background(), "anything", "", len(templates), state)
	if extra == nil {
		t.Fatal("expected a selection past the catalog size")
	}
	if !seen[extra.ID] {
		t.Errorf("expected the extra selection to reuse a template, got new %q", extra.ID)
	}
}

// SelectAt is a pure function of the batch state and index: fresh states
// with the same indices always give the same sequence.
func TestTemplateSelector_SelectAtDeterministic(t *testing.T) {
	templates := []domain.MemeTemplate{
		testTemplate("a"),
		testTemplate("b"),
		testTemplate("c"),
	}
	selector := newTestSelector(templates, 99)

	run := func() []string {
		state := NewBatchState()
		var ids []string
		for i := 0; i < len(templates); i++ {
			ids = append(ids, selector.SelectAt(context.Background(), "prompt", "", i, state).ID)
		}
		return ids
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("index %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestBatchState_ResetAfterExhaustion(t *testing.T) {
	templates := []domain.MemeTemplate{
		testTemplate("a"),
		testTemplate("b"),
	}
	selector := newTestSelector(templates, 3)
	state := NewBatchState()

	state.MarkUsed("a")
	state.MarkUsed("b")

	// Every candidate is used and the used set covers the whole catalog,
	// so the selector clears it and selection keeps working.
	selected := selector.Select(context.Background(), "anything", "", state)
	if selected == nil {
		t.Fatal("expected a selection after exhaustion")
	}
	if state.UsedCount() != 1 {
		t.Errorf("expected used set to be reset then repopulated, got %d entries", state.UsedCount())
	}
}
