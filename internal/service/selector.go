package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/prompts"
)

// BatchState tracks template IDs already handed out during a generation
// batch, so a batch of memes does not repeat templates. It is an explicit
// value owned by the caller; concurrent batches each carry their own state.
type BatchState struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewBatchState returns an empty batch state.
func NewBatchState() *BatchState {
	return &BatchState{used: make(map[string]bool)}
}

// Reset clears the used set.
func (s *BatchState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = make(map[string]bool)
}

// MarkUsed records a template as handed out.
func (s *BatchState) MarkUsed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[id] = true
}

// IsUsed reports whether a template was already handed out.
func (s *BatchState) IsUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used[id]
}

// UsedCount returns how many templates have been handed out.
func (s *BatchState) UsedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.used)
}

// fallbackKeywords maps prompt keywords to preferred template IDs, checked
// in order when the LLM is unavailable.
var fallbackKeywords = []struct {
	keyword     string
	templateIDs []string
}{
	{"success", []string{"success-kid"}},
	{"win", []string{"success-kid"}},
	{"choose", []string{"drake"}},
	{"better", []string{"drake"}},
	{"relationship", []string{"distracted-boyfriend"}},
	{"distracted", []string{"distracted-boyfriend"}},
}

// TemplateSelector picks a meme template for a prompt. It asks the LLM to
// classify the prompt against the candidate set. When the LLM call fails or
// is disabled it falls back to keyword matching, then random choice; when
// the LLM answers with an ID outside the candidate set, selection is a
// uniform-random pick over the candidates.
type TemplateSelector struct {
	catalog *catalog.Catalog
	llm     *llmClient
	logger  *logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewTemplateSelector creates a template selector.
// Parameters:
//   - cat: template catalog to select from.
//   - cfg: LLM configuration; nil or disabled means fallback-only selection.
//   - rng: random source for fallback choice; must not be nil.
//   - log: logger.
// Returns:
//   - *TemplateSelector: the selector.
func NewTemplateSelector(cat *catalog.Catalog, cfg *LLMConfig, rng *rand.Rand, log *logger.Logger) *TemplateSelector {
	return &TemplateSelector{
		catalog: cat,
		llm:     newLLMClient(cfg),
		rng:     rng,
		logger:  log,
	}
}

// log returns the logger from context, or the service logger.
func (s *TemplateSelector) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// candidates computes the selectable template set for a category, excluding
// templates the batch already used. When every candidate has been used and
// more than half the full catalog is marked, the used set is cleared.
func (s *TemplateSelector) candidates(category string, state *BatchState) []domain.MemeTemplate {
	available := s.catalog.ByCategory(category)

	unused := make([]domain.MemeTemplate, 0, len(available))
	for _, t := range available {
		if !state.IsUsed(t.ID) {
			unused = append(unused, t)
		}
	}
	if len(unused) > 0 {
		return unused
	}

	if state.UsedCount()*2 >= s.catalog.Size() {
		state.Reset()
	}
	return available
}

// Select picks a template for the prompt, preferring the LLM's choice.
// Parameters:
//   - ctx: request context.
//   - prompt: the meme idea.
//   - category: optional category filter.
//   - state: batch used-template state.
// Returns:
//   - *domain.MemeTemplate: the selected template; never nil for a
//     non-empty catalog.
func (s *TemplateSelector) Select(ctx context.Context, prompt, category string, state *BatchState) *domain.MemeTemplate {
	candidates := s.candidates(category, state)
	if len(candidates) == 0 {
		return nil
	}

	selected, unknownID := s.selectWithLLM(ctx, prompt, candidates)
	if selected == nil {
		if unknownID {
			selected = s.randomSelect(candidates)
		} else {
			selected = s.fallbackSelect(prompt, candidates)
		}
	}

	state.MarkUsed(selected.ID)
	return selected
}

// SelectAt picks a template deterministically by batch index, cycling
// through the unused candidates. Used for batch generation so the i-th meme
// of a batch is reproducible. Falls back to Select when every candidate has
// been used.
func (s *TemplateSelector) SelectAt(ctx context.Context, prompt, category string, batchIndex int, state *BatchState) *domain.MemeTemplate {
	available := s.catalog.ByCategory(category)
	if len(available) == 0 {
		return nil
	}

	unused := make([]domain.MemeTemplate, 0, len(available))
	for _, t := range available {
		if !state.IsUsed(t.ID) {
			unused = append(unused, t)
		}
	}
	if len(unused) == 0 {
		return s.Select(ctx, prompt, category, state)
	}

	if batchIndex < 0 {
		batchIndex = -batchIndex
	}
	selected := unused[batchIndex%len(unused)]
	state.MarkUsed(selected.ID)
	return &selected
}

// selectWithLLM asks the LLM to pick a candidate ID. The second return
// value distinguishes a completion naming an unknown template (true) from
// a disabled client or failed call (false), since the two miss cases
// recover differently.
func (s *TemplateSelector) selectWithLLM(ctx context.Context, prompt string, candidates []domain.MemeTemplate) (*domain.MemeTemplate, bool) {
	if !s.llm.IsEnabled() {
		return nil, false
	}

	content, err := s.llm.Complete(ctx,
		prompts.TemplateSelectionSystemPrompt,
		prompts.TemplateSelectionUserPrompt(prompt, candidates),
		50, 0.7)
	if err != nil {
		s.log(ctx).WithError(err).Warn("Template selection LLM call failed, using fallback")
		return nil, false
	}

	id := strings.Trim(strings.TrimSpace(content), `"'`)
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i], false
		}
	}
	s.log(ctx).WithField(logger.FieldTemplateID, id).Warn("LLM returned unknown template id, picking at random")
	return nil, true
}

// fallbackSelect is the rule-based selection path: keyword matching first,
// then a random candidate.
func (s *TemplateSelector) fallbackSelect(prompt string, candidates []domain.MemeTemplate) *domain.MemeTemplate {
	promptLower := strings.ToLower(prompt)
	for _, entry := range fallbackKeywords {
		if !strings.Contains(promptLower, entry.keyword) {
			continue
		}
		for i := range candidates {
			for _, id := range entry.templateIDs {
				if candidates[i].ID == id {
					return &candidates[i]
				}
			}
		}
	}
	return s.randomSelect(candidates)
}

// randomSelect picks a uniform-random candidate.
func (s *TemplateSelector) randomSelect(candidates []domain.MemeTemplate) *domain.MemeTemplate {
	s.rngMu.Lock()
	idx := s.rng.Intn(len(candidates))
	s.rngMu.Unlock()
	return &candidates[idx]
}
