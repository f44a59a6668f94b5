package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
)

// TrendWindow is the lookback window for trending queries.
type TrendWindow string

const (
	TrendWindowHour TrendWindow = "hour"
	TrendWindowDay  TrendWindow = "day"
	TrendWindowWeek TrendWindow = "week"
)

// Duration returns the window length. Unknown windows default to a day.
func (w TrendWindow) Duration() time.Duration {
	switch w {
	case TrendWindowHour:
		return time.Hour
	case TrendWindowWeek:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// GenerateMemeRequest is the input for meme generation.
type GenerateMemeRequest struct {
	Prompt         string `json:"prompt"`
	Category       string `json:"category,omitempty"`
	Language       string `json:"language,omitempty"`
	ResetTemplates bool   `json:"resetTemplates,omitempty"`
	BatchIndex     *int   `json:"batchIndex,omitempty"`
}

// TrendSummary aggregates engagement across the whole collection.
type TrendSummary struct {
	TotalMemes        int              `json:"total_memes"`
	TotalEngagement   int64            `json:"total_engagement"`
	AverageEngagement float64          `json:"average_engagement"`
	EligibleMemes     int              `json:"eligible_memes"`
	CoinCreatedMemes  int              `json:"coin_created_memes"`
	Categories        map[string]int   `json:"categories"`
	RecentActivity    []RecentActivity `json:"recent_activity"`
}

// RecentActivity summarizes one meme's engagement events inside the
// last day.
type RecentActivity struct {
	MemeID     string                  `json:"meme_id"`
	Actions    int                     `json:"actions"`
	LastAction *domain.EngagementEvent `json:"last_action,omitempty"`
}

// MemeService owns the meme collection: generation, queries, and deletion.
// The in-memory store is the source of truth; the repositories are a
// write-behind mirror so a restart can reload state. A nil repository
// disables persistence.
type MemeService struct {
	store          *memeStore
	selector       *TemplateSelector
	captions       *CaptionGenerator
	batch          *BatchState
	memeRepo       *repository.MemeRepository
	engagementRepo *repository.EngagementRepository
	logger         *logger.Logger
}

// NewMemeService creates the meme service.
// Parameters:
//   - selector: template selector.
//   - captions: caption generator.
//   - memeRepo: meme persistence; nil disables persistence.
//   - engagementRepo: engagement event persistence; nil disables it.
//   - log: logger.
// Returns:
//   - *MemeService: the service with an empty collection.
func NewMemeService(
	selector *TemplateSelector,
	captions *CaptionGenerator,
	memeRepo *repository.MemeRepository,
	engagementRepo *repository.EngagementRepository,
	log *logger.Logger,
) *MemeService {
	return &MemeService{
		store:          newMemeStore(),
		selector:       selector,
		captions:       captions,
		batch:          NewBatchState(),
		memeRepo:       memeRepo,
		engagementRepo: engagementRepo,
		logger:         log,
	}
}

// log returns the logger from context, or the service logger.
func (s *MemeService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// LoadFromRepository seeds the in-memory collection from the database.
// Called once at startup, before the service handles requests.
func (s *MemeService) LoadFromRepository(ctx context.Context) error {
	if s.memeRepo == nil {
		return nil
	}
	memes, err := s.memeRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	s.store.Load(memes)
	s.log(ctx).WithField(logger.FieldCount, len(memes)).Info("Loaded memes from database")
	return nil
}

// Generate creates a new meme for the prompt: template selection, caption
// generation, then insertion into the collection.
// Parameters:
//   - ctx: request context.
//   - req: generation request.
// Returns:
//   - *domain.Meme: the created meme.
//   - error: domain.ErrEmptyPrompt for a blank prompt.
func (s *MemeService) Generate(ctx context.Context, req *GenerateMemeRequest) (*domain.Meme, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}

	if req.ResetTemplates {
		s.batch.Reset()
	}

	var template *domain.MemeTemplate
	if req.BatchIndex != nil {
		template = s.selector.SelectAt(ctx, prompt, req.Category, *req.BatchIndex, s.batch)
	} else {
		template = s.selector.Select(ctx, prompt, req.Category, s.batch)
	}
	if template == nil {
		return nil, domain.ErrMemeNotFound
	}

	captions := s.captions.Generate(ctx, prompt, template)

	language := req.Language
	if language == "" {
		language = "en"
	}

	now := time.Now()
	meme := domain.Meme{
		ID:           "meme-" + uuid.NewString(),
		TemplateID:   template.ID,
		TemplateName: template.Name,
		ImageURL:     template.ImageURL,
		TopText:      captions.TopText,
		BottomText:   captions.BottomText,
		Prompt:       prompt,
		Category:     req.Category,
		Language:     language,
		Metrics: domain.EngagementMetrics{
			CreatedAt:       now,
			LastInteraction: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Add(&meme)

	if s.memeRepo != nil {
		if err := s.memeRepo.Create(ctx, &meme); err != nil {
			s.log(ctx).WithError(err).WithField(logger.FieldMemeID, meme.ID).
				Error("Failed to persist meme")
		}
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldMemeID:     meme.ID,
		logger.FieldTemplateID: meme.TemplateID,
	}).Info("Meme generated")

	return &meme, nil
}

// persistMemeUpdate mirrors an updated meme to the database. Persistence
// failures are logged, never surfaced; the in-memory state already holds
// the truth.
func (s *MemeService) persistMemeUpdate(ctx context.Context, meme *domain.Meme) {
	if s.memeRepo == nil {
		return
	}
	if err := s.memeRepo.Update(ctx, meme); err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldMemeID, meme.ID).
			Error("Failed to persist meme update")
	}
}

// Get returns the meme with the given ID.
func (s *MemeService) Get(ctx context.Context, id string) (*domain.Meme, error) {
	meme, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrMemeNotFound
	}
	return &meme, nil
}

// List returns all memes in insertion order.
func (s *MemeService) List(ctx context.Context) []domain.Meme {
	return s.store.Snapshot()
}

// Delete removes a meme and its engagement history.
func (s *MemeService) Delete(ctx context.Context, id string) error {
	if !s.store.Remove(id) {
		return domain.ErrMemeNotFound
	}

	if s.memeRepo != nil {
		if err := s.memeRepo.Delete(ctx, id); err != nil {
			s.log(ctx).WithError(err).WithField(logger.FieldMemeID, id).
				Error("Failed to delete meme record")
		}
	}
	if s.engagementRepo != nil {
		if err := s.engagementRepo.DeleteByMemeID(ctx, id); err != nil {
			s.log(ctx).WithError(err).WithField(logger.FieldMemeID, id).
				Error("Failed to delete engagement history")
		}
	}
	return nil
}

// TopMemes returns up to limit memes ordered by engagement score,
// highest first. Ties keep insertion order.
func (s *MemeService) TopMemes(ctx context.Context, limit int) []domain.Meme {
	if limit <= 0 {
		limit = 10
	}
	memes := s.store.Snapshot()
	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].Score > memes[j].Score
	})
	if len(memes) > limit {
		memes = memes[:limit]
	}
	return memes
}

// EligibleMemes returns memes that qualify for coin creation and have no
// coin yet.
func (s *MemeService) EligibleMemes(ctx context.Context) []domain.Meme {
	var eligible []domain.Meme
	for _, m := range s.store.Snapshot() {
		if m.Eligible && !m.CoinCreated {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

// ByCategory returns memes whose category matches, ignoring case.
func (s *MemeService) ByCategory(ctx context.Context, category string) []domain.Meme {
	var matched []domain.Meme
	for _, m := range s.store.Snapshot() {
		if strings.EqualFold(m.Category, category) {
			matched = append(matched, m)
		}
	}
	return matched
}

// TrendingMemes returns up to 10 memes with activity inside the window,
// ranked by score weighted toward recent interaction.
func (s *MemeService) TrendingMemes(ctx context.Context, window TrendWindow) []domain.Meme {
	now := time.Now()
	cutoff := now.Add(-window.Duration())

	var active []domain.Meme
	for _, m := range s.store.Snapshot() {
		if m.Metrics.LastInteraction.After(cutoff) {
			active = append(active, m)
		}
	}

	weighted := func(m *domain.Meme) float64 {
		return float64(m.Score) * (float64(m.Metrics.LastInteraction.Unix()) / float64(now.Unix()))
	}
	sort.SliceStable(active, func(i, j int) bool {
		return weighted(&active[i]) > weighted(&active[j])
	})
	if len(active) > 10 {
		active = active[:10]
	}
	return active
}

// TotalEngagement returns the sum of engagement scores across all memes.
func (s *MemeService) TotalEngagement(ctx context.Context) int64 {
	var total int64
	for _, m := range s.store.Snapshot() {
		total += m.Score
	}
	return total
}

// EngagementTrends aggregates collection-wide engagement statistics,
// including per-meme activity from the last 24 hours.
func (s *MemeService) EngagementTrends(ctx context.Context) *TrendSummary {
	memes := s.store.Snapshot()

	summary := &TrendSummary{
		TotalMemes: len(memes),
		Categories: make(map[string]int),
	}
	for _, m := range memes {
		summary.TotalEngagement += m.Score
		if m.Eligible && !m.CoinCreated {
			summary.EligibleMemes++
		}
		if m.CoinCreated {
			summary.CoinCreatedMemes++
		}
		category := m.Category
		if category == "" {
			category = "Uncategorized"
		}
		summary.Categories[category]++
	}
	if len(memes) > 0 {
		summary.AverageEngagement = float64(summary.TotalEngagement) / float64(len(memes))
	}

	if s.engagementRepo != nil {
		since := time.Now().Add(-24 * time.Hour)
		events, err := s.engagementRepo.ListSince(ctx, since)
		if err != nil {
			s.log(ctx).WithError(err).Warn("Failed to load recent engagement events")
		} else {
			summary.RecentActivity = groupRecentActivity(events)
		}
	}
	return summary
}

// groupRecentActivity folds events into per-meme activity entries, ordered
// by meme of first appearance. Events are expected in ascending timestamp
// order.
func groupRecentActivity(events []domain.EngagementEvent) []RecentActivity {
	index := make(map[string]int)
	var activity []RecentActivity
	for i := range events {
		ev := events[i]
		pos, ok := index[ev.MemeID]
		if !ok {
			pos = len(activity)
			index[ev.MemeID] = pos
			activity = append(activity, RecentActivity{MemeID: ev.MemeID})
		}
		activity[pos].Actions++
		activity[pos].LastAction = &events[i]
	}
	return activity
}
