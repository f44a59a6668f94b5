package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
)

// ViralGrowthResult reports the deltas applied by one viral growth
// simulation.
type ViralGrowthResult struct {
	Multiplier float64 `json:"multiplier"`
	Views      int64   `json:"views"`
	Likes      int64   `json:"likes"`
	Shares     int64   `json:"shares"`
	Downloads  int64   `json:"downloads"`
	Comments   int64   `json:"comments"`
}

// EngagementService records engagement against memes. Every recorded
// action bumps the matching counter, refreshes the derived score and
// eligibility, stamps the interaction time, and appends one history event.
// Counters only ever go up.
type EngagementService struct {
	memes          *MemeService
	engagementRepo *repository.EngagementRepository
	logger         *logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngagementService creates the engagement service.
// Parameters:
//   - memes: meme service owning the collection.
//   - engagementRepo: event persistence; nil disables it.
//   - rng: random source for viral growth; must not be nil.
//   - log: logger.
// Returns:
//   - *EngagementService: the service.
func NewEngagementService(
	memes *MemeService,
	engagementRepo *repository.EngagementRepository,
	rng *rand.Rand,
	log *logger.Logger,
) *EngagementService {
	return &EngagementService{
		memes:          memes,
		engagementRepo: engagementRepo,
		rng:            rng,
		logger:         log,
	}
}

// log returns the logger from context, or the service logger.
func (s *EngagementService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// RecordView increments the view counter.
func (s *EngagementService) RecordView(ctx context.Context, memeID string) (*domain.Meme, error) {
	return s.record(ctx, memeID, domain.ActionView, nil, func(m *domain.EngagementMetrics) {
		m.Views++
	})
}

// RecordLike increments the like counter.
func (s *EngagementService) RecordLike(ctx context.Context, memeID string) (*domain.Meme, error) {
	return s.record(ctx, memeID, domain.ActionLike, nil, func(m *domain.EngagementMetrics) {
		m.Likes++
	})
}

// RecordShare increments the share counter and tags the event with the
// share platform. An empty platform is recorded as "unknown".
func (s *EngagementService) RecordShare(ctx context.Context, memeID, platform string) (*domain.Meme, error) {
	if platform == "" {
		platform = "unknown"
	}
	metadata := domain.JSONMap{"platform": platform}
	return s.record(ctx, memeID, domain.ActionShare, metadata, func(m *domain.EngagementMetrics) {
		m.Shares++
	})
}

// RecordDownload increments the download counter.
func (s *EngagementService) RecordDownload(ctx context.Context, memeID string) (*domain.Meme, error) {
	return s.record(ctx, memeID, domain.ActionDownload, nil, func(m *domain.EngagementMetrics) {
		m.Downloads++
	})
}

// RecordComment increments the comment counter.
func (s *EngagementService) RecordComment(ctx context.Context, memeID string) (*domain.Meme, error) {
	return s.record(ctx, memeID, domain.ActionComment, nil, func(m *domain.EngagementMetrics) {
		m.Comments++
	})
}

// record is the single mutation path for engagement: apply the counter
// bump, refresh derived state, then append the history event.
func (s *EngagementService) record(
	ctx context.Context,
	memeID, action string,
	metadata domain.JSONMap,
	apply func(*domain.EngagementMetrics),
) (*domain.Meme, error) {
	now := time.Now()
	meme, ok := s.memes.store.Mutate(memeID, func(m *domain.Meme) {
		apply(&m.Metrics)
		m.Metrics.LastInteraction = now
		m.UpdatedAt = now
	})
	if !ok {
		return nil, domain.ErrMemeNotFound
	}

	s.appendEvent(ctx, memeID, action, metadata, now)
	s.memes.persistMemeUpdate(ctx, &meme)
	return &meme, nil
}

// SimulateViralGrowth applies a burst of engagement to a meme: random base
// deltas scaled by a multiplier in [2, 7). One viral_growth history event
// records the multiplier.
// Parameters:
//   - ctx: request context.
//   - memeID: target meme.
// Returns:
//   - *domain.Meme: the meme after growth.
//   - *ViralGrowthResult: the applied deltas.
//   - error: domain.ErrMemeNotFound if the meme does not exist.
func (s *EngagementService) SimulateViralGrowth(ctx context.Context, memeID string) (*domain.Meme, *ViralGrowthResult, error) {
	s.rngMu.Lock()
	multiplier := s.rng.Float64()*5 + 2
	baseViews := s.rng.Int63n(1000) + 500
	baseLikes := int64(float64(baseViews) * 0.1 * s.rng.Float64())
	baseShares := int64(float64(baseLikes) * 0.3 * s.rng.Float64())
	baseDownloads := int64(float64(baseLikes) * 0.5 * s.rng.Float64())
	baseComments := int64(float64(baseLikes) * 0.2 * s.rng.Float64())
	s.rngMu.Unlock()

	result := &ViralGrowthResult{
		Multiplier: multiplier,
		Views:      int64(float64(baseViews) * multiplier),
		Likes:      int64(float64(baseLikes) * multiplier),
		Shares:     int64(float64(baseShares) * multiplier),
		Downloads:  int64(float64(baseDownloads) * multiplier),
		Comments:   int64(float64(baseComments) * multiplier),
	}

	now := time.Now()
	meme, ok := s.memes.store.Mutate(memeID, func(m *domain.Meme) {
		m.Metrics.Views += result.Views
		m.Metrics.Likes += result.Likes
		m.Metrics.Shares += result.Shares
		m.Metrics.Downloads += result.Downloads
		m.Metrics.Comments += result.Comments
		m.Metrics.LastInteraction = now
		m.UpdatedAt = now
	})
	if !ok {
		return nil, nil, domain.ErrMemeNotFound
	}

	s.appendEvent(ctx, memeID, domain.ActionViralGrowth, domain.JSONMap{"multiplier": multiplier}, now)
	s.memes.persistMemeUpdate(ctx, &meme)

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldMemeID: memeID,
		"multiplier":       multiplier,
	}).Info("Simulated viral growth")

	return &meme, result, nil
}

// History returns a meme's engagement events in ascending timestamp order.
// Returns an empty slice when persistence is disabled.
func (s *EngagementService) History(ctx context.Context, memeID string) ([]domain.EngagementEvent, error) {
	if _, ok := s.memes.store.Get(memeID); !ok {
		return nil, domain.ErrMemeNotFound
	}
	if s.engagementRepo == nil {
		return []domain.EngagementEvent{}, nil
	}
	return s.engagementRepo.ListByMemeID(ctx, memeID)
}

func (s *EngagementService) appendEvent(ctx context.Context, memeID, action string, metadata domain.JSONMap, at time.Time) {
	if s.engagementRepo == nil {
		return
	}
	event := &domain.EngagementEvent{
		MemeID:    memeID,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: at,
	}
	if err := s.engagementRepo.Create(ctx, event); err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldMemeID, memeID).
			Error("Failed to persist engagement event")
	}
}
