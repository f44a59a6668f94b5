package repository

import (
	"context"
	"time"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
)

// EngagementRepository handles engagement event data operations.
type EngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *EngagementRepository: repository instance bound to db.
func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Create appends an engagement event.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - event: event record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *EngagementRepository) Create(ctx context.Context, event *domain.EngagementEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByMemeID retrieves a meme's events in ascending timestamp order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - memeID: meme whose history to load.
// Returns:
//   - []domain.EngagementEvent: the meme's event history.
//   - error: non-nil if the query fails.
func (r *EngagementRepository) ListByMemeID(ctx context.Context, memeID string) ([]domain.EngagementEvent, error) {
	var events []domain.EngagementEvent
	err := r.db.WithContext(ctx).
		Where("meme_id = ?", memeID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListSince retrieves all events recorded after the given time, ascending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - since: lower time bound, exclusive.
// Returns:
//   - []domain.EngagementEvent: matching events.
//   - error: non-nil if the query fails.
func (r *EngagementRepository) ListSince(ctx context.Context, since time.Time) ([]domain.EngagementEvent, error) {
	var events []domain.EngagementEvent
	err := r.db.WithContext(ctx).
		Where("created_at > ?", since).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteByMemeID removes all events for a meme. Called when the meme
// itself is deleted.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - memeID: meme whose history to remove.
// Returns:
//   - error: non-nil if the delete fails.
func (r *EngagementRepository) DeleteByMemeID(ctx context.Context, memeID string) error {
	return r.db.WithContext(ctx).Delete(&domain.EngagementEvent{}, "meme_id = ?", memeID).Error
}
