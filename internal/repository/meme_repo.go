package repository

import (
	"context"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemeRepository handles meme data operations.
type MemeRepository struct {
	db *gorm.DB
}

// NewMemeRepository creates a new MemeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MemeRepository: repository instance bound to db.
func NewMemeRepository(db *gorm.DB) *MemeRepository {
	return &MemeRepository{db: db}
}

// Create inserts a new meme record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meme: meme record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) error {
	return r.db.WithContext(ctx).Create(meme).Error
}

// Update updates an existing meme record, or inserts it if the write-behind
// insert was lost.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meme: meme record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *MemeRepository) Update(ctx context.Context, meme *domain.Meme) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(meme).Error
}

// GetByID retrieves a meme by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID.
// Returns:
//   - *domain.Meme: meme record if found.
//   - error: non-nil if lookup fails.
func (r *MemeRepository) GetByID(ctx context.Context, id string) (*domain.Meme, error) {
	var meme domain.Meme
	if err := r.db.WithContext(ctx).First(&meme, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meme, nil
}

// ListAll retrieves every meme ordered by insertion position.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meme: all meme records.
//   - error: non-nil if the query fails.
func (r *MemeRepository) ListAll(ctx context.Context) ([]domain.Meme, error) {
	var memes []domain.Meme
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&memes).Error; err != nil {
		return nil, err
	}
	return memes, nil
}

// ListByCategory retrieves memes in a category ordered by insertion
// position.
func (r *MemeRepository) ListByCategory(ctx context.Context, category string) ([]domain.Meme, error) {
	var memes []domain.Meme
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("position ASC").
		Find(&memes).Error
	if err != nil {
		return nil, err
	}
	return memes, nil
}

// ListEligible retrieves memes eligible for coin creation that have no
// coin yet, highest score first.
func (r *MemeRepository) ListEligible(ctx context.Context) ([]domain.Meme, error) {
	var memes []domain.Meme
	err := r.db.WithContext(ctx).
		Where("eligible = ? AND coin_created = ?", true, false).
		Order("score DESC").
		Find(&memes).Error
	if err != nil {
		return nil, err
	}
	return memes, nil
}

// Count returns the total number of meme records.
func (r *MemeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Meme{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a meme record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *MemeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Meme{}, "id = ?", id).Error
}
