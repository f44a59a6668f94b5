package repository

import (
	"context"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferencesRepository handles the singleton preferences record.
type PreferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new PreferencesRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PreferencesRepository: repository instance bound to db.
func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get retrieves the preferences record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Preferences: the stored record.
//   - error: non-nil if no record exists or lookup fails.
func (r *PreferencesRepository) Get(ctx context.Context) (*domain.Preferences, error) {
	var prefs domain.Preferences
	if err := r.db.WithContext(ctx).First(&prefs, "id = ?", 1).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Save upserts the preferences record. The record always has ID 1.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prefs: preferences to persist.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *PreferencesRepository) Save(ctx context.Context, prefs *domain.Preferences) error {
	prefs.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(prefs).Error
}
