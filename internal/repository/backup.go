package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateBackup is the full application state as one JSON document, used for
// backup and migration between installs.
type StateBackup struct {
	Memes       []domain.Meme            `json:"memes"`
	Coins       []domain.MemeCoin        `json:"coins"`
	Events      []domain.EngagementEvent `json:"events"`
	Preferences *domain.Preferences      `json:"preferences,omitempty"`
	ExportDate  time.Time                `json:"export_date"`
}

// BackupRepository exports and imports the full database state.
type BackupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new BackupRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *BackupRepository: repository instance bound to db.
func NewBackupRepository(db *gorm.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// Export serializes all tables into one JSON document.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []byte: JSON-encoded state backup.
//   - error: non-nil if any read fails.
func (r *BackupRepository) Export(ctx context.Context) ([]byte, error) {
	backup := StateBackup{ExportDate: time.Now()}

	if err := r.db.WithContext(ctx).Order("position ASC").Find(&backup.Memes).Error; err != nil {
		return nil, fmt.Errorf("failed to export memes: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&backup.Coins).Error; err != nil {
		return nil, fmt.Errorf("failed to export coins: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&backup.Events).Error; err != nil {
		return nil, fmt.Errorf("failed to export engagement events: %w", err)
	}

	var prefs domain.Preferences
	if err := r.db.WithContext(ctx).First(&prefs, "id = ?", 1).Error; err == nil {
		backup.Preferences = &prefs
	}

	return json.MarshalIndent(&backup, "", "  ")
}

// Import replaces the database contents with the backup. Sections missing
// from the document leave the corresponding tables untouched. The whole
// import runs in one transaction.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - data: JSON-encoded state backup.
// Returns:
//   - error: non-nil if parsing or any write fails; no partial import.
func (r *BackupRepository) Import(ctx context.Context, data []byte) error {
	var backup StateBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if backup.Memes != nil {
			if err := tx.Where("1 = 1").Delete(&domain.Meme{}).Error; err != nil {
				return fmt.Errorf("failed to clear memes: %w", err)
			}
			if len(backup.Memes) > 0 {
				if err := tx.Create(&backup.Memes).Error; err != nil {
					return fmt.Errorf("failed to import memes: %w", err)
				}
			}
		}
		if backup.Coins != nil {
			if err := tx.Where("1 = 1").Delete(&domain.MemeCoin{}).Error; err != nil {
				return fmt.Errorf("failed to clear coins: %w", err)
			}
			if len(backup.Coins) > 0 {
				if err := tx.Create(&backup.Coins).Error; err != nil {
					return fmt.Errorf("failed to import coins: %w", err)
				}
			}
		}
		if backup.Events != nil {
			if err := tx.Where("1 = 1").Delete(&domain.EngagementEvent{}).Error; err != nil {
				return fmt.Errorf("failed to clear engagement events: %w", err)
			}
			if len(backup.Events) > 0 {
				if err := tx.Create(&backup.Events).Error; err != nil {
					return fmt.Errorf("failed to import engagement events: %w", err)
				}
			}
		}
		if backup.Preferences != nil {
			backup.Preferences.ID = 1
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(backup.Preferences).Error; err != nil {
				return fmt.Errorf("failed to import preferences: %w", err)
			}
		}
		return nil
	})
}
