package repository

import (
	"context"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
)

// CoinRepository handles meme coin data operations.
type CoinRepository struct {
	db *gorm.DB
}

// NewCoinRepository creates a new CoinRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *CoinRepository: repository instance bound to db.
func NewCoinRepository(db *gorm.DB) *CoinRepository {
	return &CoinRepository{db: db}
}

// Create inserts a new coin record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - coin: coin record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *CoinRepository) Create(ctx context.Context, coin *domain.MemeCoin) error {
	return r.db.WithContext(ctx).Create(coin).Error
}

// GetByID retrieves a coin by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: coin ID.
// Returns:
//   - *domain.MemeCoin: coin record if found.
//   - error: non-nil if lookup fails.
func (r *CoinRepository) GetByID(ctx context.Context, id string) (*domain.MemeCoin, error) {
	var coin domain.MemeCoin
	if err := r.db.WithContext(ctx).First(&coin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coin, nil
}

// GetByMemeID retrieves the coin minted from a meme. At most one coin
// exists per meme; the unique index enforces it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - memeID: originating meme ID.
// Returns:
//   - *domain.MemeCoin: coin record if found.
//   - error: non-nil if lookup fails.
func (r *CoinRepository) GetByMemeID(ctx context.Context, memeID string) (*domain.MemeCoin, error) {
	var coin domain.MemeCoin
	if err := r.db.WithContext(ctx).First(&coin, "meme_id = ?", memeID).Error; err != nil {
		return nil, err
	}
	return &coin, nil
}

// ListAll retrieves all coins, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.MemeCoin: all coin records.
//   - error: non-nil if the query fails.
func (r *CoinRepository) ListAll(ctx context.Context) ([]domain.MemeCoin, error) {
	var coins []domain.MemeCoin
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coins).Error; err != nil {
		return nil, err
	}
	return coins, nil
}

// Count returns the total number of coin records.
func (r *CoinRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.MemeCoin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
