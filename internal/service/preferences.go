package service

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
)

// UpdatePreferencesRequest carries a partial preferences update. Nil
// fields keep their current values.
type UpdatePreferencesRequest struct {
	DefaultChainID       *int64  `json:"default_chain_id,omitempty"`
	AutoCreateCoins      *bool   `json:"auto_create_coins,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	Theme                *string `json:"theme,omitempty"`
}

// PreferencesService manages the singleton user preferences record. A
// missing or unreadable row degrades to the documented defaults.
type PreferencesService struct {
	mu      sync.RWMutex
	current domain.Preferences
	repo    *repository.PreferencesRepository
	logger  *logger.Logger
}

// NewPreferencesService creates the preferences service, initialized to
// defaults until Load is called.
func NewPreferencesService(repo *repository.PreferencesRepository, log *logger.Logger) *PreferencesService {
	return &PreferencesService{
		current: domain.DefaultPreferences(),
		repo:    repo,
		logger:  log,
	}
}

// log returns the logger from context, or the service logger.
func (s *PreferencesService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Load reads the persisted preferences. Any failure keeps the defaults.
func (s *PreferencesService) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	prefs, err := s.repo.Get(ctx)
	if err != nil {
		s.log(ctx).WithError(err).Warn("Failed to load preferences, using defaults")
		return
	}
	s.mu.Lock()
	s.current = *prefs
	s.mu.Unlock()
}

// Get returns the current preferences.
func (s *PreferencesService) Get(ctx context.Context) domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies a partial preferences update and persists the result.
// Parameters:
//   - ctx: request context.
//   - req: fields to change; nil fields are untouched.
// Returns:
//   - domain.Preferences: the updated preferences.
//   - error: domain.ErrUnsupportedChain for an unknown chain ID.
func (s *PreferencesService) Update(ctx context.Context, req *UpdatePreferencesRequest) (domain.Preferences, error) {
	if req.DefaultChainID != nil && !domain.IsSupportedChain(*req.DefaultChainID) {
		return domain.Preferences{}, domain.ErrUnsupportedChain
	}

	s.mu.Lock()
	if req.DefaultChainID != nil {
		s.current.DefaultChainID = *req.DefaultChainID
	}
	if req.AutoCreateCoins != nil {
		s.current.AutoCreateCoins = *req.AutoCreateCoins
	}
	if req.NotificationsEnabled != nil {
		s.current.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.Theme != nil {
		s.current.Theme = *req.Theme
	}
	s.current.UpdatedAt = time.Now()
	updated := s.current
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Save(ctx, &updated); err != nil {
			s.log(ctx).WithError(err).Error("Failed to persist preferences")
		}
	}
	return updated, nil
}
