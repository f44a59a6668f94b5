package domain

import (
	"time"
)

// MemeStage represents the lifecycle stage of a meme.
// The progression is one-way: created -> engaged -> eligible -> coin_created.
type MemeStage string

const (
	StageCreated     MemeStage = "created"
	StageEngaged     MemeStage = "engaged"
	StageEligible    MemeStage = "eligible"
	StageCoinCreated MemeStage = "coin_created"
)

// EngagementMetrics holds the per-meme engagement counters.
// Counters are monotonically non-decreasing for the lifetime of a meme;
// no decrement operation exists anywhere in the codebase.
type EngagementMetrics struct {
	Views           int64     `gorm:"default:0" json:"views"`
	Likes           int64     `gorm:"default:0" json:"likes"`
	Shares          int64     `gorm:"default:0" json:"shares"`
	Downloads       int64     `gorm:"default:0" json:"downloads"`
	Comments        int64     `gorm:"default:0" json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Total returns the raw sum of all counters, without weights.
func (m *EngagementMetrics) Total() int64 {
	return m.Views + m.Likes + m.Shares + m.Downloads + m.Comments
}

// Meme represents a generated meme and its lifecycle state.
// Score and Eligible are derived from Metrics and recomputed after every
// counter mutation; callers never set them directly. CoinCreated is a
// one-way latch set only after a successful minting call.
type Meme struct {
	ID           string            `gorm:"type:text;primaryKey" json:"id"`
	TemplateID   string            `gorm:"type:text;not null;index:idx_memes_template" json:"template_id"`
	TemplateName string            `gorm:"type:text" json:"template_name"`
	ImageURL     string            `gorm:"type:text" json:"image_url"`
	TopText      string            `gorm:"type:text" json:"top_text,omitempty"`
	BottomText   string            `gorm:"type:text" json:"bottom_text,omitempty"`
	Prompt       string            `gorm:"type:text;not null" json:"prompt"`
	Category     string            `gorm:"type:text;index:idx_memes_category" json:"category,omitempty"`
	Language     string            `gorm:"type:text;default:en" json:"language"`
	Metrics      EngagementMetrics `gorm:"embedded;embeddedPrefix:metrics_" json:"metrics"`
	Score        int64             `gorm:"default:0;index:idx_memes_score" json:"score"`
	Eligible     bool              `gorm:"default:false" json:"eligible"`
	CoinCreated  bool              `gorm:"default:false" json:"coin_created"`
	CoinAddress  string            `gorm:"type:text" json:"coin_address,omitempty"`
	Position     int64             `gorm:"not null;index:idx_memes_position" json:"position"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName returns the database table name for Meme.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Meme) TableName() string {
	return "memes"
}

// Stage derives the lifecycle stage from the meme's state.
// CoinCreated dominates; once latched, eligibility changes are
// informational only.
func (m *Meme) Stage() MemeStage {
	switch {
	case m.CoinCreated:
		return StageCoinCreated
	case m.Eligible:
		return StageEligible
	case m.Metrics.Total() > 0:
		return StageEngaged
	default:
		return StageCreated
	}
}

// RefreshDerived recomputes Score and Eligible from the current counters.
// Called after every metrics mutation.
func (m *Meme) RefreshDerived() {
	m.Score = EngagementScore(&m.Metrics)
	m.Eligible = EligibleForCoin(&m.Metrics)
}

// MarkCoinCreated latches the coin-created state onto the meme.
// The latch is one-way: there is deliberately no inverse operation.
// Parameters:
//   - address: deployed contract address to record.
// Returns: none.
func (m *Meme) MarkCoinCreated(address string) {
	m.CoinCreated = true
	m.CoinAddress = address
}
