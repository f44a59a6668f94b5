package domain

import (
	"strings"
	"time"
)

// Engagement score weights. A share signals more commitment than a view,
// so the weights reflect relative engagement value.
const (
	WeightLikes     = 3
	WeightShares    = 5
	WeightDownloads = 2
	WeightComments  = 4
	WeightViews     = 1
)

// Coin eligibility thresholds. These are tunables, not architectural
// invariants; all four conditions must hold simultaneously.
const (
	MinLikesForCoin  = 10
	MinSharesForCoin = 5
	MinViewsForCoin  = 100
	MinScoreForCoin  = 50
)

// EngagementScore computes the weighted engagement score for a set of
// counters. Pure function, no side effects.
// Parameters:
//   - m: engagement counters to score.
// Returns:
//   - int64: 3*likes + 5*shares + 2*downloads + 4*comments + views.
func EngagementScore(m *EngagementMetrics) int64 {
	return m.Likes*WeightLikes +
		m.Shares*WeightShares +
		m.Downloads*WeightDownloads +
		m.Comments*WeightComments +
		m.Views*WeightViews
}

// EligibleForCoin reports whether the counters qualify a meme for coin
// creation. All individual floors AND the score threshold must be met;
// the score alone is never sufficient. Pure function, no side effects.
// Parameters:
//   - m: engagement counters to evaluate.
// Returns:
//   - bool: true if every threshold holds.
func EligibleForCoin(m *EngagementMetrics) bool {
	return m.Likes >= MinLikesForCoin &&
		m.Shares >= MinSharesForCoin &&
		m.Views >= MinViewsForCoin &&
		EngagementScore(m) >= MinScoreForCoin
}

// MemeCoin represents an ERC-20 coin minted from a popular meme.
type MemeCoin struct {
	ID              string    `gorm:"type:text;primaryKey" json:"id"`
	MemeID          string    `gorm:"type:text;not null;uniqueIndex:idx_coins_meme" json:"meme_id"`
	Name            string    `gorm:"type:text;not null" json:"name"`
	Symbol          string    `gorm:"type:text;not null" json:"symbol"`
	ChainID         int64     `gorm:"not null" json:"chain_id"`
	ContractAddress string    `gorm:"type:text" json:"contract_address"`
	TxHash          string    `gorm:"type:text" json:"tx_hash"`
	ViewerURL       string    `gorm:"type:text" json:"viewer_url"`
	IPFSHash        string    `gorm:"type:text" json:"ipfs_hash"`
	MetadataJSON    string    `gorm:"type:text" json:"metadata_json"`
	Creator         string    `gorm:"type:text;not null" json:"creator"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for MemeCoin.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (MemeCoin) TableName() string {
	return "meme_coins"
}

// CoinMetadata is the metadata document pinned to IPFS for a minted coin.
type CoinMetadata struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	ExternalURL string          `json:"external_url,omitempty"`
	Attributes  []CoinAttribute `json:"attributes"`
	Meme        CoinMemeRef     `json:"meme"`
	Popularity  PopularitySnap  `json:"popularity"`
}

// CoinAttribute is a single trait entry in the coin metadata.
type CoinAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// CoinMemeRef references the originating meme inside the coin metadata.
type CoinMemeRef struct {
	TemplateID     string `json:"template_id"`
	TemplateName   string `json:"template_name"`
	TopText        string `json:"top_text,omitempty"`
	BottomText     string `json:"bottom_text,omitempty"`
	OriginalPrompt string `json:"original_prompt"`
	Category       string `json:"category,omitempty"`
	Language       string `json:"language"`
}

// PopularitySnap is a frozen copy of the engagement counters at mint time.
type PopularitySnap struct {
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Shares          int64     `json:"shares"`
	Downloads       int64     `json:"downloads"`
	Comments        int64     `json:"comments"`
	Score           int64     `json:"score"`
	LastInteraction time.Time `json:"last_interaction"`
}

// SnapshotPopularity freezes the meme's current counters for coin metadata.
func SnapshotPopularity(m *Meme) PopularitySnap {
	return PopularitySnap{
		Views:           m.Metrics.Views,
		Likes:           m.Metrics.Likes,
		Shares:          m.Metrics.Shares,
		Downloads:       m.Metrics.Downloads,
		Comments:        m.Metrics.Comments,
		Score:           EngagementScore(&m.Metrics),
		LastInteraction: m.Metrics.LastInteraction,
	}
}

// DeriveCoinName builds a display name for a coin from the meme's template
// name and captions. Names are capped at 50 characters. Caption text may be
// in any language, so truncation counts runes rather than bytes.
func DeriveCoinName(templateName, topText, bottomText string) string {
	text := topText
	if text == "" {
		text = bottomText
	}
	text = truncateRunes(text, 20)

	name := templateName
	if text != "" {
		name = templateName + " - " + text
	}
	return truncateRunes(name, 50)
}

// truncateRunes caps s at max runes, appending "..." when it was cut.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// DeriveCoinSymbol builds a ticker symbol from the template name and
// captions: up to 4 characters of template plus up to 3 of caption,
// capped at 8 characters.
func DeriveCoinSymbol(templateName, topText, bottomText string) string {
	templatePart := alphanumericUpper(templateName)
	if len(templatePart) > 4 {
		templatePart = templatePart[:4]
	}

	text := topText
	if text == "" {
		text = bottomText
	}
	textPart := alphanumericUpper(text)
	if len(textPart) > 3 {
		textPart = textPart[:3]
	}

	symbol := templatePart + "COIN"
	if textPart != "" {
		symbol = templatePart + textPart
	}
	if len(symbol) > 8 {
		symbol = symbol[:8]
	}
	return symbol
}

func alphanumericUpper(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}
