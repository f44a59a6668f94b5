package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Engagement history action names. The history log feeds trend reporting
// only; eligibility is computed exclusively from the counters.
const (
	ActionView        = "view"
	ActionLike        = "like"
	ActionShare       = "share"
	ActionDownload    = "download"
	ActionComment     = "comment"
	ActionViralGrowth = "viral_growth"
)

// JSONMap is a custom type for storing free-form metadata as JSON in the
// database.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the map.
//   - error: non-nil if marshaling fails.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan JSONMap")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// EngagementEvent is one entry of a meme's unbounded engagement-history
// log: the action taken, when, and free-form metadata such as the share
// platform or the viral-growth multiplier.
type EngagementEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MemeID    string    `gorm:"type:text;not null;index:idx_events_meme" json:"meme_id"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	Metadata  JSONMap   `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time `gorm:"index:idx_events_created" json:"created_at"`
}

// TableName returns the database table name for EngagementEvent.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (EngagementEvent) TableName() string {
	return "engagement_events"
}
