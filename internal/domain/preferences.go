package domain

import (
	"strconv"
	"time"
)

// Supported chain IDs for coin deployment.
const (
	ChainBaseMainnet int64 = 8453
	ChainBaseSepolia int64 = 84532
)

// Preferences is the singleton user-preferences record. A missing or
// corrupt row degrades to DefaultPreferences at startup.
type Preferences struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	DefaultChainID       int64     `gorm:"default:8453" json:"default_chain_id"`
	AutoCreateCoins      bool      `gorm:"default:false" json:"auto_create_coins"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	Theme                string    `gorm:"type:text;default:light" json:"theme"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName returns the database table name for Preferences.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Preferences) TableName() string {
	return "preferences"
}

// DefaultPreferences returns the documented preference defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		ID:                   1,
		DefaultChainID:       ChainBaseMainnet,
		AutoCreateCoins:      false,
		NotificationsEnabled: true,
		Theme:                "light",
	}
}

// IsSupportedChain reports whether coins can be deployed on the chain.
func IsSupportedChain(chainID int64) bool {
	return chainID == ChainBaseMainnet || chainID == ChainBaseSepolia
}

// CoinViewerURL returns the network-specific viewer URL for a deployed
// coin contract.
func CoinViewerURL(contractAddress string, chainID int64) string {
	switch chainID {
	case ChainBaseSepolia:
		return "https://testnet.zora.co/coin/bsep:" + contractAddress
	case ChainBaseMainnet:
		return "https://zora.co/coin/base:" + contractAddress
	default:
		return "https://testnet.zora.co/coin/" + strconv.FormatInt(chainID, 10) + ":" + contractAddress
	}
}
