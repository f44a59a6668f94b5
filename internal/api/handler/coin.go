package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/service"
)

// CoinHandler handles coin creation and lookup endpoints.
type CoinHandler struct {
	coins *service.CoinService
}

// NewCoinHandler creates a new coin handler.
// Parameters:
//   - coins: coin service instance.
// Returns:
//   - *CoinHandler: initialized handler.
func NewCoinHandler(coins *service.CoinService) *CoinHandler {
	return &CoinHandler{coins: coins}
}

// CreateCoin handles POST /api/v1/coins.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CoinHandler) CreateCoin(c *gin.Context) {
	var req service.CreateCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.MemeID) == "" {
		respondError(c, http.StatusBadRequest, "meme_id is required")
		return
	}
	if strings.TrimSpace(req.PayoutRecipient) == "" {
		respondError(c, http.StatusBadRequest, "payout_recipient is required")
		return
	}

	coin, err := h.coins.CreateCoin(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, coin)
}

// ListCoins handles GET /api/v1/coins.
func (h *CoinHandler) ListCoins(c *gin.Context) {
	coins, err := h.coins.ListCoins(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list coins: "+err.Error())
		return
	}
	respondOK(c, coins)
}

// GetCoin handles GET /api/v1/coins/:id.
func (h *CoinHandler) GetCoin(c *gin.Context) {
	coin, err := h.coins.GetCoin(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, coin)
}

// GetMemeCoin handles GET /api/v1/memes/:id/coin.
func (h *CoinHandler) GetMemeCoin(c *gin.Context) {
	coin, err := h.coins.GetCoinByMemeID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, coin)
}
