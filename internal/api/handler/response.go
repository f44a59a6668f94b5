package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/timmy/memeforge/internal/domain"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the failure envelope with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondDomainError maps sentinel errors to HTTP statuses. Unknown errors
// become 500s with the error text.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMemeNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "Meme not found")
	case errors.Is(err, domain.ErrEmptyPrompt):
		respondError(c, http.StatusBadRequest, "Prompt is required")
	case errors.Is(err, domain.ErrNotEligible):
		respondError(c, http.StatusConflict, "Meme is not eligible for coin creation")
	case errors.Is(err, domain.ErrCoinAlreadyCreated):
		respondError(c, http.StatusConflict, "A coin has already been created for this meme")
	case errors.Is(err, domain.ErrUnsupportedChain):
		respondError(c, http.StatusBadRequest, "Unsupported chain ID")
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
