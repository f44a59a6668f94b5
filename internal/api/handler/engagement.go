package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/service"
)

// EngagementHandler handles engagement recording endpoints.
type EngagementHandler struct {
	engagement *service.EngagementService
}

// NewEngagementHandler creates a new engagement handler.
// Parameters:
//   - engagement: engagement service instance.
// Returns:
//   - *EngagementHandler: initialized handler.
func NewEngagementHandler(engagement *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// RecordView handles POST /api/v1/memes/:id/view.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *EngagementHandler) RecordView(c *gin.Context) {
	h.respond(c, func() (*domain.Meme, error) {
		return h.engagement.RecordView(c.Request.Context(), c.Param("id"))
	})
}

// RecordLike handles POST /api/v1/memes/:id/like.
func (h *EngagementHandler) RecordLike(c *gin.Context) {
	h.respond(c, func() (*domain.Meme, error) {
		return h.engagement.RecordLike(c.Request.Context(), c.Param("id"))
	})
}

// RecordShare handles POST /api/v1/memes/:id/share. The optional body
// carries the share platform.
func (h *EngagementHandler) RecordShare(c *gin.Context) {
	var body struct {
		Platform string `json:"platform"`
	}
	// Body is optional; a missing or malformed body records an unknown
	// platform.
	_ = c.ShouldBindJSON(&body)

	h.respond(c, func() (*domain.Meme, error) {
		return h.engagement.RecordShare(c.Request.Context(), c.Param("id"), body.Platform)
	})
}

// RecordDownload handles POST /api/v1/memes/:id/download.
func (h *EngagementHandler) RecordDownload(c *gin.Context) {
	h.respond(c, func() (*domain.Meme, error) {
		return h.engagement.RecordDownload(c.Request.Context(), c.Param("id"))
	})
}

// RecordComment handles POST /api/v1/memes/:id/comment.
func (h *EngagementHandler) RecordComment(c *gin.Context) {
	h.respond(c, func() (*domain.Meme, error) {
		return h.engagement.RecordComment(c.Request.Context(), c.Param("id"))
	})
}

// SimulateViral handles POST /api/v1/memes/:id/viral.
func (h *EngagementHandler) SimulateViral(c *gin.Context) {
	meme, result, err := h.engagement.SimulateViralGrowth(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{
		"meme":   meme,
		"growth": result,
	})
}

// GetHistory handles GET /api/v1/memes/:id/history.
func (h *EngagementHandler) GetHistory(c *gin.Context) {
	events, err := h.engagement.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, events)
}

// respond runs a recording function and writes the updated meme, or the
// mapped error.
func (h *EngagementHandler) respond(c *gin.Context, record func() (*domain.Meme, error)) {
	meme, err := record()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, meme)
}
