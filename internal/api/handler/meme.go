package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/service"
)

// MemeHandler handles meme generation and collection endpoints.
type MemeHandler struct {
	memes   *service.MemeService
	catalog *catalog.Catalog
}

// NewMemeHandler creates a new meme handler.
// Parameters:
//   - memes: meme service instance.
//   - cat: template catalog.
// Returns:
//   - *MemeHandler: initialized handler.
func NewMemeHandler(memes *service.MemeService, cat *catalog.Catalog) *MemeHandler {
	return &MemeHandler{
		memes:   memes,
		catalog: cat,
	}
}

// generateMemeResponse is the generation payload. The endpoint contract
// uses camelCase keys, matching the request fields, while stored meme
// records serialize snake_case everywhere else.
type generateMemeResponse struct {
	ID           string `json:"id"`
	TemplateID   string `json:"templateId"`
	TemplateName string `json:"templateName"`
	ImageURL     string `json:"imageUrl"`
	TopText      string `json:"topText,omitempty"`
	BottomText   string `json:"bottomText,omitempty"`
	Prompt       string `json:"prompt"`
}

// GenerateMeme handles POST /api/v1/memes/generate.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MemeHandler) GenerateMeme(c *gin.Context) {
	var req service.GenerateMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	meme, err := h.memes.Generate(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, generateMemeResponse{
		ID:           meme.ID,
		TemplateID:   meme.TemplateID,
		TemplateName: meme.TemplateName,
		ImageURL:     meme.ImageURL,
		TopText:      meme.TopText,
		BottomText:   meme.BottomText,
		Prompt:       meme.Prompt,
	})
}

// ListMemes handles GET /api/v1/memes. An optional category query filters
// the collection.
func (h *MemeHandler) ListMemes(c *gin.Context) {
	category := c.Query("category")
	if category != "" {
		respondOK(c, h.memes.ByCategory(c.Request.Context(), category))
		return
	}
	respondOK(c, h.memes.List(c.Request.Context()))
}

// GetMeme handles GET /api/v1/memes/:id.
func (h *MemeHandler) GetMeme(c *gin.Context) {
	meme, err := h.memes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, meme)
}

// DeleteMeme handles DELETE /api/v1/memes/:id.
func (h *MemeHandler) DeleteMeme(c *gin.Context) {
	if err := h.memes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// TopMemes handles GET /api/v1/memes/top. The limit query defaults to 10.
func (h *MemeHandler) TopMemes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		respondError(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	respondOK(c, h.memes.TopMemes(c.Request.Context(), limit))
}

// EligibleMemes handles GET /api/v1/memes/eligible.
func (h *MemeHandler) EligibleMemes(c *gin.Context) {
	respondOK(c, h.memes.EligibleMemes(c.Request.Context()))
}

// TrendingMemes handles GET /api/v1/memes/trending. The window query
// accepts hour, day, or week and defaults to day.
func (h *MemeHandler) TrendingMemes(c *gin.Context) {
	window := service.TrendWindow(c.DefaultQuery("window", "day"))
	respondOK(c, h.memes.TrendingMemes(c.Request.Context(), window))
}

// ListTemplates handles GET /api/v1/templates. An optional category query
// narrows the catalog; no match falls back to the full catalog.
func (h *MemeHandler) ListTemplates(c *gin.Context) {
	category := c.Query("category")
	respondOK(c, gin.H{
		"templates":  h.catalog.ByCategory(category),
		"categories": h.catalog.Categories(),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *MemeHandler) GetStats(c *gin.Context) {
	respondOK(c, h.memes.EngagementTrends(c.Request.Context()))
}
