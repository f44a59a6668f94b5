package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/service"
)

// PreferencesHandler handles the user preferences endpoints.
type PreferencesHandler struct {
	prefs *service.PreferencesService
}

// NewPreferencesHandler creates a new preferences handler.
// Parameters:
//   - prefs: preferences service instance.
// Returns:
//   - *PreferencesHandler: initialized handler.
func NewPreferencesHandler(prefs *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// GetPreferences handles GET /api/v1/preferences.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	respondOK(c, h.prefs.Get(c.Request.Context()))
}

// UpdatePreferences handles PUT /api/v1/preferences. The body is a
// partial update; omitted fields keep their current values.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req service.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	prefs, err := h.prefs.Update(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, prefs)
}
