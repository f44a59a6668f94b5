package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/service"
)

// AdminHandler handles admin operations: full-state export and import.
type AdminHandler struct {
	backupRepo *repository.BackupRepository
	memes      *service.MemeService
	prefs      *service.PreferencesService
	logger     *logger.Logger
}

// NewAdminHandler creates a new admin handler.
// Parameters:
//   - backupRepo: backup repository; nil disables export/import.
//   - memes: meme service, reloaded after an import.
//   - prefs: preferences service, reloaded after an import.
//   - log: logger instance.
// Returns:
//   - *AdminHandler: initialized handler.
func NewAdminHandler(
	backupRepo *repository.BackupRepository,
	memes *service.MemeService,
	prefs *service.PreferencesService,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		backupRepo: backupRepo,
		memes:      memes,
		prefs:      prefs,
		logger:     log,
	}
}

// log returns a logger from the request context if available, otherwise
// the handler logger.
func (h *AdminHandler) log(c *gin.Context) *logger.Logger {
	if l := logger.FromContext(c.Request.Context()); l != nil {
		return l
	}
	return h.logger
}

// ExportState handles GET /api/v1/admin/export. The response is the full
// state blob as a JSON attachment.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AdminHandler) ExportState(c *gin.Context) {
	if h.backupRepo == nil {
		respondError(c, http.StatusServiceUnavailable, "Persistence is disabled")
		return
	}

	data, err := h.backupRepo.Export(c.Request.Context())
	if err != nil {
		h.log(c).WithError(err).Error("State export failed")
		respondError(c, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	filename := "memeforge-export-" + time.Now().UTC().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportState handles POST /api/v1/admin/import. The body is a state blob
// produced by ExportState; the import replaces the persisted state and
// reloads the in-memory collection and preferences.
func (h *AdminHandler) ImportState(c *gin.Context) {
	if h.backupRepo == nil {
		respondError(c, http.StatusServiceUnavailable, "Persistence is disabled")
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return
	}
	if len(data) == 0 {
		respondError(c, http.StatusBadRequest, "Request body is required")
		return
	}

	if err := h.backupRepo.Import(c.Request.Context(), data); err != nil {
		h.log(c).WithError(err).Error("State import failed")
		respondError(c, http.StatusBadRequest, "Import failed: "+err.Error())
		return
	}

	if err := h.memes.LoadFromRepository(c.Request.Context()); err != nil {
		h.log(c).WithError(err).Error("Reload after import failed")
		respondError(c, http.StatusInternalServerError, "Import succeeded but reload failed: "+err.Error())
		return
	}
	h.prefs.Load(c.Request.Context())

	h.log(c).Info("State import completed")
	respondOK(c, gin.H{"imported": true})
}
