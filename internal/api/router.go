package api

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/api/handler"
	"github.com/timmy/memeforge/internal/api/middleware"
	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/service"
)

// Services groups the service instances the router wires into handlers.
type Services struct {
	Memes       *service.MemeService
	Engagement  *service.EngagementService
	Coins       *service.CoinService
	Preferences *service.PreferencesService
	Catalog     *catalog.Catalog
	BackupRepo  *repository.BackupRepository
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - svcs: service instances.
//   - cfg: server configuration (mode and CORS).
//   - log: base logger for the request middleware.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(svcs *Services, cfg *config.ServerConfig, log *logger.Logger) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	memeHandler := handler.NewMemeHandler(svcs.Memes, svcs.Catalog)
	engagementHandler := handler.NewEngagementHandler(svcs.Engagement)
	coinHandler := handler.NewCoinHandler(svcs.Coins)
	prefsHandler := handler.NewPreferencesHandler(svcs.Preferences)
	adminHandler := handler.NewAdminHandler(svcs.BackupRepo, svcs.Memes, svcs.Preferences, log)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Templates
		v1.GET("/templates", memeHandler.ListTemplates)

		// Memes. Static segments are registered before the :id routes so
		// gin does not treat "top" as an id.
		v1.POST("/memes/generate", memeHandler.GenerateMeme)
		v1.GET("/memes", memeHandler.ListMemes)
		v1.GET("/memes/top", memeHandler.TopMemes)
		v1.GET("/memes/eligible", memeHandler.EligibleMemes)
		v1.GET("/memes/trending", memeHandler.TrendingMemes)
		v1.GET("/memes/:id", memeHandler.GetMeme)
		v1.DELETE("/memes/:id", memeHandler.DeleteMeme)

		// Engagement
		v1.POST("/memes/:id/view", engagementHandler.RecordView)
		v1.POST("/memes/:id/like", engagementHandler.RecordLike)
		v1.POST("/memes/:id/share", engagementHandler.RecordShare)
		v1.POST("/memes/:id/download", engagementHandler.RecordDownload)
		v1.POST("/memes/:id/comment", engagementHandler.RecordComment)
		v1.POST("/memes/:id/viral", engagementHandler.SimulateViral)
		v1.GET("/memes/:id/history", engagementHandler.GetHistory)

		// Coins
		v1.POST("/coins", coinHandler.CreateCoin)
		v1.GET("/coins", coinHandler.ListCoins)
		v1.GET("/coins/:id", coinHandler.GetCoin)
		v1.GET("/memes/:id/coin", coinHandler.GetMemeCoin)

		// Preferences
		v1.GET("/preferences", prefsHandler.GetPreferences)
		v1.PUT("/preferences", prefsHandler.UpdatePreferences)

		// Stats
		v1.GET("/stats", memeHandler.GetStats)

		// Admin
		v1.GET("/admin/export", adminHandler.ExportState)
		v1.POST("/admin/import", adminHandler.ImportState)
	}

	return r
}
