package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/memeforge/internal/api"
	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/ipfs"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/service"
	"github.com/timmy/memeforge/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.NewDefault()
	logger.SetDefaultLogger(appLog)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}

	memeRepo := repository.NewMemeRepository(db)
	coinRepo := repository.NewCoinRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	// Object storage is optional: an empty endpoint disables image archiving.
	var archive storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		archive, err = storage.NewStorage(&storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize storage")
		}
	}

	pinner := ipfs.NewClient(&ipfs.Config{
		JWT:       cfg.Pinata.JWT,
		APIKey:    cfg.Pinata.APIKey,
		SecretKey: cfg.Pinata.SecretKey,
		Gateway:   cfg.Pinata.Gateway,
	})
	if pinner.IsMock() {
		appLog.Warn("No Pinata credentials configured, IPFS pinning runs in mock mode")
	}

	deployer := service.NewHTTPDeployer(&service.DeployerConfig{
		BaseURL: cfg.Deployer.BaseURL,
		APIKey:  cfg.Deployer.APIKey,
	})

	llmCfg := &service.LLMConfig{
		Enabled: cfg.AI.Enabled,
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
	}

	cat := catalog.New()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	selector := service.NewTemplateSelector(cat, llmCfg, rng, appLog)
	captions := service.NewCaptionGenerator(llmCfg, appLog)
	memes := service.NewMemeService(selector, captions, memeRepo, engagementRepo, appLog)
	engagement := service.NewEngagementService(memes, engagementRepo, rng, appLog)
	prefs := service.NewPreferencesService(prefsRepo, appLog)
	coins := service.NewCoinService(memes, pinner, deployer, archive, coinRepo, prefs, appLog)

	ctx := context.Background()
	if err := memes.LoadFromRepository(ctx); err != nil {
		appLog.WithError(err).Warn("Failed to load memes from database, starting empty")
	}
	prefs.Load(ctx)

	router := api.SetupRouter(&api.Services{
		Memes:       memes,
		Engagement:  engagement,
		Coins:       coins,
		Preferences: prefs,
		Catalog:     cat,
		BackupRepo:  backupRepo,
	}, &cfg.Server, appLog)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLog.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Fatal("Server forced to shutdown")
	}

	appLog.Info("Server exited")
}
