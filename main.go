package main

import (
	// standard library
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// third-party
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	// internal
	"github.com/rmitchellscott/monodither/internal/config"
	"github.com/rmitchellscott/monodither/internal/database"
	"github.com/rmitchellscott/monodither/internal/handlers"
	_ "github.com/rmitchellscott/monodither/internal/imageprocessing" // Register library-backed methods
	"github.com/rmitchellscott/monodither/internal/logging"
	"github.com/rmitchellscott/monodither/internal/middleware"
	"github.com/rmitchellscott/monodither/internal/pollers"
	"github.com/rmitchellscott/monodither/internal/presets"
	"github.com/rmitchellscott/monodither/internal/version"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	logging.InfoWithComponent(logging.ComponentStartup, "Starting Monodither", "version", version.String())

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	store, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Failed to load presets", "error", err)
		os.Exit(1)
	}
	logging.InfoWithComponent(logging.ComponentPresets, "Presets loaded", "count", len(store.List()), "file", cfg.PresetsFile)

	// Run history is optional; DB_TYPE=none disables it
	db, err := database.Initialize(cfg.Database, cfg.LogLevel)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	pollerManager := pollers.NewManager()
	pollerManager.Register(pollers.NewRateLimiterCleanupPoller(rateLimiter, 10*time.Minute))
	if db != nil && cfg.RunRetention > 0 {
		pollerManager.Register(pollers.NewRunCleanupPoller(db, cfg.RunRetention, time.Hour))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pollerManager.Start(ctx); err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Failed to start pollers", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, db, store, rateLimiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.InfoWithComponent(logging.ComponentStartup, "Listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.InfoWithComponent(logging.ComponentShutdown, "Shutting down server and pollers")

	// Stop pollers first
	if err := pollerManager.Stop(); err != nil {
		logging.ErrorWithComponent(logging.ComponentShutdown, "Error stopping pollers", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorWithComponent(logging.ComponentShutdown, "Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logging.InfoWithComponent(logging.ComponentShutdown, "Server and pollers stopped")
}

func newRouter(cfg *config.Config, db *gorm.DB, store *presets.Store, rateLimiter *middleware.RateLimiter) *gin.Engine {
	h := handlers.New(db, store, cfg.MaxPixels)
	return handlers.NewRouter(h, handlers.RouterConfig{
		RateLimiter:  rateLimiter,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
}
