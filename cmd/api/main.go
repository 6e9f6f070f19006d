package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/config"
	"github.com/justsurfingit/ejobs/internal/database"
	"github.com/justsurfingit/ejobs/internal/handlers"
	"github.com/justsurfingit/ejobs/internal/logging"
	"github.com/justsurfingit/ejobs/internal/middleware"
	"github.com/justsurfingit/ejobs/internal/services"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs a fatal run error and flushes the logger before the process
// exits, since os.Exit skips deferred calls.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// 3. Initialize Core Services (Dependencies)
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	profileService := services.NewProfileService(db)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	paymentService := services.NewPaymentService(db)
	reviewService := services.NewReviewService(db)
	statsService := services.NewStatsService(db)

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		created, err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("admin account created", zap.String("username", cfg.AdminUsername))
		}
	}

	// 4. Optional LLM extraction
	var extractor handlers.JobExtractor
	if cfg.GeminiAPIKey != "" {
		llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("job extraction disabled", zap.Error(err))
		} else {
			extractor = llmService
			logger.Info("job extraction enabled", zap.String("model", cfg.GeminiModel))
		}
	} else {
		logger.Info("job extraction disabled: GEMINI_API_KEY is not set")
	}

	// 5. Background expiry watcher
	expiry := services.NewExpiryService(jobService, logger)
	if err := expiry.Start(cfg.ExpirySchedule); err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				limiter.Sweep(now)
			}
		}
	}()

	// 6. Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.Router{
		Log:          logger.Named("http"),
		Auth:         middleware.NewAuthenticator(cfg.JWTSecret, userService, logger.Named("auth")),
		Limiter:      limiter,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Health:       handlers.NewHealthHandler(sqlDB),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Users:        handlers.NewUserHandler(userService),
		Profiles:     handlers.NewProfileHandler(profileService),
		Jobs:         handlers.NewJobHandler(extractor, jobService),
		Applications: handlers.NewApplicationHandler(applicationService),
		Payments:     handlers.NewPaymentHandler(paymentService),
		Reviews:      handlers.NewReviewHandler(reviewService),
		Stats:        handlers.NewStatsHandler(statsService),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	expiry.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
