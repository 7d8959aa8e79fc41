package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/api"
	"github.com/recipe-app/api/internal/api/handlers"
	mw "github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/validators"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/internal/services"
	"github.com/recipe-app/api/pkg/config"
	"github.com/recipe-app/api/pkg/database"
	"github.com/recipe-app/api/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting recipe API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DatabaseDriver),
	)

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver:     cfg.DatabaseDriver,
		DSN:        cfg.DatabaseURL,
		Verbose:    cfg.IsDevelopment(),
		MaxRetries: 5,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// A local sqlite file has no separate migration step.
	if cfg.DatabaseDriver == "sqlite" {
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	}

	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn("JWT_SECRET not set, using development default (INSECURE for production)")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)
	tagSvc := services.NewTagService(tagRepo)
	ingredientSvc := services.NewIngredientService(ingredientRepo)
	recipeSvc := services.NewRecipeService(recipeRepo)
	adminSvc := services.NewAdminService(userRepo, authSvc)

	v := validators.New()
	router := api.NewRouter(api.Dependencies{
		Authenticator:      authSvc,
		RateLimiter:        mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		CORSOrigins:        cfg.CORSOrigins,
		TrustProxy:         cfg.TrustProxy,
		HealthHandler:      handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		AuthHandler:        handlers.NewAuthHandler(authSvc, v),
		TagsHandler:        handlers.NewTagsHandler(tagSvc, v),
		IngredientsHandler: handlers.NewIngredientsHandler(ingredientSvc, v),
		RecipesHandler:     handlers.NewRecipesHandler(recipeSvc, v),
		AdminHandler:       handlers.NewAdminHandler(adminSvc, v),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
