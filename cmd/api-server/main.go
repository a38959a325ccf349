package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"recipehub/database"
	"recipehub/internal/api/handler"
	"recipehub/internal/api/middleware"
	"recipehub/internal/api/repository"
	"recipehub/internal/api/service"
	"recipehub/internal/cache"
	"recipehub/internal/config"
	"recipehub/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("could not run migrations", "error", err)
		os.Exit(1)
	}

	// Cache is optional; without Redis every lookup just hits the database.
	refCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, reference caching disabled", "error", err)
	}
	defer refCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Services
	images := storage.NewImageStore(cfg.MediaPath)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, subRepo)
	tagService := service.NewTagService(tagRepo, refCache)
	ingredientService := service.NewIngredientService(ingredientRepo, refCache)
	recipeService := service.NewRecipeService(
		recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, subRepo, images)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	cartService := service.NewShoppingCartService(cartRepo, recipeRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo, recipeRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService, subService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, cartService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	// Recipe images served straight from disk
	r.Static("/media", cfg.MediaPath)

	auth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	userHandler.RegisterRoutes(api.Group("/users"), auth, optionalAuth)
	tagHandler.RegisterRoutes(api.Group("/tags"))
	ingredientHandler.RegisterRoutes(api.Group("/ingredients"))
	recipeHandler.RegisterRoutes(api.Group("/recipes"), auth, optionalAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
