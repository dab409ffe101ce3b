package main

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stallfinder/docs"

	"stallfinder/internal/auth"
	"stallfinder/internal/cache"
	"stallfinder/internal/config"
	"stallfinder/internal/db"
	"stallfinder/internal/handler"
	"stallfinder/internal/logger"
	"stallfinder/internal/model"
	"stallfinder/internal/repository"
	"stallfinder/internal/router"
	"stallfinder/internal/service"
	"stallfinder/internal/storage"
)

// @title Stallfinder API
// @version 1.0
// @description Marketplace API connecting food stall owners with customers: stalls with geolocation, menus and reviews.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Review{},
			&model.MenuItem{},
			&model.Stall{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("failed to drop table (may not exist)")
			}
		}
		log.Info().Msg("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Stall{},
		&model.MenuItem{},
		&model.Review{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	objectStore, err := storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("object store init")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	stallRepo := repository.NewStallRepository(gormDB)
	menuRepo := repository.NewMenuItemRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	stallService := service.NewStallService(stallRepo, menuRepo, reviewRepo, objectStore, cacheClient, log)
	menuService := service.NewMenuService(stallRepo, menuRepo, objectStore)
	reviewService := service.NewReviewService(stallRepo, reviewRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	stallHandler := handler.NewStallHandler(stallService)
	menuHandler := handler.NewMenuHandler(menuService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		stallHandler,
		menuHandler,
		reviewHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
