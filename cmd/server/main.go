package main

import (
	"context"
	"net/http"

	_ "cms/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"cms/internal/auth"
	"cms/internal/cache"
	"cms/internal/config"
	"cms/internal/db"
	"cms/internal/handler"
	"cms/internal/logging"
	"cms/internal/model"
	"cms/internal/repository"
	"cms/internal/router"
	"cms/internal/service"
	"cms/internal/storage"
)

// @title Content Management API
// @version 1.0
// @description Content management and user account backend with role-based authorization and JWT authentication.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)
	log := logging.L()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.ContentItem{},
		&model.RefreshToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	fileStore, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("file store init: %v", err)
	}

	// Initialize repositories
	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	// Role reference data must exist before the first registration.
	if err := roleRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, roleRepo, cacheClient)
	authService := service.NewAuthService(userRepo, tokenRepo, jwtService, tokenStore)
	contentService := service.NewContentService(contentRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService, userService)
	contentHandler := handler.NewContentHandler(contentService, fileStore)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		tokenStore,
		userHandler,
		authHandler,
		contentHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Infof("server listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
