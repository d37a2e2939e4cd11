// File: app/app.go
package app

import (
	"context"
	"go-game-api/config"
	"go-game-api/db"
	"go-game-api/handler"
	"go-game-api/logger"
	"go-game-api/repository"
	"go-game-api/router"
	"go-game-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)

	jwtCfg := config.AppConfig.JWT
	tokenService := service.NewTokenService(jwtCfg.SecretKey, jwtCfg.AccessTokenExpiry, jwtCfg.RefreshTokenExpiry)

	authService := service.NewAuthService(userRepo, tokenService)
	oauthService := service.NewOAuthService(userRepo, authService, service.NewKakaoClient())
	userService := service.NewUserService(userRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService, oauthService, tokenService.RefreshExpiry())
	userHandler := handler.NewUserHandler(userService)

	gate := handler.AuthMiddleware(tokenService, userRepo)
	r := router.NewRouter(userHandler, authHandler, gate)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
