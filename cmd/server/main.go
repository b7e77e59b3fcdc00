package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"store_ratings/internal/api"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common/security"
	"store_ratings/internal/domain/repository"
	"store_ratings/internal/platform/cache"
	"store_ratings/internal/platform/config"
	"store_ratings/internal/platform/database"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	if err := database.Migrate(context.Background(), database.DB); err != nil {
		log.Fatalf("Could not apply schema: %v", err)
	}
	fmt.Println("Schema applied.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	storeRepo := repository.NewPgStoreRepository(database.DB)
	ratingRepo := repository.NewPgRatingRepository(database.DB)

	// 6. Initialize Services
	statsCache := cache.NewStatsCache(cache.RDB, config.AppConfig.StatsCacheTTL)
	authService := service.NewAuthService(userRepo)
	storeService := service.NewStoreService(storeRepo, ratingRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, statsCache)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, storeService, ratingService, adminService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
