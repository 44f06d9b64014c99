package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spkcd/smart-bulk-password-reset/internal/api"
	"github.com/spkcd/smart-bulk-password-reset/internal/cache"
	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/db"
	"github.com/spkcd/smart-bulk-password-reset/internal/email"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Initialize Cache (Redis)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			log.Printf("Error disconnecting from Redis: %v", err)
		}
	}()

	// Initialize Email Sender according to EMAIL_MODE
	var primarySender email.Sender
	switch cfg.EmailMode {
	case config.EmailModeSMTP:
		primarySender = email.NewSMTPSender(cfg)
	case config.EmailModeFile:
		primarySender, err = email.NewFileEmailSender(cfg.EmailFilePath)
		if err != nil {
			log.Fatalf("Failed to initialize file email sender: %v", err)
		}
	case config.EmailModeRedis:
		log.Println("EMAIL_MODE=redis: outgoing mail is stored in Redis, not delivered.")
		primarySender = email.NewRedisSender(redisClient, cfg)
	case config.EmailModeLog:
		primarySender = email.NewLoggingSender(cfg)
	default:
		log.Fatalf("Invalid EMAIL_MODE: %s", cfg.EmailMode)
	}

	// The composite sender always includes the primary sender; a mirror file
	// sink is added when configured.
	compositeSender := email.NewCompositeEmailSender(primarySender)
	if cfg.EmailMirrorFile != "" {
		mirror, err := email.NewFileEmailSender(cfg.EmailMirrorFile)
		if err != nil {
			log.Printf("WARNING: Failed to initialize email mirror file '%s': %v. Proceeding without mirroring.", cfg.EmailMirrorFile, err)
		} else {
			log.Printf("Mirroring outgoing email to '%s'.", cfg.EmailMirrorFile)
			compositeSender.AddSender(mirror)
		}
	}

	router := api.SetupRouter(cfg, mongoDb, redisClient, compositeSender)
	srv := &http.Server{
		Addr:    ":" + cfg.ApiPort,
		Handler: router,
	}

	go func() {
		fmt.Printf("API listening on :%s\n", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	fmt.Println("Server gracefully stopped")
}
