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

	"github.com/joho/godotenv"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/email"
	"github.com/cherryapp/cherry/internal/logging"
	"github.com/cherryapp/cherry/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	port := os.Getenv("CHERRY_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHERRY_DB_PATH")
	if dbPath == "" {
		dbPath = "cherry.db"
	}

	baseURL := os.Getenv("CHERRY_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	logger := logging.Setup(os.Getenv("CHERRY_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	emailClient := email.NewClient(
		os.Getenv("CHERRY_POSTMARK_TOKEN"),
		os.Getenv("CHERRY_FROM_EMAIL"),
		baseURL,
	)
	if !emailClient.Configured() {
		logger.Warn("postmark token not set, password-reset emails disabled")
	}

	srv := server.New(db, emailClient, logger)

	// Hourly sweep of expired sessions and stale rate-limit buckets
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := srv.SessionStore().DeleteExpired(); err != nil {
				logger.Error("session cleanup", "error", err)
			} else if n > 0 {
				logger.Info("expired sessions removed", "count", n)
			}
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Cherry running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
