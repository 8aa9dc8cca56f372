package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"answersheet_backend/backend/internal/account"
	"answersheet_backend/backend/internal/result"
	"answersheet_backend/backend/internal/server"
	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store/mongostore"
	"answersheet_backend/backend/internal/submission"
)

func main() {
	log.Println("INFO: Starting Answer-Sheet Backend...")

	// 1. Load Configuration
	shared.LoadEnv(".env")
	config, err := shared.LoadServerConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if err := shared.ValidateServerConfig(config); err != nil {
		log.Fatalf("FATAL: Invalid configuration: %v", err)
	}
	if shared.IsDevelopment(config) {
		shared.PrintConfig(config)
	}

	// 2. Connect MongoDB and build the storage handle
	client, err := shared.ConnectMongoDB(&config.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer func() {
		if err := shared.DisconnectMongoDB(client); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	st := mongostore.New(client, &config.MongoDB)
	if err := st.EnsureIndexes(context.Background(), config.Subjects); err != nil {
		log.Fatalf("FATAL: Failed to ensure indexes: %v", err)
	}

	// 3. Initialize Services
	services := &server.Services{
		Accounts:    account.NewService(st, config.Security.BCryptCost),
		Submissions: submission.NewService(st, config.Subjects),
		Results:     result.NewService(st),
	}

	// 4. Setup Routes and Configure Server
	router := server.SetupRoutes(services, config.CORS)

	httpServer := &http.Server{
		Addr:         ":" + config.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start Server in a Goroutine
	go func() {
		log.Printf("INFO: Listening on port %s", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: HTTP shutdown error: %v", err)
	}

	log.Println("INFO: Server stopped.")
}
