package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"treescape/local-app/src/pkg/cli"
	"treescape/local-app/src/pkg/config"
	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/session"
	"treescape/local-app/src/pkg/storage"
)

// bootstrap initializes and runs the Treescape application.
// It sets up signal handling, loads configuration, initializes components
// (logger, storage, event manager, session manager, CLI), runs the CLI, and
// handles graceful shutdown.
// Returns an error if any part of the initialization or execution fails.
func bootstrap() error {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("Error closing logger: %v\n", err)
		}
	}()

	logger.Info(context.Background(), "Application started", log.Fields{"config": cfg})

	// Initialize storage
	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
		}
	}()

	logger.Info(context.Background(), "Storage initialized", nil)

	// Initialize event manager
	eventManager := event.NewEventManager(logger)

	// Initialize session manager
	sessionManager := session.NewSessionManager(store, eventManager, cfg, logger)

	logger.Info(context.Background(), "Session manager initialized", nil)

	// Initialize CLI
	cliInstance, err := cli.NewCLI(sessionManager, cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %v", err)
	}

	logger.Info(context.Background(), "CLI instance created", nil)

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	// Run cli
	if err := cliInstance.Run(); err != nil {
		logger.Error(context.Background(), "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %v", err)
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	fmt.Println("Goodbye!")

	return nil
}
