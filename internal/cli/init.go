// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/billfold and cmd/billfold-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"billfold/internal/audit"
	"billfold/internal/config"
	"billfold/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitDocumentStore initializes the JSON record store under the given
// directory. Returns the store or exits the process on failure.
func InitDocumentStore(logger *slog.Logger, dataDir string) *storage.DocumentStore {
	store, err := storage.NewDocumentStore(dataDir)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err, "dir", dataDir)
		os.Exit(1)
	}
	return store
}

// InitLedger initializes the SQLite audit ledger at the given path.
// Returns the ledger or exits the process on failure.
func InitLedger(logger *slog.Logger, dbPath string) *audit.Ledger {
	ledger, err := audit.NewLedger(dbPath)
	if err != nil {
		logger.Error("Failed to initialize audit ledger", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return ledger
}
