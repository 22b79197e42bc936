// Package cli holds the start-up steps shared by cmd/horas, cmd/horas-report
// and cmd/horas-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"horas/internal/config"
	applog "horas/internal/log"
	"horas/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default. An invalid level falls back to info.
func SetupLogger(cfg *config.Config) *applog.Logger {
	lc, err := applog.ConfigFrom(cfg.LogLevel, cfg.LogFormat)
	logger := applog.New(lc)
	applog.SetDefault(logger)
	if err != nil {
		logger.Warn("Ignoring LOG_LEVEL", applog.FieldError, err)
	}
	return logger
}

// LoadConfig loads the environment (including .env) and the configuration.
func LoadConfig() *config.Config {
	LoadEnvFile()
	return config.Load()
}

// MustValidate exits the process when validate fails.
func MustValidate(logger *applog.Logger, validate func() error) {
	if err := validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
}

// InitSQLite initializes a SQLite repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	sqliteRepo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return sqliteRepo
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Fatal logs err and exits with status 1.
func Fatal(logger *applog.Logger, msg string, err error, args ...any) {
	logger.Error(msg, append([]any{applog.FieldError, err}, args...)...)
	os.Exit(1)
}
