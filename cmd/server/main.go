// Package main implements the entry point for the Planloop API server,
// which manages users' recurring tasks, materializes upcoming occurrences
// and delivers scheduled push reminders.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/planloop/planloop-api/internal/config"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, status, version) instead of starting the server",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("planloop-api: %v", err)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or starts the server. Split from main so failures surface as
// ordinary errors.
func run(migrateCmd string) error {
	cfg, logger, err := initializeApp()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, logger, migrateCmd)
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		// newApplication does not own the connection until it returns.
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"push_enabled", cfg.Push.Enabled)

	return cfg, logger, nil
}
