package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/planloop/planloop-api/internal/config"
	"github.com/planloop/planloop-api/internal/platform/postgres"
	"github.com/planloop/planloop-api/internal/platform/push"
	"github.com/planloop/planloop-api/internal/scheduler"
	"github.com/planloop/planloop-api/internal/service"
	"github.com/planloop/planloop-api/internal/service/auth"
	"github.com/planloop/planloop-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	userService      service.UserService

	// Scheduling subsystem
	pushSender   push.Sender
	reminders    *scheduler.ReminderScheduler
	materializer *scheduler.Materializer
	jobs         *scheduler.Jobs
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before application wiring.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	if cfg.Push.Enabled {
		app.pushSender = push.NewHTTPSender(cfg.Push.GatewayURL, logger)
	} else {
		logger.Info("push delivery disabled, reminders will be logged only")
		app.pushSender = push.NewLogSender(logger)
	}

	app.reminders = scheduler.NewReminderScheduler(
		app.taskStore,
		app.userStore,
		app.pushSender,
		logger,
	)
	app.materializer = scheduler.NewMaterializer(app.taskStore, logger)
	app.jobs = scheduler.NewJobs(app.materializer, app.reminders, cfg.Scheduler, logger)

	app.taskService, err = service.NewTaskService(app.taskStore, app.reminders, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the scheduling subsystem and the HTTP server, blocking until
// shutdown completes.
func (app *application) Run(ctx context.Context) error {
	if err := app.jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The scheduler
// stops first so no timer fires against a closed database.
func (app *application) cleanup() {
	if app.jobs != nil {
		app.jobs.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
