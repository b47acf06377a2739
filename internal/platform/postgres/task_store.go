package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/platform/logger"
	"github.com/planloop/planloop-api/internal/store"
)

// taskColumns is the canonical column list scanned by scanTask.
const taskColumns = `id, user_id, title, description, occurrence_date, time_of_day,
	reminder_at, reminder_sent, is_recurring, recurrence_kind, custom_interval_days,
	completed, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.OccurrenceDate,
		task.TimeOfDay,
		task.ReminderAt,
		task.ReminderSent,
		task.IsRecurring,
		task.RecurrenceKind,
		task.CustomIntervalDays,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	day *time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{ownerID}

	if day != nil {
		query += ` AND occurrence_date = $2`
		args = append(args, domain.DateOnly(*day))
	}
	query += ` ORDER BY occurrence_date ASC, time_of_day ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks by owner",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListDueRecurring implements store.TaskStore.ListDueRecurring
func (s *PostgresTaskStore) ListDueRecurring(
	ctx context.Context,
	onOrBefore time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE is_recurring = TRUE AND occurrence_date <= $1
		ORDER BY occurrence_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, domain.DateOnly(onOrBefore))
	if err != nil {
		log.Error("failed to list due recurring tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// FindDueReminders implements store.TaskStore.FindDueReminders
func (s *PostgresTaskStore) FindDueReminders(
	ctx context.Context,
	from, to time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE reminder_at IS NOT NULL
		  AND reminder_at >= $1
		  AND reminder_at <= $2
		  AND reminder_sent = FALSE
		ORDER BY reminder_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		log.Error("failed to find due reminders",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ExistsOccurrence implements store.TaskStore.ExistsOccurrence
func (s *PostgresTaskStore) ExistsOccurrence(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	date time.Time,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE user_id = $1 AND title = $2 AND occurrence_date = $3
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, ownerID, title, domain.DateOnly(date)).Scan(&exists)
	if err != nil {
		log.Error("failed to check occurrence existence",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, occurrence_date = $3, time_of_day = $4,
		    reminder_at = $5, reminder_sent = $6, is_recurring = $7,
		    recurrence_kind = $8, custom_interval_days = $9, completed = $10,
		    updated_at = $11
		WHERE id = $12
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.OccurrenceDate,
		task.TimeOfDay,
		task.ReminderAt,
		task.ReminderSent,
		task.IsRecurring,
		task.RecurrenceKind,
		task.CustomIntervalDays,
		task.Completed,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	return nil
}

// MarkReminderSent implements store.TaskStore.MarkReminderSent
func (s *PostgresTaskStore) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET reminder_sent = TRUE, updated_at = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to mark reminder sent",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	// A vanished row means the task was deleted after scheduling; the fire
	// path treats that as a no-op.
	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("no task row to mark sent",
			slog.String("task_id", id.String()))
		return nil
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found during delete",
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}


// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row into a domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description, timeOfDay sql.NullString
	var reminderAt sql.NullTime
	var kind string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&task.OccurrenceDate,
		&timeOfDay,
		&reminderAt,
		&task.ReminderSent,
		&task.IsRecurring,
		&kind,
		&task.CustomIntervalDays,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.TimeOfDay = timeOfDay.String
	task.RecurrenceKind = domain.RecurrenceKind(kind)
	if reminderAt.Valid {
		t := reminderAt.Time.UTC()
		task.ReminderAt = &t
	}
	// Occurrence dates come back as DATE values; normalize to midnight UTC.
	task.OccurrenceDate = domain.DateOnly(task.OccurrenceDate)

	return &task, nil
}

// collectTasks drains rows into a slice of tasks.
func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}
