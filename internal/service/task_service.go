package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/scheduler"
	"github.com/planloop/planloop-api/internal/store"
)

// ReminderCanceler disarms a pending in-process reminder timer for a task.
// It is satisfied by scheduler.ReminderScheduler.
type ReminderCanceler interface {
	// Cancel reports whether a timer was pending for the task.
	Cancel(id uuid.UUID) bool
}

// CreateTaskParams carries the caller-supplied fields for a new task.
type CreateTaskParams struct {
	Title              string
	Description        string
	OccurrenceDate     time.Time
	TimeOfDay          string
	ReminderAt         *time.Time
	IsRecurring        bool
	RecurrenceKind     domain.RecurrenceKind
	CustomIntervalDays int
}

// UpdateTaskParams carries a partial update. Nil pointer fields are left
// unchanged. ClearReminder removes the reminder entirely; it takes precedence
// over ReminderAt.
type UpdateTaskParams struct {
	Title              *string
	Description        *string
	OccurrenceDate     *time.Time
	TimeOfDay          *string
	ReminderAt         *time.Time
	ClearReminder      bool
	IsRecurring        *bool
	RecurrenceKind     *domain.RecurrenceKind
	CustomIntervalDays *int
}

// TaskService provides task-related operations scoped to an owning user.
// Every operation that names a task ID verifies ownership and reports
// ErrTaskNotFound on any mismatch.
type TaskService interface {
	// CreateTask creates a new task for the given owner.
	CreateTask(ctx context.Context, ownerID uuid.UUID, params CreateTaskParams) (*domain.Task, error)

	// GetTask retrieves one of the owner's tasks.
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves the owner's tasks, optionally restricted to one
	// calendar date.
	ListTasks(ctx context.Context, ownerID uuid.UUID, day *time.Time) ([]*domain.Task, error)

	// UpdateTask applies a partial update to one of the owner's tasks.
	// Changing or clearing the reminder disarms any pending timer; the next
	// reminder scan re-arms a still-set reminder at its new instant.
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, params UpdateTaskParams) (*domain.Task, error)

	// CompleteTask toggles completion on one of the owner's tasks. When the
	// toggle moves a recurring task from incomplete to complete, the next
	// occurrence is created synchronously through the same de-duplicated
	// path the periodic materializer uses.
	CompleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// DeleteTask removes one of the owner's tasks and disarms any pending
	// reminder timer for it.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	tasks     store.TaskStore
	reminders ReminderCanceler
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	reminders ReminderCanceler,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "tasks store cannot be nil",
		}
	}
	if reminders == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "reminder canceler cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:     tasks,
		reminders: reminders,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// CreateTask creates a new task for the given owner.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, params.Title, params.OccurrenceDate)
	if err != nil {
		return nil, NewServiceError("create_task", "invalid task data", err)
	}

	task.Description = params.Description
	task.TimeOfDay = params.TimeOfDay
	task.ReminderAt = params.ReminderAt
	task.IsRecurring = params.IsRecurring
	if params.RecurrenceKind != "" {
		task.RecurrenceKind = params.RecurrenceKind
	}
	task.CustomIntervalDays = params.CustomIntervalDays

	if err := task.Validate(); err != nil {
		return nil, NewServiceError("create_task", "invalid task data", err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"user_id", ownerID)
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", ownerID,
		"occurrence_date", task.OccurrenceDate.Format(time.DateOnly))
	return task, nil
}

// GetTask retrieves one of the owner's tasks.
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	return s.getOwned(ctx, ownerID, taskID, "get_task")
}

// ListTasks retrieves the owner's tasks.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	day *time.Time,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID, day)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", ownerID)
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update to one of the owner's tasks.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	params UpdateTaskParams,
) (*domain.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID, "update_task")
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.OccurrenceDate != nil {
		task.OccurrenceDate = domain.DateOnly(*params.OccurrenceDate)
	}
	if params.TimeOfDay != nil {
		task.TimeOfDay = *params.TimeOfDay
	}
	if params.IsRecurring != nil {
		task.IsRecurring = *params.IsRecurring
	}
	if params.RecurrenceKind != nil {
		task.RecurrenceKind = *params.RecurrenceKind
	}
	if params.CustomIntervalDays != nil {
		task.CustomIntervalDays = *params.CustomIntervalDays
	}

	reminderChanged := false
	switch {
	case params.ClearReminder:
		if task.ReminderAt != nil {
			task.ReminderAt = nil
			reminderChanged = true
		}
	case params.ReminderAt != nil:
		task.ReminderAt = params.ReminderAt
		task.ReminderSent = false
		reminderChanged = true
	}

	if err := task.Validate(); err != nil {
		return nil, NewServiceError("update_task", "invalid task data", err)
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID,
			"user_id", ownerID)
		return nil, NewServiceError("update_task", "failed to save task", err)
	}

	// Disarm only after the new state is durable so a timer firing mid-update
	// re-fetches either the old row or the new one, never a half-applied mix.
	if reminderChanged {
		s.reminders.Cancel(taskID)
	}

	s.logger.Info("task updated",
		"task_id", taskID,
		"user_id", ownerID)
	return task, nil
}

// CompleteTask toggles completion on one of the owner's tasks.
func (s *taskServiceImpl) CompleteTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID, "complete_task")
	if err != nil {
		return nil, err
	}

	wasCompleted := task.Completed
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task completion",
			"error", err,
			"task_id", taskID,
			"user_id", ownerID)
		return nil, NewServiceError("complete_task", "failed to save task", err)
	}

	if !wasCompleted && task.Completed && task.IsRecurring {
		created, err := scheduler.EnsureNextOccurrence(ctx, s.tasks, task)
		if err != nil {
			// The completion itself is already durable; surface the failure
			// so the client knows the next occurrence may be missing until
			// the nightly scan runs.
			s.logger.Error("failed to create next occurrence on completion",
				"error", err,
				"task_id", taskID,
				"user_id", ownerID)
			return nil, NewServiceError("complete_task", "failed to create next occurrence", err)
		}
		if created {
			s.logger.Info("next occurrence created on completion",
				"task_id", taskID,
				"user_id", ownerID)
		}
	}

	return task, nil
}

// DeleteTask removes one of the owner's tasks.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete task",
				"error", err,
				"task_id", taskID,
				"user_id", ownerID)
		}
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	s.reminders.Cancel(taskID)

	s.logger.Info("task deleted",
		"task_id", taskID,
		"user_id", ownerID)
	return nil
}

// getOwned fetches a task and verifies ownership. Any mismatch is reported
// as ErrTaskNotFound.
func (s *taskServiceImpl) getOwned(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	operation string,
) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", taskID)
		return nil, NewServiceError(operation, "failed to retrieve task", err)
	}

	if task.UserID != ownerID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
