package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Date parameters are calendar dates (midnight UTC, see domain.DateOnly);
// reminder parameters are absolute instants.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves all tasks owned by the given user, ordered by
	// occurrence date then time of day. When day is non-nil, only tasks for
	// that calendar date are returned.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, day *time.Time) ([]*domain.Task, error)

	// ListDueRecurring retrieves all recurring tasks whose occurrence date is
	// on or before the given calendar date. Used by the occurrence
	// materializer.
	ListDueRecurring(ctx context.Context, onOrBefore time.Time) ([]*domain.Task, error)

	// FindDueReminders retrieves all tasks whose reminder instant falls in
	// [from, to] and whose reminder has not been sent yet.
	FindDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Task, error)

	// ExistsOccurrence reports whether an occurrence already exists for the
	// given owner, title and calendar date. This is the sole de-duplication
	// mechanism for occurrence creation.
	ExistsOccurrence(ctx context.Context, ownerID uuid.UUID, title string, date time.Time) (bool, error)

	// Update persists the mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// MarkReminderSent durably sets reminder_sent = true for the given task
	// row only. A missing row is treated as a no-op, not an error, because
	// the task may have been deleted between scheduling and firing.
	MarkReminderSent(ctx context.Context, id uuid.UUID) error

	// Delete removes a task owned by the given user.
	// Returns ErrTaskNotFound if the task does not exist or belongs to
	// another user.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
