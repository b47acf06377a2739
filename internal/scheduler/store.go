package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
)

// TaskStore defines the persistence operations the scheduling subsystem
// consumes. It is a narrow view of the application's task store; the full
// store.TaskStore satisfies it.
type TaskStore interface {
	// Create persists a newly materialized occurrence.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID re-fetches current task state. Fire callbacks use this instead
	// of trusting the snapshot captured at scheduling time.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListDueRecurring retrieves recurring tasks whose occurrence date is on
	// or before the given calendar date.
	ListDueRecurring(ctx context.Context, onOrBefore time.Time) ([]*domain.Task, error)

	// FindDueReminders retrieves tasks with an unsent reminder in [from, to].
	FindDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Task, error)

	// ExistsOccurrence reports whether an occurrence already exists for the
	// given owner, title and calendar date.
	ExistsOccurrence(ctx context.Context, ownerID uuid.UUID, title string, date time.Time) (bool, error)

	// MarkReminderSent durably sets the reminder-sent flag for one task row.
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// UserStore defines the user lookup the reminder scheduler needs to resolve
// delivery tokens.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
